package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
	authHTTP "github.com/allisson/staffdocs/internal/auth/http"
	"github.com/allisson/staffdocs/internal/httputil"
	"github.com/allisson/staffdocs/internal/user/domain"
	"github.com/allisson/staffdocs/internal/user/http/dto"
)

// MockUserUseCase is a mock implementation of usecase.UserUseCase.
type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) Create(
	ctx context.Context,
	actor authDomain.Principal,
	input *domain.CreateUserInput,
) (*domain.User, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) Get(
	ctx context.Context,
	actor authDomain.Principal,
	id uuid.UUID,
) (*domain.User, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) List(
	ctx context.Context,
	actor authDomain.Principal,
	offset, limit int,
) ([]*domain.User, error) {
	args := m.Called(ctx, actor, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

func (m *MockUserUseCase) Update(
	ctx context.Context,
	actor authDomain.Principal,
	id uuid.UUID,
	input *domain.UpdateUserInput,
) (*domain.User, error) {
	args := m.Called(ctx, actor, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) ChangePassword(
	ctx context.Context,
	actor authDomain.Principal,
	id uuid.UUID,
	newPassword string,
) error {
	args := m.Called(ctx, actor, id, newPassword)
	return args.Error(0)
}

func (m *MockUserUseCase) SetActive(
	ctx context.Context,
	actor authDomain.Principal,
	id uuid.UUID,
	active bool,
) error {
	args := m.Called(ctx, actor, id, active)
	return args.Error(0)
}

func (m *MockUserUseCase) Delete(
	ctx context.Context,
	actor authDomain.Principal,
	id uuid.UUID,
) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func setupUserTestHandler(t *testing.T) (*UserHandler, *MockUserUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mockUseCase := &MockUserUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewUserHandler(mockUseCase, logger), mockUseCase
}

// createAuthedContext builds a gin context carrying a principal and an
// optional JSON body.
func createAuthedContext(
	method, path string,
	principal authDomain.Principal,
	body any,
	params gin.Params,
) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(authHTTP.WithPrincipal(req.Context(), principal))
	c.Request = req
	c.Params = params
	return c, w
}

var (
	adminActor = authDomain.Principal{
		ID:       uuid.Must(uuid.NewV7()),
		Username: "boss",
		Role:     authDomain.RoleAdmin,
	}
	operatorActor = authDomain.Principal{
		ID:       uuid.Must(uuid.NewV7()),
		Username: "worker",
		Role:     authDomain.RoleOperator,
	}
)

func TestUserHandler_CreateUserHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupUserTestHandler(t)

		created := &domain.User{
			ID:       uuid.Must(uuid.NewV7()),
			Username: "joao.lima",
			FullName: "João Lima",
			Email:    "joao.lima@example.com",
			Role:     authDomain.RoleOperator,
			IsActive: true,
		}
		mockUseCase.On("Create", mock.Anything, adminActor, mock.Anything).Return(created, nil).Once()

		c, w := createAuthedContext(http.MethodPost, "/api/users", adminActor, dto.CreateUserRequest{
			Username: "joao.lima",
			FullName: "João Lima",
			Email:    "joao.lima@example.com",
			Password: "StrongPass123",
			Role:     "operator",
			IsActive: true,
		}, nil)
		handler.CreateUserHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		var response dto.UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "joao.lima", response.Username)
	})

	t.Run("OperatorForbiddenWithReason", func(t *testing.T) {
		handler, mockUseCase := setupUserTestHandler(t)

		mockUseCase.On("Create", mock.Anything, operatorActor, mock.Anything).
			Return(nil, authDomain.ErrInsufficientRole).Once()

		c, w := createAuthedContext(http.MethodPost, "/api/users", operatorActor, dto.CreateUserRequest{
			Username: "joao.lima",
			FullName: "João Lima",
			Email:    "joao.lima@example.com",
			Password: "StrongPass123",
			Role:     "operator",
		}, nil)
		handler.CreateUserHandler(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		var response httputil.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, httputil.CodeForbidden, response.Code)
		assert.Equal(t, "insufficient_role", response.Reason)
		assert.Equal(t, []string{"admin"}, response.RequiredRoles)
		assert.Equal(t, "operator", response.UserRole)
	})

	t.Run("WeakPasswordRejected", func(t *testing.T) {
		handler, mockUseCase := setupUserTestHandler(t)

		c, w := createAuthedContext(http.MethodPost, "/api/users", adminActor, dto.CreateUserRequest{
			Username: "joao.lima",
			FullName: "João Lima",
			Email:    "joao.lima@example.com",
			Password: "short",
			Role:     "operator",
		}, nil)
		handler.CreateUserHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUserHandler_DeactivateUserHandler_SelfForbidden(t *testing.T) {
	handler, mockUseCase := setupUserTestHandler(t)

	mockUseCase.On("SetActive", mock.Anything, adminActor, adminActor.ID, false).
		Return(authDomain.ErrSelfActionNotAllowed).Once()

	c, w := createAuthedContext(
		http.MethodPost, "/api/users/"+adminActor.ID.String()+"/deactivate",
		adminActor, nil,
		gin.Params{{Key: "id", Value: adminActor.ID.String()}},
	)
	handler.DeactivateUserHandler(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	var response httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "self_action_not_allowed", response.Reason)
}

func TestUserHandler_GetUserHandler_BadID(t *testing.T) {
	handler, mockUseCase := setupUserTestHandler(t)

	c, w := createAuthedContext(
		http.MethodGet, "/api/users/not-a-uuid", adminActor, nil,
		gin.Params{{Key: "id", Value: "not-a-uuid"}},
	)
	handler.GetUserHandler(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockUseCase.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserHandler_GetUserHandler_NotFound(t *testing.T) {
	handler, mockUseCase := setupUserTestHandler(t)
	targetID := uuid.Must(uuid.NewV7())

	mockUseCase.On("Get", mock.Anything, adminActor, targetID).
		Return(nil, domain.ErrUserNotFound).Once()

	c, w := createAuthedContext(
		http.MethodGet, "/api/users/"+targetID.String(), adminActor, nil,
		gin.Params{{Key: "id", Value: targetID.String()}},
	)
	handler.GetUserHandler(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserHandler_DeleteUserHandler(t *testing.T) {
	handler, mockUseCase := setupUserTestHandler(t)
	targetID := uuid.Must(uuid.NewV7())

	mockUseCase.On("Delete", mock.Anything, adminActor, targetID).Return(nil).Once()

	c, w := createAuthedContext(
		http.MethodDelete, "/api/users/"+targetID.String(), adminActor, nil,
		gin.Params{{Key: "id", Value: targetID.String()}},
	)
	handler.DeleteUserHandler(c)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
