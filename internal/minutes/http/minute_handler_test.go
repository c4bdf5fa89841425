package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
	authHTTP "github.com/allisson/staffdocs/internal/auth/http"
	"github.com/allisson/staffdocs/internal/httputil"
	"github.com/allisson/staffdocs/internal/minutes/domain"
	"github.com/allisson/staffdocs/internal/minutes/http/dto"
)

// MockMinuteUseCase is a mock implementation of usecase.MinuteUseCase.
type MockMinuteUseCase struct {
	mock.Mock
}

func (m *MockMinuteUseCase) Create(
	ctx context.Context,
	actor authDomain.Principal,
	input *domain.CreateMinuteInput,
) (*domain.MeetingMinute, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MeetingMinute), args.Error(1)
}

func (m *MockMinuteUseCase) Get(
	ctx context.Context,
	actor authDomain.Principal,
	id uuid.UUID,
) (*domain.MeetingMinute, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MeetingMinute), args.Error(1)
}

func (m *MockMinuteUseCase) List(
	ctx context.Context,
	actor authDomain.Principal,
	offset, limit int,
) ([]*domain.MeetingMinute, error) {
	args := m.Called(ctx, actor, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.MeetingMinute), args.Error(1)
}

func (m *MockMinuteUseCase) DownloadAttachment(
	ctx context.Context,
	actor authDomain.Principal,
	id uuid.UUID,
) (*domain.MeetingMinute, io.ReadCloser, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.MeetingMinute), args.Get(1).(io.ReadCloser), args.Error(2)
}

func (m *MockMinuteUseCase) Delete(
	ctx context.Context,
	actor authDomain.Principal,
	id uuid.UUID,
) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func setupMinuteTestHandler(t *testing.T) (*MinuteHandler, *MockMinuteUseCase) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	mockUseCase := &MockMinuteUseCase{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewMinuteHandler(mockUseCase, logger), mockUseCase
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

func createAuthedContext(
	method, path string,
	principal authDomain.Principal,
	body io.Reader,
	contentType string,
	params gin.Params,
) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req = req.WithContext(authHTTP.WithPrincipal(req.Context(), principal))
	c.Request = req
	c.Params = params
	return c, w
}

type minuteFormFields struct {
	title          string
	meetingDate    string
	areaID         string
	documentTypeID string
	fileName       string
	fileContent    string
}

func buildMultipartForm(t *testing.T, fields minuteFormFields) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	require.NoError(t, writer.WriteField("title", fields.title))
	require.NoError(t, writer.WriteField("meeting_date", fields.meetingDate))
	require.NoError(t, writer.WriteField("area_id", fields.areaID))
	require.NoError(t, writer.WriteField("document_type_id", fields.documentTypeID))

	if fields.fileName != "" {
		part, err := writer.CreateFormFile("attachment", fields.fileName)
		require.NoError(t, err)
		_, err = part.Write([]byte(fields.fileContent))
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func TestMinuteHandler_CreateMinuteHandler(t *testing.T) {
	areaID := uuid.Must(uuid.NewV7())
	documentTypeID := uuid.Must(uuid.NewV7())

	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupMinuteTestHandler(t)

		created := &domain.MeetingMinute{
			ID:             uuid.Must(uuid.NewV7()),
			Title:          "Quarterly review",
			MeetingDate:    time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
			AreaID:         areaID,
			DocumentTypeID: documentTypeID,
			AttachmentName: "review.pdf",
			ContentType:    "application/pdf",
			CreatedBy:      operatorActor.ID,
		}
		mockUseCase.On("Create", mock.Anything, operatorActor,
			mock.MatchedBy(func(input *domain.CreateMinuteInput) bool {
				return input.Title == "Quarterly review" &&
					input.AreaID == areaID &&
					input.DocumentTypeID == documentTypeID &&
					input.AttachmentName == "review.pdf" &&
					input.Attachment != nil
			})).Return(created, nil).Once()

		body, contentType := buildMultipartForm(t, minuteFormFields{
			title:          "Quarterly review",
			meetingDate:    "2026-03-15",
			areaID:         areaID.String(),
			documentTypeID: documentTypeID.String(),
			fileName:       "review.pdf",
			fileContent:    "%PDF-1.7 fake",
		})
		c, w := createAuthedContext(http.MethodPost, "/api/minutes", operatorActor, body, contentType, nil)
		handler.CreateMinuteHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		var response dto.MinuteResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "Quarterly review", response.Title)
		assert.Equal(t, "2026-03-15", response.MeetingDate)
	})

	t.Run("MissingAttachment", func(t *testing.T) {
		handler, mockUseCase := setupMinuteTestHandler(t)

		body, contentType := buildMultipartForm(t, minuteFormFields{
			title:          "Quarterly review",
			meetingDate:    "2026-03-15",
			areaID:         areaID.String(),
			documentTypeID: documentTypeID.String(),
		})
		c, w := createAuthedContext(http.MethodPost, "/api/minutes", operatorActor, body, contentType, nil)
		handler.CreateMinuteHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("InvalidMeetingDate", func(t *testing.T) {
		handler, mockUseCase := setupMinuteTestHandler(t)

		body, contentType := buildMultipartForm(t, minuteFormFields{
			title:          "Quarterly review",
			meetingDate:    "15/03/2026",
			areaID:         areaID.String(),
			documentTypeID: documentTypeID.String(),
			fileName:       "review.pdf",
			fileContent:    "x",
		})
		c, w := createAuthedContext(http.MethodPost, "/api/minutes", operatorActor, body, contentType, nil)
		handler.CreateMinuteHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("InvalidAreaID", func(t *testing.T) {
		handler, mockUseCase := setupMinuteTestHandler(t)

		body, contentType := buildMultipartForm(t, minuteFormFields{
			title:          "Quarterly review",
			meetingDate:    "2026-03-15",
			areaID:         "not-a-uuid",
			documentTypeID: documentTypeID.String(),
			fileName:       "review.pdf",
			fileContent:    "x",
		})
		c, w := createAuthedContext(http.MethodPost, "/api/minutes", operatorActor, body, contentType, nil)
		handler.CreateMinuteHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		mockUseCase.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestMinuteHandler_GetMinuteHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupMinuteTestHandler(t)
		minuteID := uuid.Must(uuid.NewV7())

		mockUseCase.On("Get", mock.Anything, operatorActor, minuteID).
			Return(&domain.MeetingMinute{ID: minuteID, Title: "Board sync"}, nil).Once()

		c, w := createAuthedContext(
			http.MethodGet, "/api/minutes/"+minuteID.String(), operatorActor, nil, "",
			gin.Params{{Key: "id", Value: minuteID.String()}},
		)
		handler.GetMinuteHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		handler, mockUseCase := setupMinuteTestHandler(t)
		minuteID := uuid.Must(uuid.NewV7())

		mockUseCase.On("Get", mock.Anything, operatorActor, minuteID).
			Return(nil, domain.ErrMinuteNotFound).Once()

		c, w := createAuthedContext(
			http.MethodGet, "/api/minutes/"+minuteID.String(), operatorActor, nil, "",
			gin.Params{{Key: "id", Value: minuteID.String()}},
		)
		handler.GetMinuteHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("BadID", func(t *testing.T) {
		handler, mockUseCase := setupMinuteTestHandler(t)

		c, w := createAuthedContext(
			http.MethodGet, "/api/minutes/nope", operatorActor, nil, "",
			gin.Params{{Key: "id", Value: "nope"}},
		)
		handler.GetMinuteHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUseCase.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestMinuteHandler_ListMinutesHandler(t *testing.T) {
	handler, mockUseCase := setupMinuteTestHandler(t)

	minutes := []*domain.MeetingMinute{
		{ID: uuid.Must(uuid.NewV7()), Title: "Board sync"},
		{ID: uuid.Must(uuid.NewV7()), Title: "Retro"},
	}
	mockUseCase.On("List", mock.Anything, operatorActor, 0, 50).Return(minutes, nil).Once()

	c, w := createAuthedContext(http.MethodGet, "/api/minutes", operatorActor, nil, "", nil)
	handler.ListMinutesHandler(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var response dto.MinuteListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Minutes, 2)
	assert.Equal(t, 50, response.Limit)
}

func TestMinuteHandler_DownloadAttachmentHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupMinuteTestHandler(t)
		minuteID := uuid.Must(uuid.NewV7())

		minute := &domain.MeetingMinute{
			ID:             minuteID,
			AttachmentName: "review.pdf",
			ContentType:    "application/pdf",
		}
		reader := io.NopCloser(strings.NewReader("%PDF-1.7 fake"))
		mockUseCase.On("DownloadAttachment", mock.Anything, operatorActor, minuteID).
			Return(minute, reader, nil).Once()

		c, w := createAuthedContext(
			http.MethodGet, "/api/minutes/"+minuteID.String()+"/attachment", operatorActor, nil, "",
			gin.Params{{Key: "id", Value: minuteID.String()}},
		)
		handler.DownloadAttachmentHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `attachment; filename="review.pdf"`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
		assert.Equal(t, "%PDF-1.7 fake", w.Body.String())
	})

	t.Run("NotFound", func(t *testing.T) {
		handler, mockUseCase := setupMinuteTestHandler(t)
		minuteID := uuid.Must(uuid.NewV7())

		mockUseCase.On("DownloadAttachment", mock.Anything, operatorActor, minuteID).
			Return(nil, nil, domain.ErrMinuteNotFound).Once()

		c, w := createAuthedContext(
			http.MethodGet, "/api/minutes/"+minuteID.String()+"/attachment", operatorActor, nil, "",
			gin.Params{{Key: "id", Value: minuteID.String()}},
		)
		handler.DownloadAttachmentHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMinuteHandler_DeleteMinuteHandler(t *testing.T) {
	t.Run("Admin", func(t *testing.T) {
		handler, mockUseCase := setupMinuteTestHandler(t)
		minuteID := uuid.Must(uuid.NewV7())

		mockUseCase.On("Delete", mock.Anything, adminActor, minuteID).Return(nil).Once()

		c, w := createAuthedContext(
			http.MethodDelete, "/api/minutes/"+minuteID.String(), adminActor, nil, "",
			gin.Params{{Key: "id", Value: minuteID.String()}},
		)
		handler.DeleteMinuteHandler(c)
		c.Writer.WriteHeaderNow()

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("OperatorForbidden", func(t *testing.T) {
		handler, mockUseCase := setupMinuteTestHandler(t)
		minuteID := uuid.Must(uuid.NewV7())

		mockUseCase.On("Delete", mock.Anything, operatorActor, minuteID).
			Return(authDomain.ErrInsufficientRole).Once()

		c, w := createAuthedContext(
			http.MethodDelete, "/api/minutes/"+minuteID.String(), operatorActor, nil, "",
			gin.Params{{Key: "id", Value: minuteID.String()}},
		)
		handler.DeleteMinuteHandler(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
		var response httputil.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "insufficient_role", response.Reason)
	})
}
