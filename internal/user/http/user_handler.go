// Package http provides HTTP handlers for account management.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
	authHTTP "github.com/allisson/staffdocs/internal/auth/http"
	apperrors "github.com/allisson/staffdocs/internal/errors"
	"github.com/allisson/staffdocs/internal/httputil"
	"github.com/allisson/staffdocs/internal/user/domain"
	"github.com/allisson/staffdocs/internal/user/http/dto"
	userUseCase "github.com/allisson/staffdocs/internal/user/usecase"
	customValidation "github.com/allisson/staffdocs/internal/validation"
)

// UserHandler handles HTTP requests for account management. All routes sit
// behind the authentication middleware; authorization happens in the use case
// against the attached principal.
type UserHandler struct {
	userUseCase userUseCase.UserUseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler with required dependencies.
func NewUserHandler(useCase userUseCase.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: useCase,
		logger:      logger,
	}
}

// principal extracts the authenticated principal, or fails the request. A
// missing principal behind the middleware is a wiring bug, not a client error.
func (h *UserHandler) principal(c *gin.Context) (authDomain.Principal, bool) {
	principal, ok := authHTTP.GetPrincipal(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
	}
	return principal, ok
}

func (h *UserHandler) userID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return uuid.UUID{}, false
	}
	return id, true
}

func (h *UserHandler) handleError(c *gin.Context, err error, role authDomain.Role) {
	authHTTP.HandleForbiddenGin(c, err, role, h.logger)
}

// CreateUserHandler registers a new account.
// POST /api/users - Admin only.
func (h *UserHandler) CreateUserHandler(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &domain.CreateUserInput{
		Username: req.Username,
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Role:     authDomain.Role(req.Role),
		IsActive: req.IsActive,
	}

	user, err := h.userUseCase.Create(c.Request.Context(), principal, input)
	if err != nil {
		h.handleError(c, err, principal.Role)
		return
	}

	c.JSON(http.StatusCreated, dto.NewUserResponse(user))
}

// GetUserHandler retrieves an account.
// GET /api/users/:id - Owner or admin.
func (h *UserHandler) GetUserHandler(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.userID(c)
	if !ok {
		return
	}

	user, err := h.userUseCase.Get(c.Request.Context(), principal, id)
	if err != nil {
		h.handleError(c, err, principal.Role)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// ListUsersHandler pages through accounts.
// GET /api/users - Admin only.
func (h *UserHandler) ListUsersHandler(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	users, err := h.userUseCase.List(c.Request.Context(), principal, offset, limit)
	if err != nil {
		h.handleError(c, err, principal.Role)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserListResponse(users, offset, limit))
}

// UpdateUserHandler modifies profile fields.
// PUT /api/users/:id - Owner or admin.
func (h *UserHandler) UpdateUserHandler(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.userID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	user, err := h.userUseCase.Update(c.Request.Context(), principal, id, &domain.UpdateUserInput{
		FullName: req.FullName,
		Email:    req.Email,
	})
	if err != nil {
		h.handleError(c, err, principal.Role)
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// ChangePasswordHandler replaces the account password.
// PUT /api/users/:id/password - Owner or admin.
func (h *UserHandler) ChangePasswordHandler(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.userID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.userUseCase.ChangePassword(c.Request.Context(), principal, id, req.Password); err != nil {
		h.handleError(c, err, principal.Role)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

// ActivateUserHandler activates an account.
// POST /api/users/:id/activate - Admin only, never on the actor's own account.
func (h *UserHandler) ActivateUserHandler(c *gin.Context) {
	h.setActive(c, true)
}

// DeactivateUserHandler deactivates an account.
// POST /api/users/:id/deactivate - Admin only, never on the actor's own account.
func (h *UserHandler) DeactivateUserHandler(c *gin.Context) {
	h.setActive(c, false)
}

func (h *UserHandler) setActive(c *gin.Context, active bool) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.userID(c)
	if !ok {
		return
	}

	if err := h.userUseCase.SetActive(c.Request.Context(), principal, id, active); err != nil {
		h.handleError(c, err, principal.Role)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}

// DeleteUserHandler removes an account.
// DELETE /api/users/:id - Admin only, never on the actor's own account.
func (h *UserHandler) DeleteUserHandler(c *gin.Context) {
	principal, ok := h.principal(c)
	if !ok {
		return
	}
	id, ok := h.userID(c)
	if !ok {
		return
	}

	if err := h.userUseCase.Delete(c.Request.Context(), principal, id); err != nil {
		h.handleError(c, err, principal.Role)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
