package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
	"github.com/allisson/staffdocs/internal/auth/http/dto"
	authUseCase "github.com/allisson/staffdocs/internal/auth/usecase"
	"github.com/allisson/staffdocs/internal/httputil"
	customValidation "github.com/allisson/staffdocs/internal/validation"
)

// SessionHandler handles HTTP requests for the session lifecycle.
type SessionHandler struct {
	sessionUseCase authUseCase.SessionUseCase
	logger         *slog.Logger
}

// NewSessionHandler creates a new session handler with required dependencies.
func NewSessionHandler(
	sessionUseCase authUseCase.SessionUseCase,
	logger *slog.Logger,
) *SessionHandler {
	return &SessionHandler{
		sessionUseCase: sessionUseCase,
		logger:         logger,
	}
}

// LoginHandler authenticates a user and issues a token pair.
// POST /api/auth/login - No authentication required.
func (h *SessionHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &authDomain.LoginInput{
		Username: req.Username,
		Password: req.Password,
	}

	output, err := h.sessionUseCase.Login(c.Request.Context(), input)
	if err != nil {
		HandleSessionErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewSessionResponse(output))
}

// RefreshHandler rotates a refresh token and issues a new token pair.
// POST /api/auth/refresh - No authentication required; the token is the credential.
func (h *SessionHandler) RefreshHandler(c *gin.Context) {
	var req dto.RefreshRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	output, err := h.sessionUseCase.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		HandleSessionErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewSessionResponse(output))
}

// LogoutHandler revokes a refresh token.
// POST /api/auth/logout - Always returns 200 with an empty body; unknown and
// already-revoked tokens are indistinguishable from active ones.
func (h *SessionHandler) LogoutHandler(c *gin.Context) {
	var req dto.LogoutRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.sessionUseCase.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		HandleSessionErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}
