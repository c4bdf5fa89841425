package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
	"github.com/allisson/staffdocs/internal/httputil"
)

// HandleSessionErrorGin maps session and token errors to their machine codes
// before falling back to the generic sentinel mapping. Clients branch on the
// code: TOKEN_EXPIRED means refresh, INVALID_TOKEN means log in again.
func HandleSessionErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	switch {
	case errors.Is(err, authDomain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, httputil.ErrorResponse{
			Error:   "unauthorized",
			Message: "invalid credentials",
			Code:    httputil.CodeInvalidCredentials,
		})
	case errors.Is(err, authDomain.ErrTokenExpired),
		errors.Is(err, authDomain.ErrRefreshTokenExpired):
		c.JSON(http.StatusUnauthorized, httputil.ErrorResponse{
			Error:   "unauthorized",
			Message: "token expired",
			Code:    httputil.CodeTokenExpired,
		})
	case errors.Is(err, authDomain.ErrInvalidToken),
		errors.Is(err, authDomain.ErrRefreshTokenNotFound),
		errors.Is(err, authDomain.ErrRefreshTokenReused):
		// Reuse is deliberately indistinguishable from an invalid token; the
		// replay signal is handled internally (chain revocation plus event).
		c.JSON(http.StatusUnauthorized, httputil.ErrorResponse{
			Error:   "unauthorized",
			Message: "invalid token",
			Code:    httputil.CodeInvalidToken,
		})
	default:
		httputil.HandleErrorGin(c, err, logger)
	}
}

// HandleForbiddenGin renders a 403 with the reason and role context clients
// show in their UI. Used by handlers guarding operations with the account
// policy; non-policy errors fall back to the generic mapping.
func HandleForbiddenGin(c *gin.Context, err error, userRole authDomain.Role, logger *slog.Logger) {
	switch {
	case errors.Is(err, authDomain.ErrSelfActionNotAllowed):
		c.JSON(http.StatusForbidden, httputil.ErrorResponse{
			Error:         "forbidden",
			Message:       "action not allowed on own account",
			Code:          httputil.CodeForbidden,
			Reason:        "self_action_not_allowed",
			RequiredRoles: []string{string(authDomain.RoleAdmin)},
			UserRole:      string(userRole),
		})
	case errors.Is(err, authDomain.ErrInsufficientRole):
		c.JSON(http.StatusForbidden, httputil.ErrorResponse{
			Error:         "forbidden",
			Message:       "insufficient role",
			Code:          httputil.CodeForbidden,
			Reason:        "insufficient_role",
			RequiredRoles: []string{string(authDomain.RoleAdmin)},
			UserRole:      string(userRole),
		})
	default:
		httputil.HandleErrorGin(c, err, logger)
	}
}
