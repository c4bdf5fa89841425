package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
	authService "github.com/allisson/staffdocs/internal/auth/service"
	apperrors "github.com/allisson/staffdocs/internal/errors"
	"github.com/allisson/staffdocs/internal/httputil"
)

// AuthenticationMiddleware authenticates requests via a Bearer access token.
//
// The middleware:
// 1. Extracts the Bearer token from the Authorization header (case-insensitive)
// 2. Verifies signature, expiry and token kind with the token codec
// 3. Stores the resulting Principal in the request context for GetPrincipal()
//
// Error handling:
//   - Missing/malformed Authorization header → 401 UNAUTHORIZED
//   - Expired token → 401 TOKEN_EXPIRED
//   - Invalid signature, malformed token, wrong kind → 401 INVALID_TOKEN
//
// No role checks happen here; handlers consult the account policy with the
// attached principal.
func AuthenticationMiddleware(tokenCodec authService.TokenCodec, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		accessToken := authHeader[len(bearerPrefix):]
		if accessToken == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		claims, err := tokenCodec.Verify(accessToken, authDomain.TokenKindAccess)
		if err != nil {
			logger.Debug("authentication failed",
				slog.String("error", err.Error()))
			HandleSessionErrorGin(c, err, logger)
			c.Abort()
			return
		}

		principal := authDomain.Principal{
			ID:       claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
		}

		ctx := WithPrincipal(c.Request.Context(), principal)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
