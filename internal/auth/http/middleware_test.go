package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
	authService "github.com/allisson/staffdocs/internal/auth/service"
	"github.com/allisson/staffdocs/internal/httputil"
)

func setupAuthRouter(t *testing.T) (*gin.Engine, authService.TokenCodec) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	codec, err := authService.NewTokenCodec(
		"test-access-secret-0123456789abcdef",
		"test-refresh-secret-0123456789abcdef",
	)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.Use(AuthenticationMiddleware(codec, logger))
	router.GET("/protected", func(c *gin.Context) {
		principal, ok := GetPrincipal(c.Request.Context())
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no principal"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"id":       principal.ID.String(),
			"username": principal.Username,
			"role":     string(principal.Role),
		})
	})
	return router, codec
}

func doProtectedRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var response httputil.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response.Code
}

func TestAuthenticationMiddleware_Success(t *testing.T) {
	router, codec := setupAuthRouter(t)

	principal := authDomain.Principal{
		ID:       uuid.Must(uuid.NewV7()),
		Username: "maria.souza",
		Role:     authDomain.RoleAdmin,
	}
	token, err := codec.IssueAccess(principal, time.Minute)
	require.NoError(t, err)

	w := doProtectedRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, principal.ID.String(), body["id"])
	assert.Equal(t, "maria.souza", body["username"])
	assert.Equal(t, "admin", body["role"])
}

func TestAuthenticationMiddleware_CaseInsensitiveBearer(t *testing.T) {
	router, codec := setupAuthRouter(t)

	token, err := codec.IssueAccess(authDomain.Principal{
		ID:   uuid.Must(uuid.NewV7()),
		Role: authDomain.RoleOperator,
	}, time.Minute)
	require.NoError(t, err)

	w := doProtectedRequest(router, "bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthenticationMiddleware_MissingHeader(t *testing.T) {
	router, _ := setupAuthRouter(t)

	w := doProtectedRequest(router, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, httputil.CodeUnauthorized, errorCode(t, w))
}

func TestAuthenticationMiddleware_MalformedHeader(t *testing.T) {
	router, _ := setupAuthRouter(t)

	for _, header := range []string{"Basic abc123", "Bearer", "Bearer "} {
		w := doProtectedRequest(router, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
		assert.Equal(t, httputil.CodeUnauthorized, errorCode(t, w), "header %q", header)
	}
}

func TestAuthenticationMiddleware_ExpiredToken(t *testing.T) {
	router, codec := setupAuthRouter(t)

	token, err := codec.IssueAccess(authDomain.Principal{
		ID:   uuid.Must(uuid.NewV7()),
		Role: authDomain.RoleOperator,
	}, -time.Minute)
	require.NoError(t, err)

	w := doProtectedRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, httputil.CodeTokenExpired, errorCode(t, w))
}

func TestAuthenticationMiddleware_TamperedToken(t *testing.T) {
	router, codec := setupAuthRouter(t)

	token, err := codec.IssueAccess(authDomain.Principal{
		ID:   uuid.Must(uuid.NewV7()),
		Role: authDomain.RoleOperator,
	}, time.Minute)
	require.NoError(t, err)

	w := doProtectedRequest(router, "Bearer "+token[:len(token)-2]+"xx")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, httputil.CodeInvalidToken, errorCode(t, w))
}

func TestAuthenticationMiddleware_RefreshTokenRejected(t *testing.T) {
	router, codec := setupAuthRouter(t)

	// A refresh token must not open authenticated routes.
	token, err := codec.IssueRefresh(uuid.Must(uuid.NewV7()), uuid.Must(uuid.NewV7()), time.Hour)
	require.NoError(t, err)

	w := doProtectedRequest(router, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, httputil.CodeInvalidToken, errorCode(t, w))
}
