// Package http provides the Gin HTTP server and route registration.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	authHTTP "github.com/allisson/staffdocs/internal/auth/http"
	authService "github.com/allisson/staffdocs/internal/auth/service"
	catalogHTTP "github.com/allisson/staffdocs/internal/catalog/http"
	"github.com/allisson/staffdocs/internal/config"
	"github.com/allisson/staffdocs/internal/metrics"
	minutesHTTP "github.com/allisson/staffdocs/internal/minutes/http"
	"github.com/allisson/staffdocs/internal/ratelimit"
	userHTTP "github.com/allisson/staffdocs/internal/user/http"
)

// Server represents the API HTTP server.
type Server struct {
	db     *sql.DB
	router *gin.Engine
	server *http.Server
	logger *slog.Logger
	addr   string
}

// NewServer creates a new HTTP server. SetupRouter must be called before Start.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		addr:   fmt.Sprintf("%s:%d", host, port),
	}
}

// RouterConfig carries the handlers and middleware inputs for route registration.
type RouterConfig struct {
	Config          *config.Config
	TokenCodec      authService.TokenCodec
	MetricsProvider *metrics.Provider
	SessionHandler  *authHTTP.SessionHandler
	UserHandler     *userHTTP.UserHandler
	CatalogHandler  *catalogHTTP.CatalogHandler
	MinuteHandler   *minutesHTTP.MinuteHandler
	LoginLimiter    *ratelimit.Limiter
	RefreshLimiter  *ratelimit.Limiter
}

// SetupRouter builds the Gin engine and registers all application routes.
//
// Login and refresh sit behind per-IP fixed-window limiters and outside the
// authentication middleware. Everything else under /api requires a bearer
// token; the per-principal token-bucket limiter applies after authentication
// so the key is the user ID rather than the source IP.
func (s *Server) SetupRouter(rc RouterConfig) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(
		rc.Config.CORSEnabled,
		rc.Config.CORSAllowOrigins,
		s.logger,
	); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if rc.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(
			rc.MetricsProvider.MeterProvider(),
			rc.Config.MetricsNamespace,
		))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	api := router.Group("/api")

	auth := api.Group("/auth")
	auth.POST(
		"/login",
		authHTTP.FixedWindowRateLimitMiddleware("login", rc.LoginLimiter, s.logger),
		rc.SessionHandler.LoginHandler,
	)
	auth.POST(
		"/refresh",
		authHTTP.FixedWindowRateLimitMiddleware("refresh", rc.RefreshLimiter, s.logger),
		rc.SessionHandler.RefreshHandler,
	)
	auth.POST("/logout", rc.SessionHandler.LogoutHandler)

	protected := api.Group("")
	protected.Use(authHTTP.AuthenticationMiddleware(rc.TokenCodec, s.logger))
	if rc.Config.RateLimitEnabled {
		protected.Use(authHTTP.APIRateLimitMiddleware(
			rc.Config.RateLimitRequestsPerSec,
			rc.Config.RateLimitBurst,
			s.logger,
		))
	}

	users := protected.Group("/users")
	users.POST("", rc.UserHandler.CreateUserHandler)
	users.GET("", rc.UserHandler.ListUsersHandler)
	users.GET("/:id", rc.UserHandler.GetUserHandler)
	users.PUT("/:id", rc.UserHandler.UpdateUserHandler)
	users.PUT("/:id/password", rc.UserHandler.ChangePasswordHandler)
	users.POST("/:id/activate", rc.UserHandler.ActivateUserHandler)
	users.POST("/:id/deactivate", rc.UserHandler.DeactivateUserHandler)
	users.DELETE("/:id", rc.UserHandler.DeleteUserHandler)

	catalog := protected.Group("/catalog/:kind")
	catalog.POST("", rc.CatalogHandler.CreateItemHandler)
	catalog.GET("", rc.CatalogHandler.ListItemsHandler)
	catalog.GET("/:id", rc.CatalogHandler.GetItemHandler)
	catalog.PUT("/:id", rc.CatalogHandler.UpdateItemHandler)
	catalog.DELETE("/:id", rc.CatalogHandler.DeleteItemHandler)

	minutes := protected.Group("/minutes")
	minutes.POST("", rc.MinuteHandler.CreateMinuteHandler)
	minutes.GET("", rc.MinuteHandler.ListMinutesHandler)
	minutes.GET("/:id", rc.MinuteHandler.GetMinuteHandler)
	minutes.GET("/:id/attachment", rc.MinuteHandler.DownloadAttachmentHandler)
	minutes.DELETE("/:id", rc.MinuteHandler.DeleteMinuteHandler)

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether downstream dependencies are reachable.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}

	ready := true
	if s.db == nil {
		components["database"] = "error"
		ready = false
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := s.db.PingContext(ctx); err != nil {
			components["database"] = "error"
			ready = false
		} else {
			components["database"] = "ok"
		}
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "components": components})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready", "components": components})
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting http server", slog.String("addr", s.addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
