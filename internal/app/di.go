// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"gocloud.dev/blob"

	authHTTP "github.com/allisson/staffdocs/internal/auth/http"
	authService "github.com/allisson/staffdocs/internal/auth/service"
	authUseCase "github.com/allisson/staffdocs/internal/auth/usecase"
	catalogHTTP "github.com/allisson/staffdocs/internal/catalog/http"
	catalogUseCase "github.com/allisson/staffdocs/internal/catalog/usecase"
	"github.com/allisson/staffdocs/internal/config"
	"github.com/allisson/staffdocs/internal/database"
	"github.com/allisson/staffdocs/internal/events"
	"github.com/allisson/staffdocs/internal/http"
	"github.com/allisson/staffdocs/internal/metrics"
	minutesHTTP "github.com/allisson/staffdocs/internal/minutes/http"
	minutesService "github.com/allisson/staffdocs/internal/minutes/service"
	minutesUseCase "github.com/allisson/staffdocs/internal/minutes/usecase"
	"github.com/allisson/staffdocs/internal/ratelimit"
	userHTTP "github.com/allisson/staffdocs/internal/user/http"
	userUseCase "github.com/allisson/staffdocs/internal/user/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger *slog.Logger
	db     *sql.DB

	// Managers
	txManager database.TxManager
	eventBus  *events.Bus

	// Metrics
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Auth components
	tokenCodec       authService.TokenCodec
	passwordService  authService.PasswordService
	refreshTokenRepo authUseCase.RefreshTokenRepository
	accountDirectory authUseCase.AccountDirectory
	sessionUseCase   authUseCase.SessionUseCase
	sessionHandler   *authHTTP.SessionHandler
	loginLimiter     *ratelimit.Limiter
	refreshLimiter   *ratelimit.Limiter

	// User components
	userRepo    userUseCase.UserRepository
	userUseCase userUseCase.UserUseCase
	userHandler *userHTTP.UserHandler

	// Catalog components
	catalogRepo    catalogUseCase.CatalogRepository
	catalogUseCase catalogUseCase.CatalogUseCase
	catalogHandler *catalogHTTP.CatalogHandler

	// Meeting minutes components
	blobBucket      *blob.Bucket
	attachmentStore minutesService.AttachmentStore
	minuteRepo      minutesUseCase.MinuteRepository
	minuteUseCase   minutesUseCase.MinuteUseCase
	minuteHandler   *minutesHTTP.MinuteHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                  sync.Mutex
	loggerInit          sync.Once
	dbInit              sync.Once
	txManagerInit       sync.Once
	eventBusInit        sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	tokenCodecInit      sync.Once
	passwordServiceInit sync.Once
	refreshRepoInit     sync.Once
	accountDirInit      sync.Once
	sessionUseCaseInit  sync.Once
	sessionHandlerInit  sync.Once
	loginLimiterInit    sync.Once
	refreshLimiterInit  sync.Once
	userRepoInit        sync.Once
	userUseCaseInit     sync.Once
	userHandlerInit     sync.Once
	catalogRepoInit     sync.Once
	catalogUseCaseInit  sync.Once
	catalogHandlerInit  sync.Once
	blobBucketInit      sync.Once
	minuteRepoInit      sync.Once
	minuteUseCaseInit   sync.Once
	minuteHandlerInit   sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
// It creates and configures the database connection on first access.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		db, err := c.initDB()
		if err != nil {
			c.initErrors["db"] = err
			return
		}
		c.db = db
	})
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// TxManager returns the transaction manager.
// It requires a database connection to be initialized first.
func (c *Container) TxManager() (database.TxManager, error) {
	c.txManagerInit.Do(func() {
		txManager, err := c.initTxManager()
		if err != nil {
			c.initErrors["txManager"] = err
			return
		}
		c.txManager = txManager
	})
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// EventBus returns the in-process event bus.
func (c *Container) EventBus() *events.Bus {
	c.eventBusInit.Do(func() {
		c.eventBus = events.NewBus(c.Logger())
	})
	return c.eventBus
}

// MetricsProvider returns the OpenTelemetry metrics provider.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = fmt.Errorf("failed to create metrics provider: %w", err)
			return
		}
		c.metricsProvider = provider
	})
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["businessMetrics"] = err
			return
		}
		businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["businessMetrics"] = fmt.Errorf("failed to create business metrics: %w", err)
			return
		}
		c.businessMetrics = businessMetrics
	})
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the HTTP server instance.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.httpServerInit.Do(func() {
		server, err := c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}
		c.httpServer = server
	})
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics HTTP server instance.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		server, err := c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
			return
		}
		c.metricsServer = server
	})
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.blobBucket != nil {
		if err := c.blobBucket.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("blob bucket close: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(context.Background(), database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initTxManager creates the transaction manager using the database connection.
func (c *Container) initTxManager() (database.TxManager, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for tx manager: %w", err)
	}
	return database.NewTxManager(db), nil
}

// initHTTPServer creates the HTTP server with all its dependencies.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	tokenCodec, err := c.TokenCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to get token codec for http server: %w", err)
	}

	sessionHandler, err := c.SessionHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get session handler for http server: %w", err)
	}

	userHandler, err := c.UserHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get user handler for http server: %w", err)
	}

	catalogHandler, err := c.CatalogHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get catalog handler for http server: %w", err)
	}

	minuteHandler, err := c.MinuteHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get minute handler for http server: %w", err)
	}

	var metricsProvider *metrics.Provider
	if c.config.MetricsEnabled {
		metricsProvider, err = c.MetricsProvider()
		if err != nil {
			return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
		}
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, logger)
	server.SetupRouter(http.RouterConfig{
		Config:          c.config,
		TokenCodec:      tokenCodec,
		MetricsProvider: metricsProvider,
		SessionHandler:  sessionHandler,
		UserHandler:     userHandler,
		CatalogHandler:  catalogHandler,
		MinuteHandler:   minuteHandler,
		LoginLimiter:    c.LoginLimiter(),
		RefreshLimiter:  c.RefreshLimiter(),
	})

	return server, nil
}

// initMetricsServer creates the metrics HTTP server.
func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}

	return http.NewMetricsServer(
		c.config.ServerHost,
		c.config.MetricsPort,
		c.Logger(),
		metricsProvider,
	), nil
}
