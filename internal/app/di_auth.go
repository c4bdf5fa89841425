package app

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	authHTTP "github.com/allisson/staffdocs/internal/auth/http"
	authRepository "github.com/allisson/staffdocs/internal/auth/repository"
	authMySQL "github.com/allisson/staffdocs/internal/auth/repository/mysql"
	authService "github.com/allisson/staffdocs/internal/auth/service"
	authUseCase "github.com/allisson/staffdocs/internal/auth/usecase"
	"github.com/allisson/staffdocs/internal/config"
	"github.com/allisson/staffdocs/internal/ratelimit"
	userDomain "github.com/allisson/staffdocs/internal/user/domain"
	userUseCase "github.com/allisson/staffdocs/internal/user/usecase"
)

// TokenCodec returns the JWT codec used for access and refresh tokens.
func (c *Container) TokenCodec() (authService.TokenCodec, error) {
	c.tokenCodecInit.Do(func() {
		codec, err := c.initTokenCodec()
		if err != nil {
			c.initErrors["tokenCodec"] = err
			return
		}
		c.tokenCodec = codec
	})
	if storedErr, exists := c.initErrors["tokenCodec"]; exists {
		return nil, storedErr
	}
	return c.tokenCodec, nil
}

// PasswordService returns the password hashing service.
func (c *Container) PasswordService() authService.PasswordService {
	c.passwordServiceInit.Do(func() {
		c.passwordService = authService.NewPasswordService()
	})
	return c.passwordService
}

// RefreshTokenRepository returns the refresh token repository based on database driver.
func (c *Container) RefreshTokenRepository() (authUseCase.RefreshTokenRepository, error) {
	c.refreshRepoInit.Do(func() {
		repo, err := c.initRefreshTokenRepository()
		if err != nil {
			c.initErrors["refreshTokenRepo"] = err
			return
		}
		c.refreshTokenRepo = repo
	})
	if storedErr, exists := c.initErrors["refreshTokenRepo"]; exists {
		return nil, storedErr
	}
	return c.refreshTokenRepo, nil
}

// AccountDirectory returns the account lookup port backed by the user repository.
func (c *Container) AccountDirectory() (authUseCase.AccountDirectory, error) {
	c.accountDirInit.Do(func() {
		userRepo, err := c.UserRepository()
		if err != nil {
			c.initErrors["accountDirectory"] = fmt.Errorf(
				"failed to get user repository for account directory: %w", err)
			return
		}
		c.accountDirectory = &userAccountDirectory{users: userRepo}
	})
	if storedErr, exists := c.initErrors["accountDirectory"]; exists {
		return nil, storedErr
	}
	return c.accountDirectory, nil
}

// SessionUseCase returns the session use case.
func (c *Container) SessionUseCase() (authUseCase.SessionUseCase, error) {
	c.sessionUseCaseInit.Do(func() {
		useCase, err := c.initSessionUseCase()
		if err != nil {
			c.initErrors["sessionUseCase"] = err
			return
		}
		c.sessionUseCase = useCase
	})
	if storedErr, exists := c.initErrors["sessionUseCase"]; exists {
		return nil, storedErr
	}
	return c.sessionUseCase, nil
}

// SessionHandler returns the HTTP handler for the session lifecycle.
func (c *Container) SessionHandler() (*authHTTP.SessionHandler, error) {
	c.sessionHandlerInit.Do(func() {
		sessionUseCase, err := c.SessionUseCase()
		if err != nil {
			c.initErrors["sessionHandler"] = fmt.Errorf(
				"failed to get session use case for session handler: %w", err)
			return
		}
		c.sessionHandler = authHTTP.NewSessionHandler(sessionUseCase, c.Logger())
	})
	if storedErr, exists := c.initErrors["sessionHandler"]; exists {
		return nil, storedErr
	}
	return c.sessionHandler, nil
}

// LoginLimiter returns the fixed-window limiter for the login endpoint.
func (c *Container) LoginLimiter() *ratelimit.Limiter {
	c.loginLimiterInit.Do(func() {
		c.loginLimiter = ratelimit.New(
			c.config.LoginRateLimitWindow,
			c.config.LoginRateLimitMaxAttempts,
		)
	})
	return c.loginLimiter
}

// RefreshLimiter returns the fixed-window limiter for the refresh endpoint.
func (c *Container) RefreshLimiter() *ratelimit.Limiter {
	c.refreshLimiterInit.Do(func() {
		c.refreshLimiter = ratelimit.New(
			c.config.RefreshRateLimitWindow,
			c.config.RefreshRateLimitMaxAttempts,
		)
	})
	return c.refreshLimiter
}

// initTokenCodec validates the configured signing secrets and builds the codec.
func (c *Container) initTokenCodec() (authService.TokenCodec, error) {
	if len(c.config.AccessTokenSecret) < config.MinTokenSecretLength {
		return nil, fmt.Errorf(
			"AUTH_ACCESS_TOKEN_SECRET must be at least %d characters",
			config.MinTokenSecretLength,
		)
	}
	if len(c.config.RefreshTokenSecret) < config.MinTokenSecretLength {
		return nil, fmt.Errorf(
			"AUTH_REFRESH_TOKEN_SECRET must be at least %d characters",
			config.MinTokenSecretLength,
		)
	}
	return authService.NewTokenCodec(c.config.AccessTokenSecret, c.config.RefreshTokenSecret)
}

// initRefreshTokenRepository creates the refresh token repository based on the database driver.
func (c *Container) initRefreshTokenRepository() (authUseCase.RefreshTokenRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for refresh token repository: %w", err)
	}

	switch c.config.DBDriver {
	case "postgres":
		return authRepository.NewPostgreSQLRefreshTokenRepository(db), nil
	case "mysql":
		return authMySQL.NewMySQLRefreshTokenRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initSessionUseCase creates the session use case with all its dependencies.
func (c *Container) initSessionUseCase() (authUseCase.SessionUseCase, error) {
	accounts, err := c.AccountDirectory()
	if err != nil {
		return nil, fmt.Errorf("failed to get account directory for session use case: %w", err)
	}

	refreshRepo, err := c.RefreshTokenRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token repository for session use case: %w", err)
	}

	tokenCodec, err := c.TokenCodec()
	if err != nil {
		return nil, fmt.Errorf("failed to get token codec for session use case: %w", err)
	}

	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for session use case: %w", err)
	}

	baseUseCase := authUseCase.NewSessionUseCase(
		c.config,
		accounts,
		refreshRepo,
		tokenCodec,
		c.PasswordService(),
		txManager,
		c.EventBus(),
		c.Logger(),
	)

	// Wrap with metrics if enabled
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for session use case: %w", err)
		}
		return authUseCase.NewSessionUseCaseWithMetrics(baseUseCase, businessMetrics), nil
	}

	return baseUseCase, nil
}

// userAccountDirectory adapts the user repository to the account lookup port
// used by the session flows.
type userAccountDirectory struct {
	users userUseCase.UserRepository
}

func (d *userAccountDirectory) GetByUsername(
	ctx context.Context,
	username string,
) (*authUseCase.Account, error) {
	user, err := d.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return toAccount(user), nil
}

func (d *userAccountDirectory) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*authUseCase.Account, error) {
	user, err := d.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toAccount(user), nil
}

func toAccount(user *userDomain.User) *authUseCase.Account {
	return &authUseCase.Account{
		ID:           user.ID,
		Username:     user.Username,
		Role:         user.Role,
		IsActive:     user.IsActive,
		PasswordHash: user.PasswordHash,
	}
}
