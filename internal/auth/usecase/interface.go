// Package usecase implements the session business logic: login, refresh-token
// rotation with reuse detection, and logout.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
)

// Account is the minimal account view the session flows need. The user module
// owns the full account entity; the dependency injection layer adapts its
// repository to this port.
type Account struct {
	ID           uuid.UUID
	Username     string
	Role         authDomain.Role
	IsActive     bool
	PasswordHash string
}

// AccountDirectory looks up accounts for authentication.
type AccountDirectory interface {
	// GetByUsername retrieves an account by login name. Returns an
	// errors.ErrNotFound-wrapped error if no account matches.
	GetByUsername(ctx context.Context, username string) (*Account, error)

	// GetByID retrieves an account by ID. Returns an errors.ErrNotFound-wrapped
	// error if no account matches.
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)
}

// RefreshTokenRepository defines persistence operations for refresh-token
// records. Implementations must support transaction-aware operations via
// context propagation.
type RefreshTokenRepository interface {
	// Create stores a new refresh-token record.
	Create(ctx context.Context, token *authDomain.RefreshToken) error

	// GetByTokenHash retrieves a record by token hash. Returns
	// ErrRefreshTokenNotFound if no record matches.
	GetByTokenHash(ctx context.Context, tokenHash string) (*authDomain.RefreshToken, error)

	// Consume atomically revokes an active, unexpired record and links its
	// successor. Exactly one of any concurrent consumers succeeds; the rest
	// get ErrRefreshTokenNotFound.
	Consume(
		ctx context.Context,
		tokenHash string,
		replacedBy uuid.UUID,
		now time.Time,
	) (*authDomain.RefreshToken, error)

	// Revoke marks a record revoked. Idempotent.
	Revoke(ctx context.Context, tokenID uuid.UUID, revokedAt time.Time) error

	// RevokeChain revokes a record and every successor reachable through
	// replaced_by links.
	RevokeChain(ctx context.Context, tokenID uuid.UUID, revokedAt time.Time) error

	// RevokeAllForUser revokes every active record belonging to a user.
	RevokeAllForUser(ctx context.Context, userID uuid.UUID, revokedAt time.Time) error

	// DeleteExpired removes records past their expiry, returning the count.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SessionUseCase defines the session lifecycle operations.
type SessionUseCase interface {
	// Login verifies credentials and issues a token pair. Unknown username,
	// wrong password and inactive account all fail with ErrInvalidCredentials.
	Login(ctx context.Context, input *authDomain.LoginInput) (*authDomain.SessionOutput, error)

	// Refresh rotates a refresh token and issues a new pair. Presenting an
	// already-rotated token revokes the whole rotation chain plus every active
	// token of the user, and fails with ErrRefreshTokenReused.
	Refresh(ctx context.Context, refreshToken string) (*authDomain.SessionOutput, error)

	// Logout revokes the refresh token's record. Unknown and already-revoked
	// tokens succeed indistinguishably from active ones.
	Logout(ctx context.Context, refreshToken string) error

	// CleanExpired deletes refresh-token records past their expiry.
	CleanExpired(ctx context.Context) (int64, error)
}
