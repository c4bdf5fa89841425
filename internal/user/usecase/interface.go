// Package usecase implements the account management business logic. Every
// operation takes the acting principal and consults the account policy before
// touching data.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
	"github.com/allisson/staffdocs/internal/user/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context, offset, limit int) ([]*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string, updatedAt time.Time) error
	SetActive(ctx context.Context, id uuid.UUID, active bool, updatedAt time.Time) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// UserUseCase defines account management operations. All of them return an
// ErrForbidden-wrapped error when the account policy refuses the actor.
type UserUseCase interface {
	// Create registers a new account. Admin only.
	Create(ctx context.Context, actor authDomain.Principal, input *domain.CreateUserInput) (*domain.User, error)

	// Get retrieves an account. Owner or admin.
	Get(ctx context.Context, actor authDomain.Principal, id uuid.UUID) (*domain.User, error)

	// List pages through accounts. Admin only.
	List(ctx context.Context, actor authDomain.Principal, offset, limit int) ([]*domain.User, error)

	// Update modifies profile fields. Owner or admin.
	Update(ctx context.Context, actor authDomain.Principal, id uuid.UUID, input *domain.UpdateUserInput) (*domain.User, error)

	// ChangePassword re-hashes and stores a new password. Owner or admin.
	ChangePassword(ctx context.Context, actor authDomain.Principal, id uuid.UUID, newPassword string) error

	// SetActive activates or deactivates an account. Admin only, never on the
	// actor's own account. Publishes user.activated / user.deactivated.
	SetActive(ctx context.Context, actor authDomain.Principal, id uuid.UUID, active bool) error

	// Delete removes an account permanently. Admin only, never on the actor's
	// own account.
	Delete(ctx context.Context, actor authDomain.Principal, id uuid.UUID) error
}
