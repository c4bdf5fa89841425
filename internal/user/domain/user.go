// Package domain defines the employee account entity and its errors.
package domain

import (
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
	"github.com/allisson/staffdocs/internal/errors"
)

// User represents an employee account. PasswordHash never leaves the service
// boundary; response DTOs have no field for it.
type User struct {
	ID           uuid.UUID
	Username     string
	FullName     string
	Email        string
	Role         authDomain.Role
	IsActive     bool
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUsernameTaken indicates a user with the same username already exists.
	ErrUsernameTaken = errors.Wrap(errors.ErrConflict, "username already taken")

	// ErrInvalidRole indicates an unknown role value.
	ErrInvalidRole = errors.Wrap(errors.ErrInvalidInput, "invalid role")
)

// CreateUserInput contains the data for creating an account.
type CreateUserInput struct {
	Username string
	FullName string
	Email    string
	Password string
	Role     authDomain.Role
	IsActive bool
}

// UpdateUserInput contains the mutable profile fields. Username and role are
// fixed at creation; activation has its own operation.
type UpdateUserInput struct {
	FullName string
	Email    string
}
