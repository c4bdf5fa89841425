// Package repository provides data persistence implementations for user accounts.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
	"github.com/allisson/staffdocs/internal/database"
	apperrors "github.com/allisson/staffdocs/internal/errors"
	"github.com/allisson/staffdocs/internal/user/domain"
)

// PostgreSQLUserRepository handles user persistence for PostgreSQL.
type PostgreSQLUserRepository struct {
	db *sql.DB
}

// NewPostgreSQLUserRepository creates a new PostgreSQLUserRepository.
func NewPostgreSQLUserRepository(db *sql.DB) *PostgreSQLUserRepository {
	return &PostgreSQLUserRepository{
		db: db,
	}
}

const pgUserColumns = `id, username, full_name, email, role, is_active, password_hash, created_at, updated_at`

func (r *PostgreSQLUserRepository) scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var role string
	err := row.Scan(
		&user.ID, &user.Username, &user.FullName, &user.Email, &role,
		&user.IsActive, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Role = authDomain.Role(role)
	return &user, nil
}

// Create inserts a new user.
func (r *PostgreSQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, username, full_name, email, role, is_active, password_hash, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := querier.ExecContext(ctx, query,
		user.ID, user.Username, user.FullName, user.Email, string(user.Role),
		user.IsActive, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *PostgreSQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + pgUserColumns + ` FROM users WHERE id = $1`

	user, err := r.scanUser(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by id")
	}
	return user, nil
}

// GetByUsername retrieves a user by username.
func (r *PostgreSQLUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + pgUserColumns + ` FROM users WHERE username = $1`

	user, err := r.scanUser(querier.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by username")
	}
	return user, nil
}

// List retrieves users ordered by creation time, newest first.
func (r *PostgreSQLUserRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + pgUserColumns + ` FROM users ORDER BY created_at DESC OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var user domain.User
		var role string
		err := rows.Scan(
			&user.ID, &user.Username, &user.FullName, &user.Email, &role,
			&user.IsActive, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user")
		}
		user.Role = authDomain.Role(role)
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate users")
	}
	return users, nil
}

// Update modifies the mutable profile fields.
func (r *PostgreSQLUserRepository) Update(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET full_name = $1, email = $2, updated_at = $3 WHERE id = $4`

	result, err := querier.ExecContext(ctx, query, user.FullName, user.Email, user.UpdatedAt, user.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user")
	}
	return requireOneRow(result, domain.ErrUserNotFound)
}

// UpdatePassword replaces the stored password hash.
func (r *PostgreSQLUserRepository) UpdatePassword(
	ctx context.Context,
	id uuid.UUID,
	passwordHash string,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, passwordHash, updatedAt, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user password")
	}
	return requireOneRow(result, domain.ErrUserNotFound)
}

// SetActive flips the active flag.
func (r *PostgreSQLUserRepository) SetActive(
	ctx context.Context,
	id uuid.UUID,
	active bool,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET is_active = $1, updated_at = $2 WHERE id = $3`

	result, err := querier.ExecContext(ctx, query, active, updatedAt, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to set user active flag")
	}
	return requireOneRow(result, domain.ErrUserNotFound)
}

// Delete removes a user permanently.
func (r *PostgreSQLUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM users WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete user")
	}
	return requireOneRow(result, domain.ErrUserNotFound)
}

// requireOneRow converts a zero-row write into notFoundErr.
func requireOneRow(result sql.Result, notFoundErr error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to count affected rows")
	}
	if affected == 0 {
		return notFoundErr
	}
	return nil
}

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}
