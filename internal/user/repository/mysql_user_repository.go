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

// MySQLUserRepository handles user persistence for MySQL using BINARY(16) UUIDs.
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQLUserRepository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{
		db: db,
	}
}

const mysqlUserColumns = `id, username, full_name, email, role, is_active, password_hash, created_at, updated_at`

func scanMySQLUser(scan func(dest ...any) error) (*domain.User, error) {
	var user domain.User
	var idBytes []byte
	var role string
	err := scan(
		&idBytes, &user.Username, &user.FullName, &user.Email, &role,
		&user.IsActive, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := user.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal user id")
	}
	user.Role = authDomain.Role(role)
	return &user, nil
}

// Create inserts a new user.
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, username, full_name, email, role, is_active, password_hash, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	id, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	_, err = querier.ExecContext(ctx, query,
		id, user.Username, user.FullName, user.Email, string(user.Role),
		user.IsActive, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *MySQLUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlUserColumns + ` FROM users WHERE id = ?`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal user id")
	}

	row := querier.QueryRowContext(ctx, query, idBytes)
	user, err := scanMySQLUser(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by id")
	}
	return user, nil
}

// GetByUsername retrieves a user by username.
func (r *MySQLUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlUserColumns + ` FROM users WHERE username = ?`

	row := querier.QueryRowContext(ctx, query, username)
	user, err := scanMySQLUser(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user by username")
	}
	return user, nil
}

// List retrieves users ordered by creation time, newest first.
func (r *MySQLUserRepository) List(ctx context.Context, offset, limit int) ([]*domain.User, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlUserColumns + ` FROM users ORDER BY created_at DESC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list users")
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := scanMySQLUser(rows.Scan)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan user")
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate users")
	}
	return users, nil
}

// Update modifies the mutable profile fields.
func (r *MySQLUserRepository) Update(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET full_name = ?, email = ?, updated_at = ? WHERE id = ?`

	id, err := user.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	result, err := querier.ExecContext(ctx, query, user.FullName, user.Email, user.UpdatedAt, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user")
	}
	return requireOneRow(result, domain.ErrUserNotFound)
}

// UpdatePassword replaces the stored password hash.
func (r *MySQLUserRepository) UpdatePassword(
	ctx context.Context,
	id uuid.UUID,
	passwordHash string,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	result, err := querier.ExecContext(ctx, query, passwordHash, updatedAt, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user password")
	}
	return requireOneRow(result, domain.ErrUserNotFound)
}

// SetActive flips the active flag.
func (r *MySQLUserRepository) SetActive(
	ctx context.Context,
	id uuid.UUID,
	active bool,
	updatedAt time.Time,
) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET is_active = ?, updated_at = ? WHERE id = ?`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	result, err := querier.ExecContext(ctx, query, active, updatedAt, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to set user active flag")
	}
	return requireOneRow(result, domain.ErrUserNotFound)
}

// Delete removes a user permanently.
func (r *MySQLUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM users WHERE id = ?`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	result, err := querier.ExecContext(ctx, query, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete user")
	}
	return requireOneRow(result, domain.ErrUserNotFound)
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation.
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}
