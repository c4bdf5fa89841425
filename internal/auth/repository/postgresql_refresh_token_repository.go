// Package repository provides PostgreSQL persistence for refresh-token records.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
	"github.com/allisson/staffdocs/internal/database"
	apperrors "github.com/allisson/staffdocs/internal/errors"
)

// PostgreSQLRefreshTokenRepository implements refresh-token persistence for
// PostgreSQL. Uses native UUID types with transaction support via
// database.GetTx().
type PostgreSQLRefreshTokenRepository struct {
	db *sql.DB
}

// Create inserts a new refresh-token record.
func (p *PostgreSQLRefreshTokenRepository) Create(ctx context.Context, token *authDomain.RefreshToken) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO refresh_tokens (id, token_hash, user_id, expires_at, revoked_at, replaced_by, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := querier.ExecContext(
		ctx,
		query,
		token.ID,
		token.TokenHash,
		token.UserID,
		token.ExpiresAt,
		token.RevokedAt,
		token.ReplacedBy,
		token.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create refresh token")
	}
	return nil
}

// GetByTokenHash retrieves a refresh-token record by token hash. Returns
// ErrRefreshTokenNotFound if no record matches.
func (p *PostgreSQLRefreshTokenRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*authDomain.RefreshToken, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, token_hash, user_id, expires_at, revoked_at, replaced_by, created_at
			  FROM refresh_tokens WHERE token_hash = $1`

	var token authDomain.RefreshToken

	err := querier.QueryRowContext(ctx, query, tokenHash).Scan(
		&token.ID,
		&token.TokenHash,
		&token.UserID,
		&token.ExpiresAt,
		&token.RevokedAt,
		&token.ReplacedBy,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrRefreshTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get refresh token by hash")
	}

	return &token, nil
}

// Consume atomically revokes an active, unexpired record and links its
// successor. The WHERE clause is the compare-and-swap: of two concurrent
// consumers presenting the same token, exactly one matches a row. Returns
// ErrRefreshTokenNotFound when no active row matched; the caller classifies
// the loss by re-reading the record.
func (p *PostgreSQLRefreshTokenRepository) Consume(
	ctx context.Context,
	tokenHash string,
	replacedBy uuid.UUID,
	now time.Time,
) (*authDomain.RefreshToken, error) {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE refresh_tokens
			  SET revoked_at = $2,
			  	  replaced_by = $3
			  WHERE token_hash = $1 AND revoked_at IS NULL AND expires_at > $2
			  RETURNING id, token_hash, user_id, expires_at, revoked_at, replaced_by, created_at`

	var token authDomain.RefreshToken

	err := querier.QueryRowContext(ctx, query, tokenHash, now, replacedBy).Scan(
		&token.ID,
		&token.TokenHash,
		&token.UserID,
		&token.ExpiresAt,
		&token.RevokedAt,
		&token.ReplacedBy,
		&token.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrRefreshTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to consume refresh token")
	}

	return &token, nil
}

// Revoke marks a record revoked. Idempotent: revoking an already-revoked or
// missing record is not an error.
func (p *PostgreSQLRefreshTokenRepository) Revoke(ctx context.Context, tokenID uuid.UUID, revokedAt time.Time) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE refresh_tokens SET revoked_at = $2 WHERE id = $1 AND revoked_at IS NULL`

	if _, err := querier.ExecContext(ctx, query, tokenID, revokedAt); err != nil {
		return apperrors.Wrap(err, "failed to revoke refresh token")
	}
	return nil
}

// RevokeChain revokes a record and every successor reachable through
// replaced_by links. The chain is walked one hop at a time; a missing record
// ends the walk without error.
func (p *PostgreSQLRefreshTokenRepository) RevokeChain(
	ctx context.Context,
	tokenID uuid.UUID,
	revokedAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE refresh_tokens
			  SET revoked_at = COALESCE(revoked_at, $2)
			  WHERE id = $1
			  RETURNING replaced_by`

	current := tokenID
	for {
		var replacedBy uuid.NullUUID
		err := querier.QueryRowContext(ctx, query, current, revokedAt).Scan(&replacedBy)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return apperrors.Wrap(err, "failed to revoke refresh token chain")
		}
		if !replacedBy.Valid {
			return nil
		}
		current = replacedBy.UUID
	}
}

// RevokeAllForUser revokes every active record belonging to a user. Idempotent.
func (p *PostgreSQLRefreshTokenRepository) RevokeAllForUser(
	ctx context.Context,
	userID uuid.UUID,
	revokedAt time.Time,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE refresh_tokens SET revoked_at = $2 WHERE user_id = $1 AND revoked_at IS NULL`

	if _, err := querier.ExecContext(ctx, query, userID, revokedAt); err != nil {
		return apperrors.Wrap(err, "failed to revoke user refresh tokens")
	}
	return nil
}

// DeleteExpired removes records past their expiry and returns how many were
// deleted. Revoked-but-unexpired records are kept: they carry the replaced_by
// links reuse detection walks.
func (p *PostgreSQLRefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM refresh_tokens WHERE expires_at <= $1`

	result, err := querier.ExecContext(ctx, query, now)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to delete expired refresh tokens")
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count deleted refresh tokens")
	}
	return deleted, nil
}

// NewPostgreSQLRefreshTokenRepository creates a new PostgreSQL refresh-token repository.
func NewPostgreSQLRefreshTokenRepository(db *sql.DB) *PostgreSQLRefreshTokenRepository {
	return &PostgreSQLRefreshTokenRepository{db: db}
}
