// Package mysql provides MySQL persistence for refresh-token records.
package mysql

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

// MySQLRefreshTokenRepository implements refresh-token persistence for MySQL.
// Uses BINARY(16) for UUIDs with transaction support via database.GetTx().
type MySQLRefreshTokenRepository struct {
	db *sql.DB
}

const selectColumns = `id, token_hash, user_id, expires_at, revoked_at, replaced_by, created_at`

// scanToken reads a full record row, converting BINARY(16) columns back to UUIDs.
func scanToken(row *sql.Row) (*authDomain.RefreshToken, error) {
	var token authDomain.RefreshToken
	var idBytes, userIDBytes, replacedByBytes []byte

	err := row.Scan(
		&idBytes,
		&token.TokenHash,
		&userIDBytes,
		&token.ExpiresAt,
		&token.RevokedAt,
		&replacedByBytes,
		&token.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := token.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal refresh token id")
	}
	if err := token.UserID.UnmarshalBinary(userIDBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal user id")
	}
	if replacedByBytes != nil {
		var replacedBy uuid.UUID
		if err := replacedBy.UnmarshalBinary(replacedByBytes); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal replaced_by id")
		}
		token.ReplacedBy = &replacedBy
	}

	return &token, nil
}

// Create inserts a new refresh-token record using BINARY(16) for UUIDs.
func (m *MySQLRefreshTokenRepository) Create(ctx context.Context, token *authDomain.RefreshToken) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO refresh_tokens (id, token_hash, user_id, expires_at, revoked_at, replaced_by, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?)`

	id, err := token.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal refresh token id")
	}

	userID, err := token.UserID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	var replacedBy any
	if token.ReplacedBy != nil {
		replacedBy, err = token.ReplacedBy.MarshalBinary()
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal replaced_by id")
		}
	}

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		token.TokenHash,
		userID,
		token.ExpiresAt,
		token.RevokedAt,
		replacedBy,
		token.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create refresh token")
	}
	return nil
}

// GetByTokenHash retrieves a refresh-token record by token hash. Returns
// ErrRefreshTokenNotFound if no record matches.
func (m *MySQLRefreshTokenRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*authDomain.RefreshToken, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT ` + selectColumns + ` FROM refresh_tokens WHERE token_hash = ?`

	token, err := scanToken(querier.QueryRowContext(ctx, query, tokenHash))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, authDomain.ErrRefreshTokenNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get refresh token by hash")
	}

	return token, nil
}

// Consume atomically revokes an active, unexpired record and links its
// successor. MySQL has no UPDATE ... RETURNING, so the conditional UPDATE is
// the compare-and-swap and the consumed record is re-read afterwards; callers
// run both statements inside a TxManager transaction. Returns
// ErrRefreshTokenNotFound when no active row matched.
func (m *MySQLRefreshTokenRepository) Consume(
	ctx context.Context,
	tokenHash string,
	replacedBy uuid.UUID,
	now time.Time,
) (*authDomain.RefreshToken, error) {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE refresh_tokens
			  SET revoked_at = ?,
			  	  replaced_by = ?
			  WHERE token_hash = ? AND revoked_at IS NULL AND expires_at > ?`

	replacedByBytes, err := replacedBy.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal replaced_by id")
	}

	result, err := querier.ExecContext(ctx, query, now, replacedByBytes, tokenHash, now)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to consume refresh token")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to count consumed refresh tokens")
	}
	if affected == 0 {
		return nil, authDomain.ErrRefreshTokenNotFound
	}

	return m.GetByTokenHash(ctx, tokenHash)
}

// Revoke marks a record revoked. Idempotent.
func (m *MySQLRefreshTokenRepository) Revoke(ctx context.Context, tokenID uuid.UUID, revokedAt time.Time) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE refresh_tokens SET revoked_at = ? WHERE id = ? AND revoked_at IS NULL`

	id, err := tokenID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal refresh token id")
	}

	if _, err := querier.ExecContext(ctx, query, revokedAt, id); err != nil {
		return apperrors.Wrap(err, "failed to revoke refresh token")
	}
	return nil
}

// RevokeChain revokes a record and every successor reachable through
// replaced_by links, one hop at a time. A missing record ends the walk.
func (m *MySQLRefreshTokenRepository) RevokeChain(
	ctx context.Context,
	tokenID uuid.UUID,
	revokedAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	selectQuery := `SELECT replaced_by FROM refresh_tokens WHERE id = ?`
	updateQuery := `UPDATE refresh_tokens SET revoked_at = COALESCE(revoked_at, ?) WHERE id = ?`

	current := tokenID
	for {
		id, err := current.MarshalBinary()
		if err != nil {
			return apperrors.Wrap(err, "failed to marshal refresh token id")
		}

		var replacedByBytes []byte
		err = querier.QueryRowContext(ctx, selectQuery, id).Scan(&replacedByBytes)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil
			}
			return apperrors.Wrap(err, "failed to read refresh token chain")
		}

		if _, err := querier.ExecContext(ctx, updateQuery, revokedAt, id); err != nil {
			return apperrors.Wrap(err, "failed to revoke refresh token chain")
		}

		if replacedByBytes == nil {
			return nil
		}
		var next uuid.UUID
		if err := next.UnmarshalBinary(replacedByBytes); err != nil {
			return apperrors.Wrap(err, "failed to unmarshal replaced_by id")
		}
		current = next
	}
}

// RevokeAllForUser revokes every active record belonging to a user. Idempotent.
func (m *MySQLRefreshTokenRepository) RevokeAllForUser(
	ctx context.Context,
	userID uuid.UUID,
	revokedAt time.Time,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE refresh_tokens SET revoked_at = ? WHERE user_id = ? AND revoked_at IS NULL`

	id, err := userID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal user id")
	}

	if _, err := querier.ExecContext(ctx, query, revokedAt, id); err != nil {
		return apperrors.Wrap(err, "failed to revoke user refresh tokens")
	}
	return nil
}

// DeleteExpired removes records past their expiry and returns how many were deleted.
func (m *MySQLRefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	query := `DELETE FROM refresh_tokens WHERE expires_at <= ?`

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

// NewMySQLRefreshTokenRepository creates a new MySQL refresh-token repository.
func NewMySQLRefreshTokenRepository(db *sql.DB) *MySQLRefreshTokenRepository {
	return &MySQLRefreshTokenRepository{db: db}
}
