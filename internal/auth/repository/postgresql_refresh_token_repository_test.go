package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
)

func newPostgresRepoWithMock(t *testing.T) (*PostgreSQLRefreshTokenRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewPostgreSQLRefreshTokenRepository(db), mock, db
}

func tokenRows(token *authDomain.RefreshToken) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"id", "token_hash", "user_id", "expires_at", "revoked_at", "replaced_by", "created_at",
	})
	var replacedBy interface{}
	if token.ReplacedBy != nil {
		replacedBy = token.ReplacedBy.String()
	}
	var revokedAt interface{}
	if token.RevokedAt != nil {
		revokedAt = *token.RevokedAt
	}
	rows.AddRow(
		token.ID.String(),
		token.TokenHash,
		token.UserID.String(),
		token.ExpiresAt,
		revokedAt,
		replacedBy,
		token.CreatedAt,
	)
	return rows
}

func newTestToken() *authDomain.RefreshToken {
	now := time.Now().UTC()
	return &authDomain.RefreshToken{
		ID:        uuid.Must(uuid.NewV7()),
		TokenHash: "abcdef0123456789",
		UserID:    uuid.Must(uuid.NewV7()),
		ExpiresAt: now.Add(time.Hour),
		CreatedAt: now,
	}
}

func TestPostgreSQLRefreshTokenRepository_Create(t *testing.T) {
	repo, mock, db := newPostgresRepoWithMock(t)
	defer db.Close()

	token := newTestToken()
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WithArgs(
			token.ID, token.TokenHash, token.UserID, token.ExpiresAt,
			nil, nil, token.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), token)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLRefreshTokenRepository_Create_DBError(t *testing.T) {
	repo, mock, db := newPostgresRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec("INSERT INTO refresh_tokens").
		WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), newTestToken())
	assert.Error(t, err)
}

func TestPostgreSQLRefreshTokenRepository_GetByTokenHash(t *testing.T) {
	repo, mock, db := newPostgresRepoWithMock(t)
	defer db.Close()

	token := newTestToken()
	mock.ExpectQuery("SELECT (.+) FROM refresh_tokens WHERE token_hash").
		WithArgs(token.TokenHash).
		WillReturnRows(tokenRows(token))

	got, err := repo.GetByTokenHash(context.Background(), token.TokenHash)
	require.NoError(t, err)
	assert.Equal(t, token.ID, got.ID)
	assert.Equal(t, token.UserID, got.UserID)
	assert.Nil(t, got.RevokedAt)
	assert.Nil(t, got.ReplacedBy)
}

func TestPostgreSQLRefreshTokenRepository_GetByTokenHash_NotFound(t *testing.T) {
	repo, mock, db := newPostgresRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM refresh_tokens WHERE token_hash").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByTokenHash(context.Background(), "missing")
	assert.ErrorIs(t, err, authDomain.ErrRefreshTokenNotFound)
}

func TestPostgreSQLRefreshTokenRepository_Consume_Winner(t *testing.T) {
	repo, mock, db := newPostgresRepoWithMock(t)
	defer db.Close()

	token := newTestToken()
	now := time.Now().UTC()
	successor := uuid.Must(uuid.NewV7())

	consumed := *token
	consumed.RevokedAt = &now
	consumed.ReplacedBy = &successor

	mock.ExpectQuery("UPDATE refresh_tokens").
		WithArgs(token.TokenHash, now, successor).
		WillReturnRows(tokenRows(&consumed))

	got, err := repo.Consume(context.Background(), token.TokenHash, successor, now)
	require.NoError(t, err)
	assert.Equal(t, token.ID, got.ID)
	require.NotNil(t, got.ReplacedBy)
	assert.Equal(t, successor, *got.ReplacedBy)
	assert.NotNil(t, got.RevokedAt)
}

func TestPostgreSQLRefreshTokenRepository_Consume_NoActiveRow(t *testing.T) {
	repo, mock, db := newPostgresRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery("UPDATE refresh_tokens").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Consume(context.Background(), "hash", uuid.Must(uuid.NewV7()), time.Now())
	assert.ErrorIs(t, err, authDomain.ErrRefreshTokenNotFound)
}

func TestPostgreSQLRefreshTokenRepository_Revoke_Idempotent(t *testing.T) {
	repo, mock, db := newPostgresRepoWithMock(t)
	defer db.Close()

	tokenID := uuid.Must(uuid.NewV7())
	mock.ExpectExec("UPDATE refresh_tokens SET revoked_at").
		WithArgs(tokenID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Revoke(context.Background(), tokenID, time.Now())
	assert.NoError(t, err)
}

func TestPostgreSQLRefreshTokenRepository_RevokeChain(t *testing.T) {
	repo, mock, db := newPostgresRepoWithMock(t)
	defer db.Close()

	first := uuid.Must(uuid.NewV7())
	second := uuid.Must(uuid.NewV7())
	third := uuid.Must(uuid.NewV7())
	now := time.Now().UTC()

	mock.ExpectQuery("UPDATE refresh_tokens").
		WithArgs(first, now).
		WillReturnRows(sqlmock.NewRows([]string{"replaced_by"}).AddRow(second.String()))
	mock.ExpectQuery("UPDATE refresh_tokens").
		WithArgs(second, now).
		WillReturnRows(sqlmock.NewRows([]string{"replaced_by"}).AddRow(third.String()))
	mock.ExpectQuery("UPDATE refresh_tokens").
		WithArgs(third, now).
		WillReturnRows(sqlmock.NewRows([]string{"replaced_by"}).AddRow(nil))

	err := repo.RevokeChain(context.Background(), first, now)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLRefreshTokenRepository_RevokeChain_MissingLinkEndsWalk(t *testing.T) {
	repo, mock, db := newPostgresRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery("UPDATE refresh_tokens").
		WillReturnError(sql.ErrNoRows)

	err := repo.RevokeChain(context.Background(), uuid.Must(uuid.NewV7()), time.Now())
	assert.NoError(t, err)
}

func TestPostgreSQLRefreshTokenRepository_RevokeAllForUser(t *testing.T) {
	repo, mock, db := newPostgresRepoWithMock(t)
	defer db.Close()

	userID := uuid.Must(uuid.NewV7())
	mock.ExpectExec("UPDATE refresh_tokens SET revoked_at").
		WithArgs(userID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 3))

	err := repo.RevokeAllForUser(context.Background(), userID, time.Now())
	assert.NoError(t, err)
}

func TestPostgreSQLRefreshTokenRepository_DeleteExpired(t *testing.T) {
	repo, mock, db := newPostgresRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM refresh_tokens WHERE expires_at").
		WillReturnResult(sqlmock.NewResult(0, 7))

	deleted, err := repo.DeleteExpired(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(7), deleted)
}
