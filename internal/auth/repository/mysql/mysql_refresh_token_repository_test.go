package mysql

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
)

func newMySQLRepoWithMock(t *testing.T) (*MySQLRefreshTokenRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewMySQLRefreshTokenRepository(db), mock, db
}

func mustMarshal(t *testing.T, id uuid.UUID) []byte {
	t.Helper()
	b, err := id.MarshalBinary()
	require.NoError(t, err)
	return b
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

func tokenRows(t *testing.T, token *authDomain.RefreshToken) *sqlmock.Rows {
	t.Helper()
	rows := sqlmock.NewRows([]string{
		"id", "token_hash", "user_id", "expires_at", "revoked_at", "replaced_by", "created_at",
	})
	var replacedBy interface{}
	if token.ReplacedBy != nil {
		replacedBy = mustMarshal(t, *token.ReplacedBy)
	}
	var revokedAt interface{}
	if token.RevokedAt != nil {
		revokedAt = *token.RevokedAt
	}
	rows.AddRow(
		mustMarshal(t, token.ID),
		token.TokenHash,
		mustMarshal(t, token.UserID),
		token.ExpiresAt,
		revokedAt,
		replacedBy,
		token.CreatedAt,
	)
	return rows
}

func TestMySQLRefreshTokenRepository_Create(t *testing.T) {
	repo, mock, db := newMySQLRepoWithMock(t)
	defer db.Close()

	token := newTestToken()
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WithArgs(
			mustMarshal(t, token.ID), token.TokenHash, mustMarshal(t, token.UserID),
			token.ExpiresAt, nil, nil, token.CreatedAt,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), token)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLRefreshTokenRepository_GetByTokenHash(t *testing.T) {
	repo, mock, db := newMySQLRepoWithMock(t)
	defer db.Close()

	token := newTestToken()
	mock.ExpectQuery("SELECT (.+) FROM refresh_tokens WHERE token_hash").
		WithArgs(token.TokenHash).
		WillReturnRows(tokenRows(t, token))

	got, err := repo.GetByTokenHash(context.Background(), token.TokenHash)
	require.NoError(t, err)
	assert.Equal(t, token.ID, got.ID)
	assert.Equal(t, token.UserID, got.UserID)
	assert.Nil(t, got.ReplacedBy)
}

func TestMySQLRefreshTokenRepository_GetByTokenHash_NotFound(t *testing.T) {
	repo, mock, db := newMySQLRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM refresh_tokens WHERE token_hash").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByTokenHash(context.Background(), "missing")
	assert.ErrorIs(t, err, authDomain.ErrRefreshTokenNotFound)
}

func TestMySQLRefreshTokenRepository_Consume_Winner(t *testing.T) {
	repo, mock, db := newMySQLRepoWithMock(t)
	defer db.Close()

	token := newTestToken()
	now := time.Now().UTC()
	successor := uuid.Must(uuid.NewV7())

	consumed := *token
	consumed.RevokedAt = &now
	consumed.ReplacedBy = &successor

	mock.ExpectExec("UPDATE refresh_tokens").
		WithArgs(now, mustMarshal(t, successor), token.TokenHash, now).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM refresh_tokens WHERE token_hash").
		WithArgs(token.TokenHash).
		WillReturnRows(tokenRows(t, &consumed))

	got, err := repo.Consume(context.Background(), token.TokenHash, successor, now)
	require.NoError(t, err)
	require.NotNil(t, got.ReplacedBy)
	assert.Equal(t, successor, *got.ReplacedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLRefreshTokenRepository_Consume_NoActiveRow(t *testing.T) {
	repo, mock, db := newMySQLRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec("UPDATE refresh_tokens").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.Consume(context.Background(), "hash", uuid.Must(uuid.NewV7()), time.Now())
	assert.ErrorIs(t, err, authDomain.ErrRefreshTokenNotFound)
}

func TestMySQLRefreshTokenRepository_RevokeChain(t *testing.T) {
	repo, mock, db := newMySQLRepoWithMock(t)
	defer db.Close()

	first := uuid.Must(uuid.NewV7())
	second := uuid.Must(uuid.NewV7())
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT replaced_by FROM refresh_tokens").
		WithArgs(mustMarshal(t, first)).
		WillReturnRows(sqlmock.NewRows([]string{"replaced_by"}).AddRow(mustMarshal(t, second)))
	mock.ExpectExec("UPDATE refresh_tokens SET revoked_at").
		WithArgs(now, mustMarshal(t, first)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT replaced_by FROM refresh_tokens").
		WithArgs(mustMarshal(t, second)).
		WillReturnRows(sqlmock.NewRows([]string{"replaced_by"}).AddRow(nil))
	mock.ExpectExec("UPDATE refresh_tokens SET revoked_at").
		WithArgs(now, mustMarshal(t, second)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.RevokeChain(context.Background(), first, now)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLRefreshTokenRepository_DeleteExpired(t *testing.T) {
	repo, mock, db := newMySQLRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM refresh_tokens WHERE expires_at").
		WillReturnResult(sqlmock.NewResult(0, 4))

	deleted, err := repo.DeleteExpired(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)
}
