package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/staffdocs/internal/database"
	apperrors "github.com/allisson/staffdocs/internal/errors"
	"github.com/allisson/staffdocs/internal/minutes/domain"
)

// MySQLMinuteRepository handles meeting minute persistence for MySQL using BINARY(16) UUIDs.
type MySQLMinuteRepository struct {
	db *sql.DB
}

// NewMySQLMinuteRepository creates a new MySQLMinuteRepository.
func NewMySQLMinuteRepository(db *sql.DB) *MySQLMinuteRepository {
	return &MySQLMinuteRepository{
		db: db,
	}
}

const mysqlMinuteColumns = `id, title, meeting_date, area_id, document_type_id,
	attachment_key, attachment_name, content_type, created_by, created_at, updated_at`

func scanMySQLMinute(scan func(dest ...any) error) (*domain.MeetingMinute, error) {
	var minute domain.MeetingMinute
	var idBytes, areaBytes, docTypeBytes, createdByBytes []byte
	err := scan(
		&idBytes, &minute.Title, &minute.MeetingDate, &areaBytes, &docTypeBytes,
		&minute.AttachmentKey, &minute.AttachmentName, &minute.ContentType,
		&createdByBytes, &minute.CreatedAt, &minute.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	for _, pair := range []struct {
		dst *uuid.UUID
		src []byte
	}{
		{&minute.ID, idBytes},
		{&minute.AreaID, areaBytes},
		{&minute.DocumentTypeID, docTypeBytes},
		{&minute.CreatedBy, createdByBytes},
	} {
		if err := pair.dst.UnmarshalBinary(pair.src); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal meeting minute id")
		}
	}
	return &minute, nil
}

func marshalUUIDs(ids ...uuid.UUID) ([][]byte, error) {
	out := make([][]byte, 0, len(ids))
	for _, id := range ids {
		b, err := id.MarshalBinary()
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to marshal uuid")
		}
		out = append(out, b)
	}
	return out, nil
}

// Create inserts a new meeting minute record.
func (r *MySQLMinuteRepository) Create(ctx context.Context, minute *domain.MeetingMinute) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO meeting_minutes (id, title, meeting_date, area_id, document_type_id,
			  attachment_key, attachment_name, content_type, created_by, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	ids, err := marshalUUIDs(minute.ID, minute.AreaID, minute.DocumentTypeID, minute.CreatedBy)
	if err != nil {
		return err
	}

	_, err = querier.ExecContext(ctx, query,
		ids[0], minute.Title, minute.MeetingDate, ids[1], ids[2],
		minute.AttachmentKey, minute.AttachmentName, minute.ContentType,
		ids[3], minute.CreatedAt, minute.UpdatedAt,
	)
	if err != nil {
		if isMySQLForeignKeyViolation(err) {
			return domain.ErrUnknownReference
		}
		return apperrors.Wrap(err, "failed to create meeting minute")
	}
	return nil
}

// isMySQLForeignKeyViolation checks if the error is a MySQL foreign key constraint violation.
func isMySQLForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "foreign key constraint") || strings.Contains(errMsg, "1452")
}

// GetByID retrieves a meeting minute by ID.
func (r *MySQLMinuteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MeetingMinute, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlMinuteColumns + ` FROM meeting_minutes WHERE id = ?`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal meeting minute id")
	}

	row := querier.QueryRowContext(ctx, query, idBytes)
	minute, err := scanMySQLMinute(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMinuteNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get meeting minute")
	}
	return minute, nil
}

// List retrieves meeting minutes ordered by meeting date, newest first.
func (r *MySQLMinuteRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*domain.MeetingMinute, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlMinuteColumns + ` FROM meeting_minutes
			  ORDER BY meeting_date DESC, created_at DESC LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list meeting minutes")
	}
	defer rows.Close()

	var minutes []*domain.MeetingMinute
	for rows.Next() {
		minute, err := scanMySQLMinute(rows.Scan)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan meeting minute")
		}
		minutes = append(minutes, minute)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate meeting minutes")
	}
	return minutes, nil
}

// Delete removes a meeting minute record permanently.
func (r *MySQLMinuteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM meeting_minutes WHERE id = ?`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal meeting minute id")
	}

	result, err := querier.ExecContext(ctx, query, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete meeting minute")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to count affected rows")
	}
	if affected == 0 {
		return domain.ErrMinuteNotFound
	}
	return nil
}
