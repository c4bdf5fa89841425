// Package repository provides data persistence implementations for meeting minutes.
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

// PostgreSQLMinuteRepository handles meeting minute persistence for PostgreSQL.
type PostgreSQLMinuteRepository struct {
	db *sql.DB
}

// NewPostgreSQLMinuteRepository creates a new PostgreSQLMinuteRepository.
func NewPostgreSQLMinuteRepository(db *sql.DB) *PostgreSQLMinuteRepository {
	return &PostgreSQLMinuteRepository{
		db: db,
	}
}

const pgMinuteColumns = `id, title, meeting_date, area_id, document_type_id,
	attachment_key, attachment_name, content_type, created_by, created_at, updated_at`

func scanMinute(scan func(dest ...any) error) (*domain.MeetingMinute, error) {
	var minute domain.MeetingMinute
	err := scan(
		&minute.ID, &minute.Title, &minute.MeetingDate, &minute.AreaID, &minute.DocumentTypeID,
		&minute.AttachmentKey, &minute.AttachmentName, &minute.ContentType,
		&minute.CreatedBy, &minute.CreatedAt, &minute.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &minute, nil
}

// Create inserts a new meeting minute record.
func (r *PostgreSQLMinuteRepository) Create(ctx context.Context, minute *domain.MeetingMinute) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO meeting_minutes (id, title, meeting_date, area_id, document_type_id,
			  attachment_key, attachment_name, content_type, created_by, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := querier.ExecContext(ctx, query,
		minute.ID, minute.Title, minute.MeetingDate, minute.AreaID, minute.DocumentTypeID,
		minute.AttachmentKey, minute.AttachmentName, minute.ContentType,
		minute.CreatedBy, minute.CreatedAt, minute.UpdatedAt,
	)
	if err != nil {
		if isPostgreSQLForeignKeyViolation(err) {
			return domain.ErrUnknownReference
		}
		return apperrors.Wrap(err, "failed to create meeting minute")
	}
	return nil
}

// isPostgreSQLForeignKeyViolation checks if the error is a PostgreSQL foreign key constraint violation.
func isPostgreSQLForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint")
}

// GetByID retrieves a meeting minute by ID.
func (r *PostgreSQLMinuteRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MeetingMinute, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + pgMinuteColumns + ` FROM meeting_minutes WHERE id = $1`

	row := querier.QueryRowContext(ctx, query, id)
	minute, err := scanMinute(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrMinuteNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get meeting minute")
	}
	return minute, nil
}

// List retrieves meeting minutes ordered by meeting date, newest first.
func (r *PostgreSQLMinuteRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*domain.MeetingMinute, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + pgMinuteColumns + ` FROM meeting_minutes
			  ORDER BY meeting_date DESC, created_at DESC OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list meeting minutes")
	}
	defer rows.Close()

	var minutes []*domain.MeetingMinute
	for rows.Next() {
		minute, err := scanMinute(rows.Scan)
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
func (r *PostgreSQLMinuteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM meeting_minutes WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, id)
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
