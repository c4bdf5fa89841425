// Package repository provides data persistence implementations for the
// reference catalogs. A single repository serves all catalog kinds; the kind
// selects the backing table.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/allisson/staffdocs/internal/catalog/domain"
	"github.com/allisson/staffdocs/internal/database"
	apperrors "github.com/allisson/staffdocs/internal/errors"
)

// PostgreSQLCatalogRepository handles catalog persistence for PostgreSQL.
type PostgreSQLCatalogRepository struct {
	db *sql.DB
}

// NewPostgreSQLCatalogRepository creates a new PostgreSQLCatalogRepository.
func NewPostgreSQLCatalogRepository(db *sql.DB) *PostgreSQLCatalogRepository {
	return &PostgreSQLCatalogRepository{
		db: db,
	}
}

const pgCatalogColumns = `id, name, description, created_at, updated_at`

// Create inserts a new catalog item.
func (r *PostgreSQLCatalogRepository) Create(ctx context.Context, kind domain.Kind, item *domain.Item) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO ` + kind.Table() + ` (id, name, description, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(ctx, query,
		item.ID, item.Name, item.Description, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrItemNameTaken
		}
		return apperrors.Wrap(err, "failed to create catalog item")
	}
	return nil
}

// GetByID retrieves a catalog item by ID.
func (r *PostgreSQLCatalogRepository) GetByID(
	ctx context.Context,
	kind domain.Kind,
	id uuid.UUID,
) (*domain.Item, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + pgCatalogColumns + ` FROM ` + kind.Table() + ` WHERE id = $1`

	var item domain.Item
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.Name, &item.Description, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get catalog item")
	}
	return &item, nil
}

// List retrieves catalog items ordered by name.
func (r *PostgreSQLCatalogRepository) List(
	ctx context.Context,
	kind domain.Kind,
	offset, limit int,
) ([]*domain.Item, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + pgCatalogColumns + ` FROM ` + kind.Table() + ` ORDER BY name OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list catalog items")
	}
	defer rows.Close()

	var items []*domain.Item
	for rows.Next() {
		var item domain.Item
		err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan catalog item")
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate catalog items")
	}
	return items, nil
}

// Update modifies a catalog item.
func (r *PostgreSQLCatalogRepository) Update(ctx context.Context, kind domain.Kind, item *domain.Item) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE ` + kind.Table() + ` SET name = $1, description = $2, updated_at = $3 WHERE id = $4`

	result, err := querier.ExecContext(ctx, query, item.Name, item.Description, item.UpdatedAt, item.ID)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return domain.ErrItemNameTaken
		}
		return apperrors.Wrap(err, "failed to update catalog item")
	}
	return requireOneRow(result, domain.ErrItemNotFound)
}

// Delete removes a catalog item permanently.
func (r *PostgreSQLCatalogRepository) Delete(ctx context.Context, kind domain.Kind, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM ` + kind.Table() + ` WHERE id = $1`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete catalog item")
	}
	return requireOneRow(result, domain.ErrItemNotFound)
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
