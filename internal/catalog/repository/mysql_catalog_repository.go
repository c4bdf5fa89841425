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

// MySQLCatalogRepository handles catalog persistence for MySQL using BINARY(16) UUIDs.
type MySQLCatalogRepository struct {
	db *sql.DB
}

// NewMySQLCatalogRepository creates a new MySQLCatalogRepository.
func NewMySQLCatalogRepository(db *sql.DB) *MySQLCatalogRepository {
	return &MySQLCatalogRepository{
		db: db,
	}
}

const mysqlCatalogColumns = `id, name, description, created_at, updated_at`

func scanMySQLItem(scan func(dest ...any) error) (*domain.Item, error) {
	var item domain.Item
	var idBytes []byte
	err := scan(&idBytes, &item.Name, &item.Description, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := item.ID.UnmarshalBinary(idBytes); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal catalog item id")
	}
	return &item, nil
}

// Create inserts a new catalog item.
func (r *MySQLCatalogRepository) Create(ctx context.Context, kind domain.Kind, item *domain.Item) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO ` + kind.Table() + ` (id, name, description, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?)`

	id, err := item.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal catalog item id")
	}

	_, err = querier.ExecContext(ctx, query, id, item.Name, item.Description, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrItemNameTaken
		}
		return apperrors.Wrap(err, "failed to create catalog item")
	}
	return nil
}

// GetByID retrieves a catalog item by ID.
func (r *MySQLCatalogRepository) GetByID(
	ctx context.Context,
	kind domain.Kind,
	id uuid.UUID,
) (*domain.Item, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlCatalogColumns + ` FROM ` + kind.Table() + ` WHERE id = ?`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to marshal catalog item id")
	}

	row := querier.QueryRowContext(ctx, query, idBytes)
	item, err := scanMySQLItem(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get catalog item")
	}
	return item, nil
}

// List retrieves catalog items ordered by name.
func (r *MySQLCatalogRepository) List(
	ctx context.Context,
	kind domain.Kind,
	offset, limit int,
) ([]*domain.Item, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + mysqlCatalogColumns + ` FROM ` + kind.Table() + ` ORDER BY name LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list catalog items")
	}
	defer rows.Close()

	var items []*domain.Item
	for rows.Next() {
		item, err := scanMySQLItem(rows.Scan)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan catalog item")
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate catalog items")
	}
	return items, nil
}

// Update modifies a catalog item.
func (r *MySQLCatalogRepository) Update(ctx context.Context, kind domain.Kind, item *domain.Item) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE ` + kind.Table() + ` SET name = ?, description = ?, updated_at = ? WHERE id = ?`

	id, err := item.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal catalog item id")
	}

	result, err := querier.ExecContext(ctx, query, item.Name, item.Description, item.UpdatedAt, id)
	if err != nil {
		if isMySQLUniqueViolation(err) {
			return domain.ErrItemNameTaken
		}
		return apperrors.Wrap(err, "failed to update catalog item")
	}
	return requireOneRow(result, domain.ErrItemNotFound)
}

// Delete removes a catalog item permanently.
func (r *MySQLCatalogRepository) Delete(ctx context.Context, kind domain.Kind, id uuid.UUID) error {
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM ` + kind.Table() + ` WHERE id = ?`

	idBytes, err := id.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal catalog item id")
	}

	result, err := querier.ExecContext(ctx, query, idBytes)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete catalog item")
	}
	return requireOneRow(result, domain.ErrItemNotFound)
}

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint violation.
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}
