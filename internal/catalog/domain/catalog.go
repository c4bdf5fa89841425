// Package domain contains the reference catalogs used to classify documents.
package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/staffdocs/internal/errors"
)

// Kind identifies one of the reference catalogs. The value doubles as the
// table name, so every kind must stay a valid SQL identifier.
type Kind string

const (
	KindArea         Kind = "areas"
	KindJobPosition  Kind = "job_positions"
	KindDocumentType Kind = "document_types"
)

// Named errors for catalog operations.
var (
	ErrItemNotFound  = apperrors.Wrap(apperrors.ErrNotFound, "catalog item not found")
	ErrItemNameTaken = apperrors.Wrap(apperrors.ErrConflict, "catalog item name already in use")
	ErrUnknownKind   = apperrors.Wrap(apperrors.ErrInvalidInput, "unknown catalog kind")
)

// ParseKind maps a URL segment to a catalog kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "areas":
		return KindArea, nil
	case "job-positions":
		return KindJobPosition, nil
	case "document-types":
		return KindDocumentType, nil
	default:
		return "", ErrUnknownKind
	}
}

// Table returns the backing table name for the kind.
func (k Kind) Table() string {
	return string(k)
}

// Item is a single catalog entry. All three catalogs share this shape.
type Item struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateItemInput carries the fields for creating a catalog item.
type CreateItemInput struct {
	Name        string
	Description string
}

// UpdateItemInput carries the mutable fields of a catalog item.
type UpdateItemInput struct {
	Name        string
	Description string
}
