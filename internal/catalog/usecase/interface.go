// Package usecase implements business logic for the reference catalogs.
package usecase

import (
	"context"

	"github.com/google/uuid"

	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
	"github.com/allisson/staffdocs/internal/catalog/domain"
)

// CatalogRepository defines persistence operations for catalog items.
type CatalogRepository interface {
	Create(ctx context.Context, kind domain.Kind, item *domain.Item) error
	GetByID(ctx context.Context, kind domain.Kind, id uuid.UUID) (*domain.Item, error)
	List(ctx context.Context, kind domain.Kind, offset, limit int) ([]*domain.Item, error)
	Update(ctx context.Context, kind domain.Kind, item *domain.Item) error
	Delete(ctx context.Context, kind domain.Kind, id uuid.UUID) error
}

// CatalogUseCase defines catalog operations. Writes require the admin role;
// reads are open to any authenticated principal.
type CatalogUseCase interface {
	Create(
		ctx context.Context,
		actor authDomain.Principal,
		kind domain.Kind,
		input *domain.CreateItemInput,
	) (*domain.Item, error)
	Get(ctx context.Context, actor authDomain.Principal, kind domain.Kind, id uuid.UUID) (*domain.Item, error)
	List(
		ctx context.Context,
		actor authDomain.Principal,
		kind domain.Kind,
		offset, limit int,
	) ([]*domain.Item, error)
	Update(
		ctx context.Context,
		actor authDomain.Principal,
		kind domain.Kind,
		id uuid.UUID,
		input *domain.UpdateItemInput,
	) (*domain.Item, error)
	Delete(ctx context.Context, actor authDomain.Principal, kind domain.Kind, id uuid.UUID) error
}
