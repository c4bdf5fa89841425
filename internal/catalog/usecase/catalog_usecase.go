package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
	"github.com/allisson/staffdocs/internal/catalog/domain"
)

// catalogUseCase implements CatalogUseCase.
type catalogUseCase struct {
	catalogRepo CatalogRepository
}

// Create adds a new catalog item.
func (u *catalogUseCase) Create(
	ctx context.Context,
	actor authDomain.Principal,
	kind domain.Kind,
	input *domain.CreateItemInput,
) (*domain.Item, error) {
	if err := authDomain.RequireAdmin(actor); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item := &domain.Item{
		ID:          uuid.Must(uuid.NewV7()),
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := u.catalogRepo.Create(ctx, kind, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Get retrieves a catalog item.
func (u *catalogUseCase) Get(
	ctx context.Context,
	actor authDomain.Principal,
	kind domain.Kind,
	id uuid.UUID,
) (*domain.Item, error) {
	return u.catalogRepo.GetByID(ctx, kind, id)
}

// List retrieves a page of catalog items.
func (u *catalogUseCase) List(
	ctx context.Context,
	actor authDomain.Principal,
	kind domain.Kind,
	offset, limit int,
) ([]*domain.Item, error) {
	return u.catalogRepo.List(ctx, kind, offset, limit)
}

// Update modifies a catalog item.
func (u *catalogUseCase) Update(
	ctx context.Context,
	actor authDomain.Principal,
	kind domain.Kind,
	id uuid.UUID,
	input *domain.UpdateItemInput,
) (*domain.Item, error) {
	if err := authDomain.RequireAdmin(actor); err != nil {
		return nil, err
	}

	item, err := u.catalogRepo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}

	item.Name = input.Name
	item.Description = input.Description
	item.UpdatedAt = time.Now().UTC()

	if err := u.catalogRepo.Update(ctx, kind, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes a catalog item.
func (u *catalogUseCase) Delete(
	ctx context.Context,
	actor authDomain.Principal,
	kind domain.Kind,
	id uuid.UUID,
) error {
	if err := authDomain.RequireAdmin(actor); err != nil {
		return err
	}
	return u.catalogRepo.Delete(ctx, kind, id)
}

// NewCatalogUseCase creates a new CatalogUseCase.
func NewCatalogUseCase(catalogRepo CatalogRepository) CatalogUseCase {
	return &catalogUseCase{
		catalogRepo: catalogRepo,
	}
}
