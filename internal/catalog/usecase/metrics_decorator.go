package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
	"github.com/allisson/staffdocs/internal/catalog/domain"
	"github.com/allisson/staffdocs/internal/metrics"
)

// catalogUseCaseWithMetrics decorates CatalogUseCase with metrics instrumentation.
type catalogUseCaseWithMetrics struct {
	next    CatalogUseCase
	metrics metrics.BusinessMetrics
}

// NewCatalogUseCaseWithMetrics wraps a CatalogUseCase with metrics recording.
func NewCatalogUseCaseWithMetrics(useCase CatalogUseCase, m metrics.BusinessMetrics) CatalogUseCase {
	return &catalogUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *catalogUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	u.metrics.RecordOperation(ctx, "catalog", operation, status)
	u.metrics.RecordDuration(ctx, "catalog", operation, time.Since(start), status)
}

func (u *catalogUseCaseWithMetrics) Create(
	ctx context.Context,
	actor authDomain.Principal,
	kind domain.Kind,
	input *domain.CreateItemInput,
) (*domain.Item, error) {
	start := time.Now()
	item, err := u.next.Create(ctx, actor, kind, input)
	u.record(ctx, "create", start, err)
	return item, err
}

func (u *catalogUseCaseWithMetrics) Get(
	ctx context.Context,
	actor authDomain.Principal,
	kind domain.Kind,
	id uuid.UUID,
) (*domain.Item, error) {
	start := time.Now()
	item, err := u.next.Get(ctx, actor, kind, id)
	u.record(ctx, "get", start, err)
	return item, err
}

func (u *catalogUseCaseWithMetrics) List(
	ctx context.Context,
	actor authDomain.Principal,
	kind domain.Kind,
	offset, limit int,
) ([]*domain.Item, error) {
	start := time.Now()
	items, err := u.next.List(ctx, actor, kind, offset, limit)
	u.record(ctx, "list", start, err)
	return items, err
}

func (u *catalogUseCaseWithMetrics) Update(
	ctx context.Context,
	actor authDomain.Principal,
	kind domain.Kind,
	id uuid.UUID,
	input *domain.UpdateItemInput,
) (*domain.Item, error) {
	start := time.Now()
	item, err := u.next.Update(ctx, actor, kind, id, input)
	u.record(ctx, "update", start, err)
	return item, err
}

func (u *catalogUseCaseWithMetrics) Delete(
	ctx context.Context,
	actor authDomain.Principal,
	kind domain.Kind,
	id uuid.UUID,
) error {
	start := time.Now()
	err := u.next.Delete(ctx, actor, kind, id)
	u.record(ctx, "delete", start, err)
	return err
}
