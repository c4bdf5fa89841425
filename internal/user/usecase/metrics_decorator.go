package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
	"github.com/allisson/staffdocs/internal/metrics"
	"github.com/allisson/staffdocs/internal/user/domain"
)

// userUseCaseWithMetrics decorates UserUseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UserUseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UserUseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UserUseCase, m metrics.BusinessMetrics) UserUseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *userUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	u.metrics.RecordOperation(ctx, "user", operation, status)
	u.metrics.RecordDuration(ctx, "user", operation, time.Since(start), status)
}

func (u *userUseCaseWithMetrics) Create(
	ctx context.Context,
	actor authDomain.Principal,
	input *domain.CreateUserInput,
) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Create(ctx, actor, input)
	u.record(ctx, "create", start, err)
	return user, err
}

func (u *userUseCaseWithMetrics) Get(
	ctx context.Context,
	actor authDomain.Principal,
	id uuid.UUID,
) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Get(ctx, actor, id)
	u.record(ctx, "get", start, err)
	return user, err
}

func (u *userUseCaseWithMetrics) List(
	ctx context.Context,
	actor authDomain.Principal,
	offset, limit int,
) ([]*domain.User, error) {
	start := time.Now()
	users, err := u.next.List(ctx, actor, offset, limit)
	u.record(ctx, "list", start, err)
	return users, err
}

func (u *userUseCaseWithMetrics) Update(
	ctx context.Context,
	actor authDomain.Principal,
	id uuid.UUID,
	input *domain.UpdateUserInput,
) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.Update(ctx, actor, id, input)
	u.record(ctx, "update", start, err)
	return user, err
}

func (u *userUseCaseWithMetrics) ChangePassword(
	ctx context.Context,
	actor authDomain.Principal,
	id uuid.UUID,
	newPassword string,
) error {
	start := time.Now()
	err := u.next.ChangePassword(ctx, actor, id, newPassword)
	u.record(ctx, "change_password", start, err)
	return err
}

func (u *userUseCaseWithMetrics) SetActive(
	ctx context.Context,
	actor authDomain.Principal,
	id uuid.UUID,
	active bool,
) error {
	start := time.Now()
	err := u.next.SetActive(ctx, actor, id, active)
	u.record(ctx, "set_active", start, err)
	return err
}

func (u *userUseCaseWithMetrics) Delete(
	ctx context.Context,
	actor authDomain.Principal,
	id uuid.UUID,
) error {
	start := time.Now()
	err := u.next.Delete(ctx, actor, id)
	u.record(ctx, "delete", start, err)
	return err
}
