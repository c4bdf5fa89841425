package usecase

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
	"github.com/allisson/staffdocs/internal/metrics"
	"github.com/allisson/staffdocs/internal/minutes/domain"
)

// minuteUseCaseWithMetrics decorates MinuteUseCase with metrics instrumentation.
type minuteUseCaseWithMetrics struct {
	next    MinuteUseCase
	metrics metrics.BusinessMetrics
}

// NewMinuteUseCaseWithMetrics wraps a MinuteUseCase with metrics recording.
func NewMinuteUseCaseWithMetrics(useCase MinuteUseCase, m metrics.BusinessMetrics) MinuteUseCase {
	return &minuteUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *minuteUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	u.metrics.RecordOperation(ctx, "minutes", operation, status)
	u.metrics.RecordDuration(ctx, "minutes", operation, time.Since(start), status)
}

func (u *minuteUseCaseWithMetrics) Create(
	ctx context.Context,
	actor authDomain.Principal,
	input *domain.CreateMinuteInput,
) (*domain.MeetingMinute, error) {
	start := time.Now()
	minute, err := u.next.Create(ctx, actor, input)
	u.record(ctx, "create", start, err)
	return minute, err
}

func (u *minuteUseCaseWithMetrics) Get(
	ctx context.Context,
	actor authDomain.Principal,
	id uuid.UUID,
) (*domain.MeetingMinute, error) {
	start := time.Now()
	minute, err := u.next.Get(ctx, actor, id)
	u.record(ctx, "get", start, err)
	return minute, err
}

func (u *minuteUseCaseWithMetrics) List(
	ctx context.Context,
	actor authDomain.Principal,
	offset, limit int,
) ([]*domain.MeetingMinute, error) {
	start := time.Now()
	minutes, err := u.next.List(ctx, actor, offset, limit)
	u.record(ctx, "list", start, err)
	return minutes, err
}

func (u *minuteUseCaseWithMetrics) DownloadAttachment(
	ctx context.Context,
	actor authDomain.Principal,
	id uuid.UUID,
) (*domain.MeetingMinute, io.ReadCloser, error) {
	start := time.Now()
	minute, reader, err := u.next.DownloadAttachment(ctx, actor, id)
	u.record(ctx, "download_attachment", start, err)
	return minute, reader, err
}

func (u *minuteUseCaseWithMetrics) Delete(
	ctx context.Context,
	actor authDomain.Principal,
	id uuid.UUID,
) error {
	start := time.Now()
	err := u.next.Delete(ctx, actor, id)
	u.record(ctx, "delete", start, err)
	return err
}
