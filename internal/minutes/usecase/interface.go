// Package usecase implements business logic for meeting minutes.
package usecase

import (
	"context"
	"io"

	"github.com/google/uuid"

	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
	"github.com/allisson/staffdocs/internal/minutes/domain"
)

// MinuteRepository defines persistence operations for meeting minutes.
type MinuteRepository interface {
	Create(ctx context.Context, minute *domain.MeetingMinute) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.MeetingMinute, error)
	List(ctx context.Context, offset, limit int) ([]*domain.MeetingMinute, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// MinuteUseCase defines meeting minute operations. Any authenticated
// principal can create and read minutes; deletion requires the admin role.
type MinuteUseCase interface {
	Create(
		ctx context.Context,
		actor authDomain.Principal,
		input *domain.CreateMinuteInput,
	) (*domain.MeetingMinute, error)
	Get(ctx context.Context, actor authDomain.Principal, id uuid.UUID) (*domain.MeetingMinute, error)
	List(ctx context.Context, actor authDomain.Principal, offset, limit int) ([]*domain.MeetingMinute, error)
	DownloadAttachment(
		ctx context.Context,
		actor authDomain.Principal,
		id uuid.UUID,
	) (*domain.MeetingMinute, io.ReadCloser, error)
	Delete(ctx context.Context, actor authDomain.Principal, id uuid.UUID) error
}
