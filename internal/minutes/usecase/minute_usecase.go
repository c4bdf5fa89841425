package usecase

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
	"github.com/allisson/staffdocs/internal/minutes/domain"
	"github.com/allisson/staffdocs/internal/minutes/service"
)

// minuteUseCase implements MinuteUseCase.
type minuteUseCase struct {
	minuteRepo  MinuteRepository
	attachments service.AttachmentStore
	logger      *slog.Logger
}

// Create uploads the attachment and records the minute. The blob is written
// first; if the record insert fails the blob is removed best-effort so the
// bucket does not accumulate orphans.
func (u *minuteUseCase) Create(
	ctx context.Context,
	actor authDomain.Principal,
	input *domain.CreateMinuteInput,
) (*domain.MeetingMinute, error) {
	if input.Attachment == nil {
		return nil, domain.ErrAttachmentRequired
	}

	id := uuid.Must(uuid.NewV7())
	key := "minutes/" + id.String() + filepath.Ext(input.AttachmentName)

	if err := u.attachments.Save(ctx, key, input.ContentType, input.Attachment); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	minute := &domain.MeetingMinute{
		ID:             id,
		Title:          input.Title,
		MeetingDate:    input.MeetingDate,
		AreaID:         input.AreaID,
		DocumentTypeID: input.DocumentTypeID,
		AttachmentKey:  key,
		AttachmentName: input.AttachmentName,
		ContentType:    input.ContentType,
		CreatedBy:      actor.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := u.minuteRepo.Create(ctx, minute); err != nil {
		if delErr := u.attachments.Delete(ctx, key); delErr != nil {
			u.logger.Error("failed to remove orphaned attachment",
				slog.String("key", key),
				slog.Any("error", delErr),
			)
		}
		return nil, err
	}
	return minute, nil
}

// Get retrieves a meeting minute.
func (u *minuteUseCase) Get(
	ctx context.Context,
	actor authDomain.Principal,
	id uuid.UUID,
) (*domain.MeetingMinute, error) {
	return u.minuteRepo.GetByID(ctx, id)
}

// List retrieves a page of meeting minutes.
func (u *minuteUseCase) List(
	ctx context.Context,
	actor authDomain.Principal,
	offset, limit int,
) ([]*domain.MeetingMinute, error) {
	return u.minuteRepo.List(ctx, offset, limit)
}

// DownloadAttachment streams the attachment back. The caller owns the reader.
func (u *minuteUseCase) DownloadAttachment(
	ctx context.Context,
	actor authDomain.Principal,
	id uuid.UUID,
) (*domain.MeetingMinute, io.ReadCloser, error) {
	minute, err := u.minuteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	reader, err := u.attachments.Open(ctx, minute.AttachmentKey)
	if err != nil {
		return nil, nil, err
	}
	return minute, reader, nil
}

// Delete removes the minute record and its attachment.
func (u *minuteUseCase) Delete(ctx context.Context, actor authDomain.Principal, id uuid.UUID) error {
	if err := authDomain.RequireAdmin(actor); err != nil {
		return err
	}

	minute, err := u.minuteRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := u.minuteRepo.Delete(ctx, id); err != nil {
		return err
	}

	// The record is gone; a dangling blob only wastes space.
	if err := u.attachments.Delete(ctx, minute.AttachmentKey); err != nil {
		u.logger.Error("failed to delete attachment",
			slog.String("key", minute.AttachmentKey),
			slog.Any("error", err),
		)
	}
	return nil
}

// NewMinuteUseCase creates a new MinuteUseCase.
func NewMinuteUseCase(
	minuteRepo MinuteRepository,
	attachments service.AttachmentStore,
	logger *slog.Logger,
) MinuteUseCase {
	return &minuteUseCase{
		minuteRepo:  minuteRepo,
		attachments: attachments,
		logger:      logger,
	}
}
