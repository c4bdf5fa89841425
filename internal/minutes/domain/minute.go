// Package domain contains the meeting minute entity and its inputs.
package domain

import (
	"io"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/allisson/staffdocs/internal/errors"
)

// Named errors for meeting minute operations.
var (
	ErrMinuteNotFound     = apperrors.Wrap(apperrors.ErrNotFound, "meeting minute not found")
	ErrAttachmentRequired = apperrors.Wrap(apperrors.ErrInvalidInput, "attachment file is required")
	ErrUnknownReference   = apperrors.Wrap(apperrors.ErrInvalidInput, "unknown area or document type")
)

// MeetingMinute is a recorded meeting document with one file attachment
// stored in the blob bucket under AttachmentKey.
type MeetingMinute struct {
	ID             uuid.UUID
	Title          string
	MeetingDate    time.Time
	AreaID         uuid.UUID
	DocumentTypeID uuid.UUID
	AttachmentKey  string
	AttachmentName string
	ContentType    string
	CreatedBy      uuid.UUID
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CreateMinuteInput carries the fields and attachment stream for a new minute.
type CreateMinuteInput struct {
	Title          string
	MeetingDate    time.Time
	AreaID         uuid.UUID
	DocumentTypeID uuid.UUID
	AttachmentName string
	ContentType    string
	Attachment     io.Reader
}
