package dto

import (
	"time"

	"github.com/allisson/staffdocs/internal/minutes/domain"
)

// MinuteResponse is the public shape of a meeting minute.
type MinuteResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	MeetingDate    string    `json:"meeting_date"`
	AreaID         string    `json:"area_id"`
	DocumentTypeID string    `json:"document_type_id"`
	AttachmentName string    `json:"attachment_name"`
	ContentType    string    `json:"content_type"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// MinuteListResponse pages through meeting minutes.
type MinuteListResponse struct {
	Minutes []MinuteResponse `json:"minutes"`
	Offset  int              `json:"offset"`
	Limit   int              `json:"limit"`
}

// NewMinuteResponse converts a meeting minute to its response shape.
func NewMinuteResponse(minute *domain.MeetingMinute) MinuteResponse {
	return MinuteResponse{
		ID:             minute.ID.String(),
		Title:          minute.Title,
		MeetingDate:    minute.MeetingDate.Format(MeetingDateLayout),
		AreaID:         minute.AreaID.String(),
		DocumentTypeID: minute.DocumentTypeID.String(),
		AttachmentName: minute.AttachmentName,
		ContentType:    minute.ContentType,
		CreatedBy:      minute.CreatedBy.String(),
		CreatedAt:      minute.CreatedAt,
		UpdatedAt:      minute.UpdatedAt,
	}
}

// NewMinuteListResponse converts a page of minutes to its response shape.
func NewMinuteListResponse(minutes []*domain.MeetingMinute, offset, limit int) MinuteListResponse {
	items := make([]MinuteResponse, 0, len(minutes))
	for _, minute := range minutes {
		items = append(items, NewMinuteResponse(minute))
	}
	return MinuteListResponse{
		Minutes: items,
		Offset:  offset,
		Limit:   limit,
	}
}
