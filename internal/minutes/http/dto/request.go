// Package dto provides data transfer objects for meeting minute HTTP requests
// and responses.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/staffdocs/internal/validation"
)

// MeetingDateLayout is the accepted form-field format for meeting dates.
const MeetingDateLayout = "2006-01-02"

// CreateMinuteForm contains the multipart form fields for creating a minute.
// The attachment file travels separately in the "attachment" form file.
type CreateMinuteForm struct {
	Title          string `form:"title"`
	MeetingDate    string `form:"meeting_date"`
	AreaID         string `form:"area_id"`
	DocumentTypeID string `form:"document_type_id"`
}

// Validate checks if the create minute form is valid.
func (r *CreateMinuteForm) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.MeetingDate,
			validation.Required,
			validation.Date(MeetingDateLayout),
		),
		validation.Field(&r.AreaID,
			validation.Required,
			customValidation.UUID,
		),
		validation.Field(&r.DocumentTypeID,
			validation.Required,
			customValidation.UUID,
		),
	)
}
