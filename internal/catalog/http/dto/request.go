// Package dto provides data transfer objects for catalog HTTP requests and responses.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/staffdocs/internal/validation"
)

// CreateItemRequest contains the parameters for creating a catalog item.
type CreateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate checks if the create item request is valid.
func (r *CreateItemRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Description,
			validation.Length(0, 1024),
		),
	)
}

// UpdateItemRequest contains the mutable fields of a catalog item.
type UpdateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate checks if the update item request is valid.
func (r *UpdateItemRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Description,
			validation.Length(0, 1024),
		),
	)
}
