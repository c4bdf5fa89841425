// Package dto provides data transfer objects for user HTTP requests and responses.
package dto

import (
	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/staffdocs/internal/auth/domain"
	customValidation "github.com/allisson/staffdocs/internal/validation"
)

// passwordPolicy is applied to new passwords only; login accepts whatever was
// valid when the password was set.
var passwordPolicy = customValidation.PasswordStrength{
	MinLength:     10,
	RequireUpper:  true,
	RequireLower:  true,
	RequireNumber: true,
}

// CreateUserRequest contains the parameters for creating an account.
type CreateUserRequest struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

// Validate checks if the create user request is valid.
func (r *CreateUserRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Username,
			validation.Required,
			customValidation.Username,
			validation.Length(3, 64),
		),
		validation.Field(&r.FullName,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Email,
			validation.Required,
			customValidation.Email,
		),
		validation.Field(&r.Password,
			validation.Required,
			validation.By(passwordPolicy.Validate),
		),
		validation.Field(&r.Role,
			validation.Required,
			validation.In(string(authDomain.RoleAdmin), string(authDomain.RoleOperator)),
		),
	)
}

// UpdateUserRequest contains the mutable profile fields.
type UpdateUserRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// Validate checks if the update user request is valid.
func (r *UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.FullName,
			validation.Required,
			customValidation.NotBlank,
			validation.Length(1, 255),
		),
		validation.Field(&r.Email,
			validation.Required,
			customValidation.Email,
		),
	)
}

// ChangePasswordRequest contains the new password.
type ChangePasswordRequest struct {
	Password string `json:"password"`
}

// Validate checks if the change password request is valid.
func (r *ChangePasswordRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Password,
			validation.Required,
			validation.By(passwordPolicy.Validate),
		),
	)
}
