package dto

import (
	"time"

	"github.com/allisson/staffdocs/internal/user/domain"
)

// UserResponse is the public shape of an account. It never carries the
// password hash.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserListResponse pages through accounts.
type UserListResponse struct {
	Users  []UserResponse `json:"users"`
	Offset int            `json:"offset"`
	Limit  int            `json:"limit"`
}

// NewUserResponse converts a user entity to its response shape.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		FullName:  user.FullName,
		Email:     user.Email,
		Role:      string(user.Role),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// NewUserListResponse converts a page of users to its response shape.
func NewUserListResponse(users []*domain.User, offset, limit int) UserListResponse {
	items := make([]UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, NewUserResponse(user))
	}
	return UserListResponse{
		Users:  items,
		Offset: offset,
		Limit:  limit,
	}
}
