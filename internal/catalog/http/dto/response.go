package dto

import (
	"time"

	"github.com/allisson/staffdocs/internal/catalog/domain"
)

// ItemResponse is the public shape of a catalog item.
type ItemResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemListResponse pages through catalog items.
type ItemListResponse struct {
	Items  []ItemResponse `json:"items"`
	Offset int            `json:"offset"`
	Limit  int            `json:"limit"`
}

// NewItemResponse converts a catalog item to its response shape.
func NewItemResponse(item *domain.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID.String(),
		Name:        item.Name,
		Description: item.Description,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// NewItemListResponse converts a page of catalog items to its response shape.
func NewItemListResponse(items []*domain.Item, offset, limit int) ItemListResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewItemResponse(item))
	}
	return ItemListResponse{
		Items:  out,
		Offset: offset,
		Limit:  limit,
	}
}
