package api

import (
	"time"

	"github.com/rgordon/item-api/internal/domain"
)

// ItemRequest represents the request body for creating or updating an item.
type ItemRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status" validate:"required,oneof=NEW IN_PROGRESS PROCESSED COMPLETED FAILED"`
	Email       string `json:"email" validate:"required,email"`
}

// ItemResponse represents the response data for an item.
type ItemResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// itemToResponse converts a domain.Item to an ItemResponse.
func itemToResponse(item *domain.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Status:      string(item.Status),
		Email:       item.Email,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// itemsToResponse converts a slice of domain items to response form.
// Always returns a non-nil slice so empty lists serialize as [] rather
// than null.
func itemsToResponse(items []*domain.Item) []ItemResponse {
	responses := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, itemToResponse(item))
	}
	return responses
}

// toDomain builds a domain.Item from the request payload.
func (r ItemRequest) toDomain() *domain.Item {
	return &domain.Item{
		Name:        r.Name,
		Description: r.Description,
		Status:      domain.ItemStatus(r.Status),
		Email:       r.Email,
	}
}
