package store

import (
	"context"

	"github.com/rgordon/item-api/internal/domain"
)

// ItemStore defines the interface for item data persistence.
type ItemStore interface {
	// FindAll retrieves every item in the store.
	// Returns an empty slice when the store holds no items.
	FindAll(ctx context.Context) ([]*domain.Item, error)

	// FindByID retrieves an item by its unique ID.
	// Returns ErrItemNotFound if the item does not exist.
	FindByID(ctx context.Context, id int64) (*domain.Item, error)

	// Save persists an item and returns the persisted value.
	// An item with a zero ID is inserted and the store assigns its ID;
	// an item with an explicit ID is written in place (insert or update).
	// Returns validation errors if the item data is invalid.
	Save(ctx context.Context, item *domain.Item) (*domain.Item, error)

	// DeleteByID removes an item from the store by its ID.
	// Deleting an ID that does not exist is not an error; callers that
	// need to distinguish must check existence first.
	DeleteByID(ctx context.Context, id int64) error

	// FindAllIDs retrieves the IDs of every item in the store.
	// The result is a snapshot; items created afterward are not included.
	FindAllIDs(ctx context.Context) ([]int64, error)
}
