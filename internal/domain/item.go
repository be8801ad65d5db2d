package domain

import (
	"errors"
	"regexp"
	"time"
)

// Item-specific validation errors
var (
	// ErrItemNameEmpty is returned when an item's name is empty.
	ErrItemNameEmpty = errors.New("item name cannot be empty")

	// ErrItemStatusInvalid is returned when an item's status is not one of
	// the enumerated status values.
	ErrItemStatusInvalid = errors.New("item status is not a valid status")

	// ErrItemEmailEmpty is returned when an item's email is empty.
	ErrItemEmailEmpty = errors.New("item email cannot be empty")

	// ErrItemEmailInvalid is returned when an item's email is not a valid
	// email address.
	ErrItemEmailInvalid = errors.New("item email is not a valid email address")
)

// ItemStatus represents the processing state of an item.
type ItemStatus string

// Possible item status values.
const (
	ItemStatusNew        ItemStatus = "NEW"
	ItemStatusInProgress ItemStatus = "IN_PROGRESS"
	ItemStatusProcessed  ItemStatus = "PROCESSED"
	ItemStatusCompleted  ItemStatus = "COMPLETED"
	ItemStatusFailed     ItemStatus = "FAILED"
)

// IsValid reports whether the status is one of the enumerated values.
func (s ItemStatus) IsValid() bool {
	switch s {
	case ItemStatusNew, ItemStatusInProgress, ItemStatusProcessed,
		ItemStatusCompleted, ItemStatusFailed:
		return true
	}
	return false
}

// emailPattern requires alphanumeric local parts, a valid domain, and a TLD
// of at least two characters.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Item represents the single managed resource of the system.
// The ID is assigned by the store on first save and is immutable afterward.
type Item struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Status      ItemStatus `json:"status"`
	Email       string     `json:"email"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewItem creates a new Item with the given name, description, and email.
// The status starts as NEW; the store assigns the ID on first save.
// Returns an error if validation fails.
func NewItem(name, description, email string) (*Item, error) {
	item := &Item{
		Name:        name,
		Description: description,
		Status:      ItemStatusNew,
		Email:       email,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks if the Item has valid data.
// Returns an error if any field fails validation.
func (i *Item) Validate() error {
	if i.Name == "" {
		return ErrItemNameEmpty
	}

	if !i.Status.IsValid() {
		return ErrItemStatusInvalid
	}

	if i.Email == "" {
		return ErrItemEmailEmpty
	}

	if !emailPattern.MatchString(i.Email) {
		return ErrItemEmailInvalid
	}

	return nil
}
