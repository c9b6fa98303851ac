package item

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "item_not_found", "item not found")
	ErrOwnerNotFound       = apperror.New(http.StatusNotFound, "user_not_found", "user not found")
	ErrRequestNotFound     = apperror.New(http.StatusNotFound, "request_not_found", "request not found")
	ErrNameRequired        = apperror.New(http.StatusBadRequest, "name_required", "name is required")
	ErrDescriptionRequired = apperror.New(http.StatusBadRequest, "description_required", "description is required")
)

// Item is a thing a user offers for borrowing.
type Item struct {
	ID          string
	Name        string
	Description string
	Available   bool
	OwnerID     string
	RequestID   *string // Request this item was listed in response to
	PhotoFileID *string
	CreatedAt   time.Time

	// Only populated for the owner.
	LastBooking *BookingRef
	NextBooking *BookingRef
}

// BookingRef is the slice of a booking shown on an item card.
type BookingRef struct {
	ID       string
	BookerID string
	Start    time.Time
	End      time.Time
}

// CreateItemRequest holds the fields required to list a new item.
type CreateItemRequest struct {
	Name        string
	Description string
	Available   bool
	RequestID   *string
}

// UpdateItemRequest holds the optional fields an owner may change.
type UpdateItemRequest struct {
	Name        *string
	Description *string
	Available   *bool
}
