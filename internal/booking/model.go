package booking

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrInvalidRange     = apperror.New(http.StatusBadRequest, "invalid_range", "booking start must be before booking end")
	ErrPastDate         = apperror.New(http.StatusBadRequest, "past_date", "booking cannot start or end in the past")
	ErrUnsupportedState = apperror.New(http.StatusBadRequest, "unsupported_state", "Unknown state: UNSUPPORTED_STATUS")
	ErrItemNotFound     = apperror.New(http.StatusNotFound, "item_not_found", "item not found")
	ErrUserNotFound     = apperror.New(http.StatusNotFound, "user_not_found", "user not found")
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking_not_found", "booking not found")
	ErrSelfBooking      = apperror.New(http.StatusForbidden, "self_booking_forbidden", "booking own item is not allowed")
	ErrItemUnavailable  = apperror.New(http.StatusConflict, "item_unavailable", "item is not available")
	ErrScheduleConflict = apperror.New(http.StatusConflict, "schedule_conflict", "item is already booked for this period")
	ErrAlreadyApproved  = apperror.New(http.StatusConflict, "already_approved", "booking already approved")
)

// Booking is a borrower's claim on an item for [Start, End].
// ItemName, OwnerID and BookerName are read from the joined item and user rows.
type Booking struct {
	ID         string
	ItemID     string
	ItemName   string
	OwnerID    string
	BookerID   string
	BookerName string
	Start      time.Time
	End        time.Time
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// CreateRequest is what a booker submits.
type CreateRequest struct {
	ItemID string
	Start  time.Time
	End    time.Time
}

// Filter selects bookings for listing. Exactly one of BookerID and OwnerID is set.
type Filter struct {
	BookerID string
	OwnerID  string
	State    State
	Now      time.Time // Reference point for CURRENT, PAST and FUTURE
	Page     int
	Size     int
}
