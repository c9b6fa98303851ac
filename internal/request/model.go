package request

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "request_not_found", "request not found")
	ErrUserNotFound        = apperror.New(http.StatusNotFound, "user_not_found", "user not found")
	ErrDescriptionRequired = apperror.New(http.StatusBadRequest, "description_required", "description is required")
)

// Request is a user's ask for an item nobody has listed yet.
type Request struct {
	ID          string
	Description string
	RequesterID string
	CreatedAt   time.Time

	// Items listed in response to this request.
	Items []*item.Item
}
