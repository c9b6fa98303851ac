package request

import (
	"net/http"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

// ByIDRequest is a common struct for endpoints that require an ID path parameter.
type ByIDRequest struct {
	ID string `uri:"id" binding:"required,uuid"`
}

// ListParams are the offset-style paging parameters shared by list endpoints.
// From is an element offset, Size the page size.
type ListParams struct {
	From int `form:"from,default=0" binding:"min=0"`
	Size int `form:"size,default=10" binding:"min=1,max=100"`
}

// PageIndex converts From/Size into a zero-based page number.
// The offset is rounded down to a page boundary.
func PageIndex(from, size int) int {
	if from > 0 && size > 0 {
		return from / size
	}
	return 0
}

// ErrInvalidPagination is returned for a negative offset or a page size below one.
var ErrInvalidPagination = apperror.New(http.StatusBadRequest, "invalid_pagination", "from must be >= 0 and size must be >= 1")

// Page validates from/size and returns the page index to query.
func Page(from, size int) (int, error) {
	if from < 0 || size < 1 {
		return 0, ErrInvalidPagination
	}
	return PageIndex(from, size), nil
}
