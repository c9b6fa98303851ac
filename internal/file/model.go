package file

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/shareit-backend/internal/pkg/apperror"
)

var (
	ErrNotFound             = apperror.New(http.StatusNotFound, "file_not_found", "file not found")
	ErrThumbnailUnavailable = apperror.New(http.StatusNotFound, "thumbnail_not_found", "thumbnail not available for this file")
	ErrTooLarge             = apperror.New(http.StatusRequestEntityTooLarge, "file_too_large", "file is too large")
	ErrUnsupportedType      = apperror.New(http.StatusUnsupportedMediaType, "unsupported_file_type", "file type is not allowed")
)

// File is an uploaded blob, currently always an item photo.
type File struct {
	ID            string
	UserID        string // Uploader
	Filename      string
	StoragePath   string  // Relative to the storage root
	ThumbnailPath *string // Relative to the storage root
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

// UploadInput describes an upload and the limits it must satisfy.
type UploadInput struct {
	Filename     string
	Content      []byte
	UserID       string
	MaxSizeBytes int64    // 0 = no limit
	AllowedTypes []string // empty = allow all
}

// FileURL returns the public URL for accessing a file by its ID.
func FileURL(id string) string {
	return "/v1/files/" + id
}

// ThumbnailURL returns the public URL for accessing a file's thumbnail by its ID.
func ThumbnailURL(id string) string {
	return "/v1/files/" + id + "/thumbnail"
}
