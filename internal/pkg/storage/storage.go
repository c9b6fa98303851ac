package storage

import (
	"context"
	"io"
)

// Storage stores blobs under relative, slash-separated paths.
type Storage interface {
	Save(ctx context.Context, path string, content io.Reader) error

	// Get returns ErrNotExist when nothing is stored at path.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	Delete(ctx context.Context, path string) error
}
