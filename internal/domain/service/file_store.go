package service

import (
	"context"
	"io"
)

// FileStore defines the interface for storing uploaded files such as user
// and pet profile pictures. Implementations return the storage key under
// which the file was written.
type FileStore interface {
	// Save writes the contents of r under the given key, overwriting any
	// previous object.
	Save(ctx context.Context, key string, contentType string, r io.Reader) error

	// Delete removes the object stored under key. Deleting a missing object
	// is not an error.
	Delete(ctx context.Context, key string) error
}
