package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store is an abstraction for durable storage of named immutable blobs,
// primarily index snapshots.
//
// Put must be atomic per name: a concurrent Get observes either the previous
// blob or the complete new one, never a partial write.
type Store interface {
	// Put writes the blob under name, replacing any previous content.
	Put(ctx context.Context, name string, r io.Reader) error

	// Get opens the named blob for reading. The caller owns the returned
	// ReadCloser.
	Get(ctx context.Context, name string) (io.ReadCloser, error)

	// Delete removes the named blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all blobs with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}
