// Package metadata stores named blobs in the local database: the
// key/value slots the client persists its state in (for example the
// "savedVideos" library slot).
package metadata

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been set.
var ErrNotFound = errors.New("metadata key not found")

// Repository reads and writes whole values by key. Every Set overwrites
// the previous value; there are no partial updates.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}
