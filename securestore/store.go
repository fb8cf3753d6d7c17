package securestore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been set or was
// deleted. Delete on a missing key is not an error.
var ErrNotFound = errors.New("securestore: key not found")

// Store is the durable key-value contract for session persistence. Values
// are opaque strings; implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
