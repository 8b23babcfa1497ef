package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when no document is stored under the key.
var ErrKeyNotFound = errors.New("storage: key not found")

// Store defines the named-document backends
// Supports local filesystem, in-memory, PostgreSQL and Redis
type Store interface {
	// Get returns the raw document stored under key
	Get(ctx context.Context, key string) ([]byte, error)

	// Put replaces the whole document stored under key
	Put(ctx context.Context, key string, data []byte) error
}
