// Package storage is the client's persistence bridge: a durable key-value
// mirror of session and cart state used only to survive process restarts.
// Values are opaque strings; (de)serialization belongs to the callers.
package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Keys under which the client mirrors its state.
const (
	KeyToken = "token"
	KeyUser  = "user"
	KeyCart  = "cart"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Store is a durable key-value mirror.
type Store interface {
	// Get returns the value stored under key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores value under key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	// Close releases the underlying resources.
	Close() error
}

// Open returns the Store for the named backend rooted at path.
// The memory backend ignores path.
func Open(backend, path string, log *zap.Logger) (Store, error) {
	switch backend {
	case "", BackendFile:
		return NewFileStore(path, log)
	case BackendSQLite:
		return NewSQLiteStore(path)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}
