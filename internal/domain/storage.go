package domain

import "context"

// KeyValueStore is the local persistence backend. Values are opaque blobs
// keyed by a versioned identifier.
type KeyValueStore interface {
	// Get returns ErrNotFound when the key is absent
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
