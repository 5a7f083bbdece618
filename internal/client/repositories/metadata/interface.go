// Package metadata implements the client's durable key/value store. Session
// and conversation state is persisted here as opaque blobs under well-known
// keys.
package metadata

import "context"

type Repository interface {
	// Get returns the value stored under key, or (nil, nil) when absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set inserts or overwrites the value under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the key; removing an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Clear removes every key.
	Clear(ctx context.Context) error
}
