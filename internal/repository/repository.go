package repository

import "context"

// KV is the persistent key-value blob store contract. Values are full
// serializations of a collection; the store always overwrites the whole value
// for a key, never individual fields.
type KV interface {
	// Get retrieves the value stored at key. Returns errors.ErrNotFound if
	// the key has never been written or was removed.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value at key, overwriting any existing value.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes the key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}
