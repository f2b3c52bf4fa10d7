package memory

import (
	"context"
	"sync"

	apperrors "github.com/yubssss/Furniview/pkg/errors"
)

// KV implements repository.KV using an in-memory map. It backs tests and
// brokerless local development.
type KV struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// New creates a new in-memory key-value store.
func New() *KV {
	return &KV{values: make(map[string][]byte)}
}

// Get retrieves the value stored at key.
func (s *KV) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return nil, apperrors.NotFound("key", key)
	}

	// Copy so callers cannot mutate the stored value.
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set stores value at key, overwriting any existing value.
func (s *KV) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	s.values[key] = stored
	return nil
}

// Remove deletes the key. Removing an absent key is not an error.
func (s *KV) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

// Len returns the number of stored keys.
func (s *KV) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
