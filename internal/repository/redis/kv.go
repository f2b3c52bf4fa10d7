package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/yubssss/Furniview/pkg/errors"
)

const keyPrefix = "storefront:"

// KV implements repository.KV using Redis. Collections live forever (no TTL):
// the durable copy mirrors the device user's session state across restarts.
type KV struct {
	client *redis.Client
}

// NewKV creates a new Redis-backed key-value store.
func NewKV(client *redis.Client) *KV {
	return &KV{client: client}
}

// Get retrieves the value stored at key.
func (s *KV) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, apperrors.NotFound("key", key)
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

// Set stores value at key, overwriting any existing value.
func (s *KV) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, keyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Remove deletes the key. Removing an absent key is not an error.
func (s *KV) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
