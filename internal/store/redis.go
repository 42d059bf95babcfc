package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisMedium stores each collection as one Redis string under its key.
// Collections never expire; Redis persistence settings govern durability.
type RedisMedium struct {
	client *redis.Client
	prefix string
}

// NewRedisMedium wraps a connected client. Keys are namespaced with the
// given prefix so the store can share a database with the stats cache.
func NewRedisMedium(client *redis.Client, prefix string) *RedisMedium {
	if prefix == "" {
		prefix = "collections"
	}
	return &RedisMedium{client: client, prefix: prefix}
}

// Read returns the serialized collection, or nil when it was never written.
func (m *RedisMedium) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := m.client.Get(ctx, m.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("read collection %s: %w", key, err)
	}
	return data, nil
}

// Write replaces the serialized collection.
func (m *RedisMedium) Write(ctx context.Context, key string, data []byte) error {
	if err := m.client.Set(ctx, m.key(key), data, 0).Err(); err != nil {
		return fmt.Errorf("write collection %s: %w", key, err)
	}
	return nil
}

func (m *RedisMedium) key(key string) string {
	return m.prefix + ":" + key
}
