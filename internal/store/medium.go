package store

import "context"

// Medium is the durable key-value medium backing the collection store. Each
// named collection is serialized as a whole under its well-known key; a read
// of an absent key yields (nil, nil).
type Medium interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, data []byte) error
}
