package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileMedium stores each collection as one JSON document on disk. This is the
// default backend and the direct analogue of the browser-local storage the
// platform originally persisted to.
type FileMedium struct {
	dir string
}

// NewFileMedium ensures the data directory exists and returns the medium.
func NewFileMedium(dir string) (*FileMedium, error) {
	if dir == "" {
		dir = "./data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileMedium{dir: dir}, nil
}

// Read returns the serialized collection, or nil when it was never written.
func (m *FileMedium) Read(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(m.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read collection %s: %w", key, err)
	}
	return data, nil
}

// Write replaces the serialized collection. The document is written to a
// temporary file first so a crash mid-write never truncates the collection.
func (m *FileMedium) Write(_ context.Context, key string, data []byte) error {
	path := m.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write collection %s: %w", key, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("commit collection %s: %w", key, err)
	}
	return nil
}

func (m *FileMedium) path(key string) string {
	return filepath.Join(m.dir, key+".json")
}
