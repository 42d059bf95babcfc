package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// PostgresMedium stores each collection as one JSONB row keyed by collection
// name, preserving the whole-document-per-collection layout on a server-side
// database.
type PostgresMedium struct {
	db *sqlx.DB
}

// NewPostgresMedium wraps an open database handle.
func NewPostgresMedium(db *sqlx.DB) *PostgresMedium {
	return &PostgresMedium{db: db}
}

// EnsureSchema creates the collections table when absent.
func (m *PostgresMedium) EnsureSchema(ctx context.Context) error {
	const ddl = `CREATE TABLE IF NOT EXISTS collections (key TEXT PRIMARY KEY, doc JSONB NOT NULL, updated_at TIMESTAMPTZ NOT NULL)`
	if _, err := m.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure collections table: %w", err)
	}
	return nil
}

// Read returns the serialized collection, or nil when it was never written.
func (m *PostgresMedium) Read(ctx context.Context, key string) ([]byte, error) {
	const query = `SELECT doc FROM collections WHERE key = $1 LIMIT 1`
	var doc []byte
	if err := m.db.GetContext(ctx, &doc, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("read collection %s: %w", key, err)
	}
	return doc, nil
}

// Write replaces the serialized collection in a single upsert.
func (m *PostgresMedium) Write(ctx context.Context, key string, data []byte) error {
	const query = `INSERT INTO collections (key, doc, updated_at) VALUES ($1, $2, $3) ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc, updated_at = EXCLUDED.updated_at`
	if _, err := m.db.ExecContext(ctx, query, key, data, time.Now().UTC()); err != nil {
		return fmt.Errorf("write collection %s: %w", key, err)
	}
	return nil
}
