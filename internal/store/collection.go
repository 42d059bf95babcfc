package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	appErrors "github.com/uta-tic/tutoring-api/pkg/errors"
)

// SchemaVersion tags every serialized collection document so future layout
// changes can migrate on load.
const SchemaVersion = 1

// Record is implemented by every persisted entity.
type Record interface {
	Key() string
}

// Observer receives timing for store operations; wired to Prometheus by the
// metrics service.
type Observer func(collection, op string, duration time.Duration)

// envelope is the on-medium representation of one collection.
type envelope[T Record] struct {
	Version int `json:"version"`
	Records []T `json:"records"`
}

// Collection holds one named entity family. The full record set lives in
// memory after the first access and every mutation rewrites the whole
// serialized document, mirroring the original client-side storage layout. A
// mutex serializes read-modify-write cycles so near-simultaneous writers can
// no longer both pass a uniqueness check before either write lands.
type Collection[T Record] struct {
	name    string
	medium  Medium
	observe Observer

	mu     sync.RWMutex
	items  []T
	loaded bool
}

// NewCollection binds a named collection to its medium.
func NewCollection[T Record](name string, medium Medium, observe Observer) *Collection[T] {
	return &Collection[T]{name: name, medium: medium, observe: observe}
}

// Name returns the collection's well-known key.
func (c *Collection[T]) Name() string { return c.name }

// ensureLoaded materializes the collection from the medium on first access.
// Callers must hold at least the read lock; the write lock is taken briefly
// when a load is needed.
func (c *Collection[T]) ensureLoaded(ctx context.Context) error {
	c.mu.RLock()
	loaded := c.loaded
	c.mu.RUnlock()
	if loaded {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loaded {
		return nil
	}

	start := time.Now()
	data, err := c.medium.Read(ctx, c.name)
	c.track("load", start)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorageUnavailable.Code, appErrors.ErrStorageUnavailable.Status, "load collection "+c.name)
	}
	if data == nil {
		c.items = []T{}
		c.loaded = true
		return nil
	}

	var doc envelope[T]
	if err := json.Unmarshal(data, &doc); err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorageUnavailable.Code, appErrors.ErrStorageUnavailable.Status, "decode collection "+c.name)
	}
	c.items = doc.Records
	if c.items == nil {
		c.items = []T{}
	}
	c.loaded = true
	return nil
}

// flush serializes the provided record set and writes it through the medium.
// The in-memory state is swapped only after the write succeeds, so a medium
// fault leaves the collection unchanged and no partial batch visible.
func (c *Collection[T]) flush(ctx context.Context, next []T) error {
	data, err := json.Marshal(envelope[T]{Version: SchemaVersion, Records: next})
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorageUnavailable.Code, appErrors.ErrStorageUnavailable.Status, "encode collection "+c.name)
	}
	start := time.Now()
	err = c.medium.Write(ctx, c.name, data)
	c.track("write", start)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrStorageUnavailable.Code, appErrors.ErrStorageUnavailable.Status, "write collection "+c.name)
	}
	c.items = next
	return nil
}

// All returns a copy of every record.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out, nil
}

// Get returns the record with the given key.
func (c *Collection[T]) Get(ctx context.Context, key string) (T, bool, error) {
	var zero T
	if err := c.ensureLoaded(ctx); err != nil {
		return zero, false, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if item.Key() == key {
			return item, true, nil
		}
	}
	return zero, false, nil
}

// Find returns the first record matching the predicate.
func (c *Collection[T]) Find(ctx context.Context, pred func(T) bool) (T, bool, error) {
	var zero T
	if err := c.ensureLoaded(ctx); err != nil {
		return zero, false, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, item := range c.items {
		if pred(item) {
			return item, true, nil
		}
	}
	return zero, false, nil
}

// Filter returns every record matching the predicate.
func (c *Collection[T]) Filter(ctx context.Context, pred func(T) bool) ([]T, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0)
	for _, item := range c.items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

// Count returns the number of records matching the predicate.
func (c *Collection[T]) Count(ctx context.Context, pred func(T) bool) (int, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return 0, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, item := range c.items {
		if pred(item) {
			n++
		}
	}
	return n, nil
}

// Insert appends one record and rewrites the collection.
func (c *Collection[T]) Insert(ctx context.Context, item T) error {
	return c.InsertMany(ctx, []T{item})
}

// InsertMany appends a batch in a single rewrite. Either every record in the
// batch becomes visible or none does.
func (c *Collection[T]) InsertMany(ctx context.Context, items []T) error {
	if len(items) == 0 {
		return nil
	}
	if err := c.ensureLoaded(ctx); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	next := make([]T, 0, len(c.items)+len(items))
	next = append(next, c.items...)
	next = append(next, items...)
	return c.flush(ctx, next)
}

// Update applies the mutation to the record with the given key and rewrites
// the collection. Returns the updated record and whether the key existed.
func (c *Collection[T]) Update(ctx context.Context, key string, mutate func(*T)) (T, bool, error) {
	var zero T
	if err := c.ensureLoaded(ctx); err != nil {
		return zero, false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	next := make([]T, len(c.items))
	copy(next, c.items)
	for i := range next {
		if next[i].Key() != key {
			continue
		}
		mutate(&next[i])
		if err := c.flush(ctx, next); err != nil {
			return zero, false, err
		}
		return next[i], true, nil
	}
	return zero, false, nil
}

// Delete removes the record with the given key. Returns whether it existed.
func (c *Collection[T]) Delete(ctx context.Context, key string) (bool, error) {
	n, err := c.DeleteWhere(ctx, func(item T) bool { return item.Key() == key })
	return n > 0, err
}

// DeleteWhere removes every record matching the predicate in one rewrite and
// returns how many were removed.
func (c *Collection[T]) DeleteWhere(ctx context.Context, pred func(T) bool) (int, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return 0, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	next := make([]T, 0, len(c.items))
	removed := 0
	for _, item := range c.items {
		if pred(item) {
			removed++
			continue
		}
		next = append(next, item)
	}
	if removed == 0 {
		return 0, nil
	}
	if err := c.flush(ctx, next); err != nil {
		return 0, err
	}
	return removed, nil
}

// ReplaceAll swaps the entire record set. Used by the session collection,
// which holds at most one record.
func (c *Collection[T]) ReplaceAll(ctx context.Context, items []T) error {
	if err := c.ensureLoaded(ctx); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if items == nil {
		items = []T{}
	}
	return c.flush(ctx, items)
}

func (c *Collection[T]) track(op string, start time.Time) {
	if c.observe != nil {
		c.observe(c.name, op, time.Since(start))
	}
}
