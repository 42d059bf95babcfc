package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type note struct {
	ID   string `json:"id"`
	Body string `json:"body"`
}

func (n note) Key() string { return n.ID }

// flakyMedium wraps another medium and fails writes on demand.
type flakyMedium struct {
	Medium
	failWrites bool
}

func (m *flakyMedium) Write(ctx context.Context, key string, data []byte) error {
	if m.failWrites {
		return errors.New("medium down")
	}
	return m.Medium.Write(ctx, key, data)
}

func newFileCollection(t *testing.T) (*Collection[note], *flakyMedium) {
	t.Helper()
	medium, err := NewFileMedium(t.TempDir())
	require.NoError(t, err)
	flaky := &flakyMedium{Medium: medium}
	return NewCollection[note]("notes", flaky, nil), flaky
}

func TestCollectionInsertAndGet(t *testing.T) {
	ctx := context.Background()
	c, _ := newFileCollection(t)

	require.NoError(t, c.Insert(ctx, note{ID: "a", Body: "first"}))
	require.NoError(t, c.Insert(ctx, note{ID: "b", Body: "second"}))

	got, found, err := c.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "first", got.Body)

	_, found, err = c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	all, err := c.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCollectionSurvivesReload(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	medium, err := NewFileMedium(dir)
	require.NoError(t, err)

	first := NewCollection[note]("notes", medium, nil)
	require.NoError(t, first.Insert(ctx, note{ID: "a", Body: "persisted"}))

	// A fresh collection over the same directory sees the flushed document.
	second := NewCollection[note]("notes", medium, nil)
	got, found, err := second.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "persisted", got.Body)
}

func TestCollectionInsertManyIsAtomic(t *testing.T) {
	ctx := context.Background()
	c, flaky := newFileCollection(t)

	require.NoError(t, c.Insert(ctx, note{ID: "keep"}))

	flaky.failWrites = true
	err := c.InsertMany(ctx, []note{{ID: "x"}, {ID: "y"}})
	require.Error(t, err)

	flaky.failWrites = false
	all, err := c.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "keep", all[0].ID)
}

func TestCollectionUpdate(t *testing.T) {
	ctx := context.Background()
	c, _ := newFileCollection(t)

	require.NoError(t, c.Insert(ctx, note{ID: "a", Body: "old"}))

	updated, found, err := c.Update(ctx, "a", func(n *note) { n.Body = "new" })
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "new", updated.Body)

	_, found, err = c.Update(ctx, "missing", func(n *note) { n.Body = "x" })
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCollectionUpdateKeepsOldStateOnWriteFailure(t *testing.T) {
	ctx := context.Background()
	c, flaky := newFileCollection(t)

	require.NoError(t, c.Insert(ctx, note{ID: "a", Body: "old"}))

	flaky.failWrites = true
	_, _, err := c.Update(ctx, "a", func(n *note) { n.Body = "new" })
	require.Error(t, err)

	flaky.failWrites = false
	got, found, err := c.Get(ctx, "a")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "old", got.Body)
}

func TestCollectionDeleteWhere(t *testing.T) {
	ctx := context.Background()
	c, _ := newFileCollection(t)

	require.NoError(t, c.InsertMany(ctx, []note{
		{ID: "a", Body: "drop"},
		{ID: "b", Body: "keep"},
		{ID: "c", Body: "drop"},
	}))

	removed, err := c.DeleteWhere(ctx, func(n note) bool { return n.Body == "drop" })
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	all, err := c.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "b", all[0].ID)

	removed, err = c.DeleteWhere(ctx, func(n note) bool { return false })
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestCollectionObserverSeesLoadAndWrite(t *testing.T) {
	ctx := context.Background()
	medium, err := NewFileMedium(t.TempDir())
	require.NoError(t, err)

	ops := make(map[string]int)
	c := NewCollection[note]("notes", medium, func(collection, op string, _ time.Duration) {
		ops[collection+"/"+op]++
	})

	require.NoError(t, c.Insert(ctx, note{ID: "a"}))
	assert.Equal(t, 1, ops["notes/load"])
	assert.Equal(t, 1, ops["notes/write"])
}
