package repository

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/uta-tic/tutoring-api/internal/store"
)

// newTestStore backs the collections with a throwaway directory.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	medium, err := store.NewFileMedium(t.TempDir())
	require.NoError(t, err)
	return store.New(medium, nil)
}
