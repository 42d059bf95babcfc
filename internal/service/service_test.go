package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/uta-tic/tutoring-api/internal/store"
)

// newServiceStore backs the collections with a throwaway directory so service
// tests can run against real repositories.
func newServiceStore(t *testing.T) *store.Store {
	t.Helper()
	medium, err := store.NewFileMedium(t.TempDir())
	require.NoError(t, err)
	return store.New(medium, nil)
}
