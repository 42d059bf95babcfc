package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uta-tic/tutoring-api/internal/repository"
)

func TestSemesterEnsureIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSemesterRepository(newServiceStore(t))
	svc := NewSemesterService(repo, nil, nil)

	first, err := svc.Ensure(ctx, "Segundo Semestre", 2)
	require.NoError(t, err)

	// Case and spacing differences resolve to the same stored record.
	second, err := svc.Ensure(ctx, "segundo  semestre", 2)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSemesterEnsureCreatesDistinctLabels(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewSemesterRepository(newServiceStore(t))
	svc := NewSemesterService(repo, nil, nil)

	first, err := svc.Ensure(ctx, "Primer Semestre", 1)
	require.NoError(t, err)
	second, err := svc.Ensure(ctx, "Segundo Semestre", 2)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
