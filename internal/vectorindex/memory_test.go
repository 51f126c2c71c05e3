package vectorindex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryQueryOrdersByCosine(t *testing.T) {
	ctx := context.Background()
	idx := NewMemory()
	require.NoError(t, idx.EnsureCollection(ctx, 3))

	require.NoError(t, idx.UpsertJobs(ctx, []JobPoint{
		{JobID: 1, Vector: []float32{1, 0, 0}},
		{JobID: 2, Vector: []float32{0.9, 0.1, 0}},
		{JobID: 3, Vector: []float32{0, 1, 0}},
	}))

	matches, err := idx.Query(ctx, []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	require.Len(t, matches, 3)

	assert.Equal(t, uint(1), matches[0].JobID)
	assert.Equal(t, uint(2), matches[1].JobID)
	assert.Equal(t, uint(3), matches[2].JobID)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-6)
	assert.InDelta(t, 0.0, matches[2].Score, 1e-6)
}

func TestMemoryQueryCapsAtTopK(t *testing.T) {
	ctx := context.Background()
	idx := NewMemory()
	require.NoError(t, idx.EnsureCollection(ctx, 2))

	for i := uint(1); i <= 5; i++ {
		require.NoError(t, idx.UpsertJobs(ctx, []JobPoint{{JobID: i, Vector: []float32{1, float32(i)}}}))
	}

	matches, err := idx.Query(ctx, []float32{1, 1}, 2)
	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestMemoryUpsertOverwrites(t *testing.T) {
	ctx := context.Background()
	idx := NewMemory()
	require.NoError(t, idx.EnsureCollection(ctx, 2))

	require.NoError(t, idx.UpsertJobs(ctx, []JobPoint{{JobID: 7, Vector: []float32{1, 0}, Location: "Berlin"}}))
	require.NoError(t, idx.UpsertJobs(ctx, []JobPoint{{JobID: 7, Vector: []float32{0, 1}, Location: "Munich"}}))
	assert.Equal(t, 1, idx.Len())

	matches, err := idx.Query(ctx, []float32{0, 1}, 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Munich", matches[0].Location)
	assert.InDelta(t, 1.0, matches[0].Score, 1e-6)
}

func TestMemoryDimensionChecks(t *testing.T) {
	ctx := context.Background()
	idx := NewMemory()

	assert.ErrorIs(t, idx.EnsureCollection(ctx, 0), ErrInvalidDimension)

	require.NoError(t, idx.EnsureCollection(ctx, 3))
	err := idx.UpsertJobs(ctx, []JobPoint{{JobID: 1, Vector: []float32{1, 0}}})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	idx := NewMemory()
	require.NoError(t, idx.EnsureCollection(ctx, 2))
	require.NoError(t, idx.UpsertJobs(ctx, []JobPoint{{JobID: 1, Vector: []float32{1, 0}}}))

	require.NoError(t, idx.DeleteJob(ctx, 1))
	require.NoError(t, idx.DeleteJob(ctx, 99))
	assert.Equal(t, 0, idx.Len())
}
