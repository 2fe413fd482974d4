package badger

import (
	"context"
	"testing"

	"github.com/poiesic/coursematch/core"
	"github.com/poiesic/coursematch/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpointRoundTrip(t *testing.T) {
	_, checkpoints, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer backend.Close()
	ctx := context.Background()

	_, err = checkpoints.LoadCheckpoint(ctx, "catalog.json")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, checkpoints.SaveCheckpoint(ctx, &core.Checkpoint{
		Source: "catalog.json",
		Digest: "abc123",
		Count:  5,
	}))

	got, err := checkpoints.LoadCheckpoint(ctx, "catalog.json")
	require.NoError(t, err)
	assert.Equal(t, "abc123", got.Digest)
	assert.Equal(t, 5, got.Count)
	assert.False(t, got.UpdatedAt.IsZero())

	assert.ErrorIs(t, checkpoints.SaveCheckpoint(ctx, nil), storage.ErrRecordRequired)
}
