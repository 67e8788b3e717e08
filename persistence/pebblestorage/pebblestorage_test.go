package pebblestorage

import (
	"context"
	"testing"

	"github.com/0xPolygon/zkevm-sequencer-core/persistence/storagetest"
	"github.com/0xPolygon/zkevm-sequencer-core/types"
	"github.com/stretchr/testify/require"
)

func TestPebbleStorage(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) types.Persistence {
		storage, err := NewStorage("")
		require.NoError(t, err)
		return storage
	})
}

func TestPebbleStorage_Reopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	storage, err := NewStorage(dir)
	require.NoError(t, err)
	require.NoError(t, storage.AppendDA(ctx, storagetest.DAProposal(8)))
	require.NoError(t, storage.RecordAction(ctx, 8, types.ActionPropose))
	require.NoError(t, storage.Close())

	storage, err = NewStorage(dir)
	require.NoError(t, err)
	defer storage.Close()

	proposal, err := storage.LoadDAProposal(ctx, 8)
	require.NoError(t, err)
	require.Equal(t, storagetest.DAProposal(8), *proposal)
	require.ErrorIs(t, storage.AppendDA(ctx, storagetest.DAProposal(8)), types.ErrAlreadyExists)

	view, action, err := storage.LoadLatestAction(ctx)
	require.NoError(t, err)
	require.Equal(t, types.View(8), view)
	require.Equal(t, types.ActionPropose, action)
}

func TestCodec(t *testing.T) {
	codec, err := NewCodec()
	require.NoError(t, err)
	defer codec.Close()

	cfg := storagetest.NetworkConfig()
	raw, err := codec.Marshal(cfg)
	require.NoError(t, err)

	var decoded types.NetworkConfig
	require.NoError(t, codec.Unmarshal(raw, &decoded))
	require.Equal(t, cfg, decoded)

	require.Error(t, codec.Unmarshal([]byte("not zstd"), &decoded))
}
