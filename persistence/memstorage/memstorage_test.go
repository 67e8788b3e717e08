package memstorage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/0xPolygon/zkevm-sequencer-core/persistence/storagetest"
	"github.com/0xPolygon/zkevm-sequencer-core/types"
	"github.com/stretchr/testify/require"
)

func TestMemStorage(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) types.Persistence {
		storage, err := NewMemStorage("")
		require.NoError(t, err)
		return storage
	})
}

func TestMemStorage_PersistenceFile(t *testing.T) {
	ctx := context.Background()
	file := filepath.Join(t.TempDir(), "consensus.json")

	storage, err := NewMemStorage(file)
	require.NoError(t, err)
	cfg := storagetest.NetworkConfig()
	require.NoError(t, storage.SaveConfig(ctx, cfg))
	require.NoError(t, storage.AppendDA(ctx, storagetest.DAProposal(2)))
	require.NoError(t, storage.AppendVID(ctx, storagetest.VIDShare(2)))
	require.NoError(t, storage.RecordAction(ctx, 2, types.ActionVote))
	require.NoError(t, storage.Close())

	_, err = os.Stat(file + ".tmp")
	require.ErrorIs(t, err, os.ErrNotExist)

	reloaded, err := NewMemStorage(file)
	require.NoError(t, err)

	loaded, err := reloaded.LoadConfig(ctx)
	require.NoError(t, err)
	require.Equal(t, cfg, *loaded)

	proposal, err := reloaded.LoadDAProposal(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, storagetest.DAProposal(2), *proposal)

	share, err := reloaded.LoadVIDShare(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, storagetest.VIDShare(2), *share)

	view, action, err := reloaded.LoadLatestAction(ctx)
	require.NoError(t, err)
	require.Equal(t, types.View(2), view)
	require.Equal(t, types.ActionVote, action)
}

func TestMemStorage_CorruptFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "consensus.json")
	require.NoError(t, os.WriteFile(file, []byte("{"), 0600))

	_, err := NewMemStorage(file)
	require.Error(t, err)
}
