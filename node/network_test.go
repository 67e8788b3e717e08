package node

import (
	"context"
	"errors"
	"testing"

	"github.com/0xPolygon/zkevm-sequencer-core/persistence"
	"github.com/0xPolygon/zkevm-sequencer-core/persistence/storagetest"
	"github.com/0xPolygon/zkevm-sequencer-core/types"
	"github.com/stretchr/testify/require"
)

func TestInitNetworkConfig(t *testing.T) {
	ctx := context.Background()
	store, err := persistence.Open(persistence.Config{Type: persistence.TypeMemory})
	require.NoError(t, err)
	defer store.Close(ctx)

	expected := storagetest.NetworkConfig()
	fetches := 0
	fetch := func(context.Context) (*types.NetworkConfig, error) {
		fetches++
		cfg := expected
		return &cfg, nil
	}

	cfg, rejoined, err := InitNetworkConfig(ctx, store, fetch)
	require.NoError(t, err)
	require.False(t, rejoined)
	require.Equal(t, expected, *cfg)

	// restart: the stored config wins and nothing is fetched
	cfg, rejoined, err = InitNetworkConfig(ctx, store, fetch)
	require.NoError(t, err)
	require.True(t, rejoined)
	require.Equal(t, expected, *cfg)
	require.Equal(t, 1, fetches)
}

func TestInitNetworkConfig_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("fetch fails", func(t *testing.T) {
		store, err := persistence.Open(persistence.Config{Type: persistence.TypeMemory})
		require.NoError(t, err)
		unreachable := errors.New("orchestrator unreachable")

		_, _, err = InitNetworkConfig(ctx, store, func(context.Context) (*types.NetworkConfig, error) {
			return nil, unreachable
		})
		require.ErrorIs(t, err, unreachable)
	})

	t.Run("invalid config is not saved", func(t *testing.T) {
		store, err := persistence.Open(persistence.Config{Type: persistence.TypeMemory})
		require.NoError(t, err)

		_, _, err = InitNetworkConfig(ctx, store, func(context.Context) (*types.NetworkConfig, error) {
			cfg := storagetest.NetworkConfig()
			cfg.NodeIndex = 10
			return &cfg, nil
		})
		require.Error(t, err)

		saved, err := store.LoadConfig(ctx)
		require.NoError(t, err)
		require.Nil(t, saved)
	})
}
