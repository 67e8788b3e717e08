package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const networkJSON = `{
	"node_index": 1,
	"seed": "0x0102",
	"known_nodes": [
		{"stake_table_key": "0xaa01", "stake": 1},
		{"stake_table_key": "0xaa02", "stake": 1}
	],
	"da_committee_size": 2,
	"start_threshold": 2,
	"next_view_timeout": "10s",
	"round_start_delay": "1ms",
	"builder_timeout": "2s",
	"builder_url": "http://builder:31004",
	"state_peers": ["http://peer0:8770"],
	"chain_config": {
		"chain_id": "0x8a19",
		"max_block_size": 10240,
		"base_fee": "0x0",
		"fee_recipient": "0x0000000000000000000000000000000000000000"
	}
}`

func TestNetworkFileFetcher(t *testing.T) {
	path := filepath.Join(t.TempDir(), "network.json")
	require.NoError(t, os.WriteFile(path, []byte(networkJSON), 0600))

	cfg, err := NetworkFileFetcher(path)(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(1), cfg.NodeIndex)
	require.Len(t, cfg.KnownNodes, 2)
	require.Equal(t, 10*time.Second, cfg.NextViewTimeout.Duration)
	require.Equal(t, uint64(35353), cfg.ChainConfig.ChainID.Uint64())
	require.Equal(t, []string{"http://peer0:8770"}, cfg.StatePeers)
}

func TestNetworkFileFetcher_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NetworkFileFetcher("")(ctx)
	require.ErrorContains(t, err, "network-file")

	_, err = NetworkFileFetcher(filepath.Join(t.TempDir(), "absent.json"))(ctx)
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadNetworkConfigFromJSONString("{")
	require.Error(t, err)

	// node index outside of the known nodes
	_, err = LoadNetworkConfigFromJSONString(`{"node_index": 3, "known_nodes": [{"stake": 1}]}`)
	require.Error(t, err)
}
