package node

import (
	"context"
	"fmt"

	"github.com/0xPolygon/zkevm-sequencer-core/log"
	"github.com/0xPolygon/zkevm-sequencer-core/types"
)

// ConfigStore persists the network config
type ConfigStore interface {
	// LoadConfig returns nil if no config was saved
	LoadConfig(ctx context.Context) (*types.NetworkConfig, error)
	SaveConfig(ctx context.Context, cfg types.NetworkConfig) error
}

// ConfigFetcher obtains the network config of a network being joined
type ConfigFetcher func(ctx context.Context) (*types.NetworkConfig, error)

// InitNetworkConfig returns the stored network config, so a restarted node
// rejoins the network it was part of. Otherwise the config is fetched once,
// validated and saved before it is returned. rejoined reports which path
// was taken.
func InitNetworkConfig(ctx context.Context, store ConfigStore, fetch ConfigFetcher) (cfg *types.NetworkConfig, rejoined bool, err error) {
	cfg, err = store.LoadConfig(ctx)
	if err != nil {
		return nil, false, err
	}
	if cfg != nil {
		log.Infof("loaded network config from storage, rejoining existing network as node %d", cfg.NodeIndex)
		return cfg, true, nil
	}

	log.Info("fetching network config")
	cfg, err = fetch(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to fetch network config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, false, err
	}
	log.Infof("loaded network config, node %d of %d", cfg.NodeIndex, len(cfg.KnownNodes))
	if err := store.SaveConfig(ctx, *cfg); err != nil {
		return nil, false, err
	}
	return cfg, false, nil
}
