package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/0xPolygon/zkevm-sequencer-core/log"
	"github.com/0xPolygon/zkevm-sequencer-core/types"
)

// LoadNetworkFileAsString loads the network config file as a string
func LoadNetworkFileAsString(cfgPath string) (string, error) {
	if cfgPath == "" {
		return "", errors.New("network config file not provided. Please use the network-file flag")
	}
	f, err := os.Open(cfgPath) //nolint:gosec
	if err != nil {
		return "", err
	}
	defer func() {
		err := f.Close()
		if err != nil {
			log.Error(err)
		}
	}()

	b, err := io.ReadAll(f)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// LoadNetworkConfigFromJSONString parses and validates a network config
func LoadNetworkConfigFromJSONString(jsonStr string) (*types.NetworkConfig, error) {
	var cfg types.NetworkConfig
	if err := json.Unmarshal([]byte(jsonStr), &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode network config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NetworkFileFetcher returns a fetcher reading the network config from
// cfgPath. The file is only read when the fetcher is called, so a node that
// rejoins from its stored config does not need it.
func NetworkFileFetcher(cfgPath string) func(ctx context.Context) (*types.NetworkConfig, error) {
	return func(context.Context) (*types.NetworkConfig, error) {
		networkJSON, err := LoadNetworkFileAsString(cfgPath)
		if err != nil {
			return nil, err
		}
		return LoadNetworkConfigFromJSONString(networkJSON)
	}
}
