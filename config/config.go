package config

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"

	"github.com/0xPolygon/zkevm-sequencer-core/catchup"
	"github.com/0xPolygon/zkevm-sequencer-core/etherman"
	"github.com/0xPolygon/zkevm-sequencer-core/l1client"
	"github.com/0xPolygon/zkevm-sequencer-core/log"
	"github.com/0xPolygon/zkevm-sequencer-core/metrics"
	"github.com/0xPolygon/zkevm-sequencer-core/persistence"
	"github.com/0xPolygon/zkevm-sequencer-core/state"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

const (
	// FlagCfg is the flag for cfg
	FlagCfg = "cfg"
	// FlagNetworkFile is the flag for the network config file used when
	// joining a network for the first time
	FlagNetworkFile = "network-file"

	// EnvPrefix prefixes the environment variables overriding the config,
	// e.g. SEQUENCER_LOG_LEVEL
	EnvPrefix = "SEQUENCER"
)

// Config represents the configuration of the entire sequencer node
type Config struct {
	// Configure Log level for all the services, allow also to store the logs in a file
	Log log.Config `mapstructure:"Log"`
	// Genesis holds the chain config and the demo accounts funded at height 0
	Genesis Genesis `mapstructure:"Genesis"`
	// L1 is the connection to the L1 and the block tracker on top of it
	L1 L1 `mapstructure:"L1"`
	// Catchup configures how missing fee accounts are fetched and served
	Catchup catchup.Config `mapstructure:"Catchup"`
	// State configures the fee ledger store
	State state.Config `mapstructure:"State"`
	// Persistence selects the backend of the consensus storage
	Persistence persistence.Config `mapstructure:"Persistence"`
	// Metrics server
	Metrics metrics.Config `mapstructure:"Metrics"`
}

// L1 groups the L1 client and the block tracker settings
type L1 struct {
	l1client.Config `mapstructure:",squash"`
	Etherman        etherman.Config `mapstructure:"Etherman"`
}

// Default parses the default configuration values.
func Default() (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(bytes.NewBufferString(DefaultValues)); err != nil {
		return nil, err
	}
	var cfg Config
	if err := unmarshal(v, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load loads the configuration: defaults, then the file given by the cfg
// flag, then SEQUENCER_ prefixed environment variables.
func Load(ctx *cli.Context) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	if err := v.ReadConfig(bytes.NewBufferString(DefaultValues)); err != nil {
		return nil, err
	}

	configFilePath := ctx.String(FlagCfg)
	if configFilePath != "" {
		dirName, fileName := filepath.Split(configFilePath)

		fileExtension := strings.TrimPrefix(filepath.Ext(fileName), ".")
		fileNameWithoutExtension := strings.TrimSuffix(fileName, "."+fileExtension)

		v.AddConfigPath(dirName)
		v.SetConfigName(fileNameWithoutExtension)
		v.SetConfigType(fileExtension)
	}
	v.AutomaticEnv()
	replacer := strings.NewReplacer(".", "_")
	v.SetEnvKeyReplacer(replacer)
	v.SetEnvPrefix(EnvPrefix)

	if configFilePath != "" {
		err := v.MergeInConfig()
		if err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
			log.Infof("config file %s not found, using defaults", configFilePath)
		}
	}

	var cfg Config
	if err := unmarshal(v, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func unmarshal(v *viper.Viper, cfg *Config) error {
	return v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
}
