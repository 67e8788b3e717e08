package catchup

import (
	"github.com/0xPolygon/zkevm-sequencer-core/config/types"
)

// Config is the configuration of the state catchup
type Config struct {
	// Peers are the JSON-RPC URLs of the nodes serving state, tried in order
	Peers []string `mapstructure:"Peers"`
	// Retries is the number of retries of each source before moving on
	Retries uint64 `mapstructure:"Retries"`
	// RequestTimeout bounds every single request to a source
	RequestTimeout types.Duration `mapstructure:"RequestTimeout"`
	// RetryInterval is the initial wait between retries of the same source
	RetryInterval types.Duration `mapstructure:"RetryInterval"`
	// MaxAccountsPerRequest limits the accounts served in a single request
	MaxAccountsPerRequest int `mapstructure:"MaxAccountsPerRequest"`
	// Server exposes this node's state to peers
	Server ServerConfig `mapstructure:"Server"`
}

// ServerConfig is the configuration of the catchup JSON-RPC server
type ServerConfig struct {
	Enabled bool   `mapstructure:"Enabled"`
	Host    string `mapstructure:"Host"`
	Port    int    `mapstructure:"Port"`
}
