package l1client

import (
	"github.com/0xPolygon/zkevm-sequencer-core/config/types"
)

// Config is the configuration of the L1 block tracker
type Config struct {
	// PollInterval is the time between two successful polls of the L1
	PollInterval types.Duration `mapstructure:"PollInterval"`
	// RequestTimeout bounds each L1 request
	RequestTimeout types.Duration `mapstructure:"RequestTimeout"`
	// MaxBackoff caps the wait between retries after failed polls
	MaxBackoff types.Duration `mapstructure:"MaxBackoff"`
	// BlockRetries is the number of retries of a single block lookup before
	// reporting the L1 as unavailable
	BlockRetries uint64 `mapstructure:"BlockRetries"`
	// CacheSize is the number of recently seen L1 blocks kept in memory
	CacheSize int `mapstructure:"CacheSize"`
	// FinalizedBlock is the L1 block used as L1 genesis of the chain, if any
	FinalizedBlock *uint64 `mapstructure:"FinalizedBlock"`
}
