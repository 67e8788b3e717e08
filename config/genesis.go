package config

import (
	"github.com/0xPolygon/zkevm-sequencer-core/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Genesis contains the information to populate the chain at height 0
type Genesis struct {
	// ChainID of the sequenced chain
	ChainID uint64 `mapstructure:"ChainID"`
	// MaxBlockSize is the maximum payload size of a block in bytes
	MaxBlockSize uint64 `mapstructure:"MaxBlockSize"`
	// BaseFee charged per byte of payload
	BaseFee uint64 `mapstructure:"BaseFee"`
	// FeeRecipient receives the fees of the chain
	FeeRecipient common.Address `mapstructure:"FeeRecipient"`
	// PrefundedAccounts receive the maximum balance at genesis. Test and demo
	// networks only.
	PrefundedAccounts []common.Address `mapstructure:"PrefundedAccounts"`
}

// ChainConfig returns the chain config described by the genesis section
func (g Genesis) ChainConfig() types.ChainConfig {
	return types.ChainConfig{
		ChainID:      uint256.NewInt(g.ChainID),
		MaxBlockSize: g.MaxBlockSize,
		BaseFee:      uint256.NewInt(g.BaseFee),
		FeeRecipient: g.FeeRecipient,
	}
}
