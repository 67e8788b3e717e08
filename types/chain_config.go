package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/holiman/uint256"
)

const (
	// DefaultChainID used when the deployment does not override it
	DefaultChainID = 35353
	// DefaultMaxBlockSize in bytes of payload
	DefaultMaxBlockSize = 10240
)

// ChainConfig holds the static per-deployment parameters. It is set at
// genesis and never mutated afterwards.
type ChainConfig struct {
	ChainID      *uint256.Int   `json:"chain_id"`
	MaxBlockSize uint64         `json:"max_block_size"`
	BaseFee      *uint256.Int   `json:"base_fee"`
	FeeRecipient common.Address `json:"fee_recipient"`
}

// DefaultChainConfig returns the configuration used by local and test networks.
func DefaultChainConfig() ChainConfig {
	return ChainConfig{
		ChainID:      uint256.NewInt(DefaultChainID),
		MaxBlockSize: DefaultMaxBlockSize,
		BaseFee:      new(uint256.Int),
	}
}

type chainConfigRLP struct {
	ChainID      []byte
	MaxBlockSize uint64
	BaseFee      []byte
	FeeRecipient common.Address
}

// Commit returns the commitment embedded in every header of the chain.
func (c ChainConfig) Commit() common.Hash {
	enc, err := rlp.EncodeToBytes(chainConfigRLP{
		ChainID:      u256Bytes(c.ChainID),
		MaxBlockSize: c.MaxBlockSize,
		BaseFee:      u256Bytes(c.BaseFee),
		FeeRecipient: c.FeeRecipient,
	})
	if err != nil {
		// all fields are plain byte strings and integers
		panic(err)
	}
	return crypto.Keccak256Hash([]byte("CHAIN_CONFIG"), enc)
}

func u256Bytes(v *uint256.Int) []byte {
	if v == nil {
		return nil
	}
	return v.Bytes()
}
