package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

// Header is the sequencer block header agreed on by consensus.
type Header struct {
	Height                uint64         `json:"height"`
	Timestamp             uint64         `json:"timestamp"`
	L1Head                uint64         `json:"l1_head"`
	L1Finalized           *L1BlockInfo   `json:"l1_finalized,omitempty"`
	PayloadCommitment     common.Hash    `json:"payload_commitment"`
	BuilderCommitment     common.Hash    `json:"builder_commitment"`
	NsTable               NamespaceTable `json:"ns_table"`
	FeeMerkleRoot         common.Hash    `json:"fee_merkle_tree_root"`
	ChainConfigCommitment common.Hash    `json:"chain_config"`
}

type headerRLP struct {
	Height                uint64
	Timestamp             uint64
	L1Head                uint64
	HasFinalized          bool
	FinalizedNumber       uint64
	FinalizedTimestamp    []byte
	FinalizedHash         common.Hash
	PayloadCommitment     common.Hash
	BuilderCommitment     common.Hash
	NsTable               []byte
	FeeMerkleRoot         common.Hash
	ChainConfigCommitment common.Hash
}

// Commit returns the header commitment, used as parent reference by leaves.
func (h *Header) Commit() common.Hash {
	enc := headerRLP{
		Height:                h.Height,
		Timestamp:             h.Timestamp,
		L1Head:                h.L1Head,
		PayloadCommitment:     h.PayloadCommitment,
		BuilderCommitment:     h.BuilderCommitment,
		NsTable:               h.NsTable.Encode(),
		FeeMerkleRoot:         h.FeeMerkleRoot,
		ChainConfigCommitment: h.ChainConfigCommitment,
	}
	if h.L1Finalized != nil {
		enc.HasFinalized = true
		enc.FinalizedNumber = h.L1Finalized.Number
		enc.FinalizedTimestamp = u256Bytes(h.L1Finalized.Timestamp)
		enc.FinalizedHash = h.L1Finalized.Hash
	}
	data, err := rlp.EncodeToBytes(&enc)
	if err != nil {
		panic(err)
	}
	return crypto.Keccak256Hash([]byte("BLOCK"), data)
}
