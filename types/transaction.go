package types

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
)

// NamespaceID identifies the rollup a transaction belongs to.
type NamespaceID uint64

const (
	// GenesisNamespace is reserved for the genesis transaction
	GenesisNamespace NamespaceID = 0
	// FeeNamespace is reserved for fee ledger transfers
	FeeNamespace NamespaceID = 1
)

var genesisMarker = []byte("genesis")

// ErrNotFeeTransfer is returned when decoding a transfer from a transaction
// that does not belong to the fee namespace.
var ErrNotFeeTransfer = errors.New("transaction is not a fee transfer")

// Transaction is an opaque payload tagged with its namespace.
type Transaction struct {
	Namespace NamespaceID   `json:"namespace"`
	Payload   hexutil.Bytes `json:"payload"`
}

// NewTransaction builds a transaction for the given namespace.
func NewTransaction(ns NamespaceID, payload []byte) Transaction {
	return Transaction{Namespace: ns, Payload: payload}
}

// GenesisTransaction returns the transaction that must be the only content of
// the block at height 0.
func GenesisTransaction() Transaction {
	return Transaction{Namespace: GenesisNamespace, Payload: genesisMarker}
}

// IsGenesis reports whether tx is the genesis transaction.
func (tx Transaction) IsGenesis() bool {
	return tx.Namespace == GenesisNamespace && bytes.Equal(tx.Payload, genesisMarker)
}

// InGenesisNamespace reports whether tx uses the namespace reserved for genesis.
func (tx Transaction) InGenesisNamespace() bool {
	return tx.Namespace == GenesisNamespace
}

// Commit returns the hash identifying the transaction.
func (tx Transaction) Commit() common.Hash {
	var ns [8]byte
	binary.BigEndian.PutUint64(ns[:], uint64(tx.Namespace))
	return crypto.Keccak256Hash(ns[:], tx.Payload)
}

// FeeTransfer moves an amount between two fee accounts.
type FeeTransfer struct {
	From   common.Address
	To     common.Address
	Amount *big.Int
}

// NewFeeTransaction encodes a transfer into a transaction of the fee namespace.
func NewFeeTransaction(from, to common.Address, amount *big.Int) (Transaction, error) {
	if amount == nil || amount.Sign() < 0 {
		return Transaction{}, fmt.Errorf("invalid fee amount %v", amount)
	}
	enc, err := rlp.EncodeToBytes(&FeeTransfer{From: from, To: to, Amount: amount})
	if err != nil {
		return Transaction{}, err
	}
	return Transaction{Namespace: FeeNamespace, Payload: enc}, nil
}

// FeeTransfer decodes the transfer carried by tx.
func (tx Transaction) FeeTransfer() (*FeeTransfer, error) {
	if tx.Namespace != FeeNamespace {
		return nil, ErrNotFeeTransfer
	}
	var transfer FeeTransfer
	if err := rlp.DecodeBytes(tx.Payload, &transfer); err != nil {
		return nil, fmt.Errorf("decoding fee transfer: %w", err)
	}
	if transfer.Amount == nil {
		transfer.Amount = new(big.Int)
	}
	return &transfer, nil
}
