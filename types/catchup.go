package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// FetchRequest asks for the leaves of some accounts in the fee ledger whose
// root is Root, as of block Height.
type FetchRequest struct {
	Height   uint64           `json:"height"`
	Root     common.Hash      `json:"root"`
	Accounts []common.Address `json:"accounts"`
}

// AccountProof is the Merkle path of one account, from the root down to its
// leaf or to the node proving its absence.
type AccountProof struct {
	Account common.Address  `json:"account"`
	Proof   []hexutil.Bytes `json:"proof"`
}

// StateFragment is a self describing, verifiable piece of the fee ledger.
type StateFragment struct {
	Height   uint64         `json:"height"`
	Root     common.Hash    `json:"root"`
	Accounts []AccountProof `json:"accounts"`
}
