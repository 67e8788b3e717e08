package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// View is the consensus round number.
type View uint64

// Action is a step taken by this node in a view.
type Action int

const (
	// ActionVote on a quorum proposal
	ActionVote Action = iota
	// ActionPropose a quorum proposal
	ActionPropose
	// ActionDAPropose a data availability proposal
	ActionDAPropose
	// ActionDAVote on a data availability proposal
	ActionDAVote
	// ActionViewSyncVote pre-commit vote of view sync
	ActionViewSyncVote
	// ActionViewSyncCommit commit vote of view sync
	ActionViewSyncCommit
	// ActionViewSyncFinalize finalize vote of view sync
	ActionViewSyncFinalize
	// ActionUpgradeVote on an upgrade proposal
	ActionUpgradeVote
)

var actionNames = map[Action]string{
	ActionVote:             "vote",
	ActionPropose:          "propose",
	ActionDAPropose:        "da_propose",
	ActionDAVote:           "da_vote",
	ActionViewSyncVote:     "view_sync_vote",
	ActionViewSyncCommit:   "view_sync_commit",
	ActionViewSyncFinalize: "view_sync_finalize",
	ActionUpgradeVote:      "upgrade_vote",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// IsVoteOrPropose reports whether the action is one the node must remember
// to avoid double voting after a restart.
func (a Action) IsVoteOrPropose() bool {
	return a == ActionVote || a == ActionPropose
}

// DAProposal carries the encoded transactions of a view.
type DAProposal struct {
	View                View           `json:"view_number"`
	EncodedTransactions hexutil.Bytes  `json:"encoded_transactions"`
	Metadata            NamespaceTable `json:"metadata"`
}

// VidDisperseShare is the erasure coded share of a payload sent to one node.
type VidDisperseShare struct {
	View              View          `json:"view_number"`
	PayloadCommitment common.Hash   `json:"payload_commitment"`
	Recipient         hexutil.Bytes `json:"recipient_key"`
	Share             hexutil.Bytes `json:"share"`
	Common            hexutil.Bytes `json:"common"`
}

// Proposal is signed consensus data.
type Proposal[T any] struct {
	Data      T             `json:"data"`
	Signature hexutil.Bytes `json:"signature"`
}

// QuorumCertificate aggregates the votes for a leaf.
type QuorumCertificate struct {
	View           View          `json:"view_number"`
	LeafCommitment common.Hash   `json:"leaf_commitment"`
	Signatures     hexutil.Bytes `json:"signatures,omitempty"`
}

// Leaf is a decided block together with its justification.
type Leaf struct {
	View             View              `json:"view_number"`
	Justify          QuorumCertificate `json:"justify_qc"`
	ParentCommitment common.Hash       `json:"parent_commitment"`
	Header           Header            `json:"block_header"`
}
