package types

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"
)

// EthermanInterface is the read only view of the L1 used by the sequencer.
type EthermanInterface interface {
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	LatestHeader(ctx context.Context) (*types.Header, error)
	// FinalizedHeader returns ErrNotFound while the L1 has not finalized any block
	FinalizedHeader(ctx context.Context) (*types.Header, error)
}

// StateCatchup retrieves fee ledger fragments the node doesn't hold locally.
type StateCatchup interface {
	Fetch(ctx context.Context, req FetchRequest) (*StateFragment, error)
}

// Persistence is the durable backend behind the storage adapter. It is not
// required to be safe for concurrent use.
type Persistence interface {
	// LoadConfig returns ErrNotFound if no config was saved yet
	LoadConfig(ctx context.Context) (*NetworkConfig, error)
	SaveConfig(ctx context.Context, cfg NetworkConfig) error
	// AppendDA returns ErrAlreadyExists if a proposal for the view is stored
	AppendDA(ctx context.Context, proposal Proposal[DAProposal]) error
	// AppendVID returns ErrAlreadyExists if a share for the view is stored
	AppendVID(ctx context.Context, share Proposal[VidDisperseShare]) error
	// RecordAction keeps the highest view for which a vote or proposal was made
	RecordAction(ctx context.Context, view View, action Action) error
	LoadDAProposal(ctx context.Context, view View) (*Proposal[DAProposal], error)
	LoadVIDShare(ctx context.Context, view View) (*Proposal[VidDisperseShare], error)
	LoadLatestAction(ctx context.Context) (View, Action, error)
	Close() error
}
