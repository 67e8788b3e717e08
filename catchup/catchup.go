package catchup

import (
	"context"
	"fmt"

	"github.com/0xPolygon/zkevm-sequencer-core/state"
	"github.com/0xPolygon/zkevm-sequencer-core/types"
	"github.com/ethereum/go-ethereum/common"
)

// NoOp never has any state
type NoOp struct{}

// Fetch always fails with ErrMerkleTree
func (NoOp) Fetch(_ context.Context, req types.FetchRequest) (*types.StateFragment, error) {
	return nil, fmt.Errorf("%w: no catchup source for %d accounts at height %d", types.ErrMerkleTree, len(req.Accounts), req.Height)
}

// LocalSource serves fragments from the history retained by a store
type LocalSource struct {
	store *state.Store
}

// NewLocalSource creates a local source on top of store's archive
func NewLocalSource(store *state.Store) *LocalSource {
	return &LocalSource{store: store}
}

// Fetch proves the requested accounts from the archive
func (l *LocalSource) Fetch(_ context.Context, req types.FetchRequest) (*types.StateFragment, error) {
	return l.store.ProveFromArchive(req.Height, req.Root, req.Accounts)
}

// Mock serves fragments of a fixed set of states, by height
type Mock struct {
	states map[uint64]*state.ValidatedState
}

// NewMock creates a catchup source answering from states
func NewMock(states map[uint64]*state.ValidatedState) *Mock {
	return &Mock{states: states}
}

// Fetch proves the requested accounts from the state at req.Height
func (m *Mock) Fetch(_ context.Context, req types.FetchRequest) (*types.StateFragment, error) {
	s, ok := m.states[req.Height]
	if !ok {
		return nil, fmt.Errorf("%w: no state at height %d", types.ErrMerkleTree, req.Height)
	}
	if s.Commit() != req.Root {
		return nil, fmt.Errorf("%w: state at height %d has root %s, requested %s", types.ErrMerkleTree, req.Height, s.Commit(), req.Root)
	}
	return s.Prove(req.Height, req.Accounts)
}

// verify checks that fragment answers req
func verify(req types.FetchRequest, fragment *types.StateFragment) error {
	if err := state.VerifyFragment(req.Root, fragment); err != nil {
		return err
	}
	proven := make(map[common.Address]struct{}, len(fragment.Accounts))
	for _, account := range fragment.Accounts {
		proven[account.Account] = struct{}{}
	}
	for _, account := range req.Accounts {
		if _, ok := proven[account]; !ok {
			return fmt.Errorf("%w: fragment doesn't prove %s", types.ErrMerkleTree, account)
		}
	}
	return nil
}
