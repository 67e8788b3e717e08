package node

import (
	"context"
	"fmt"

	"github.com/0xPolygon/zkevm-sequencer-core/catchup"
	"github.com/0xPolygon/zkevm-sequencer-core/header"
	"github.com/0xPolygon/zkevm-sequencer-core/log"
	"github.com/0xPolygon/zkevm-sequencer-core/state"
	"github.com/0xPolygon/zkevm-sequencer-core/types"
	"github.com/ethereum/go-ethereum/common"
)

// L1Tracker hands out the L1 view a new header is built against
type L1Tracker interface {
	Snapshot() (types.L1Snapshot, error)
}

// FixedL1 is an L1Tracker that never moves
type FixedL1 types.L1Snapshot

// Snapshot returns the fixed snapshot
func (f FixedL1) Snapshot() (types.L1Snapshot, error) {
	return types.L1Snapshot(f), nil
}

// NodeState is the per node context used by consensus to build and check
// blocks. It is not mutated after construction; the With* methods return
// modified copies.
type NodeState struct {
	nodeID       uint64
	chainConfig  types.ChainConfig
	l1           L1Tracker
	catchup      types.StateCatchup
	genesisState *state.ValidatedState
	l1Genesis    *types.L1BlockInfo
	builder      *header.Builder
	logger       *log.Logger
}

// NewNodeState creates the node state with an empty genesis ledger
func NewNodeState(nodeID uint64, chainConfig types.ChainConfig, l1 L1Tracker, catchup types.StateCatchup) (*NodeState, error) {
	genesis, err := state.Genesis(state.NewMemoryStore(), chainConfig, nil)
	if err != nil {
		return nil, err
	}
	return &NodeState{
		nodeID:       nodeID,
		chainConfig:  chainConfig,
		l1:           l1,
		catchup:      catchup,
		genesisState: genesis,
		builder:      header.NewBuilder(),
		logger:       log.WithFields("module", "node", "node_id", nodeID),
	}, nil
}

// Mock returns a node state for tests: node 0, default chain config, an L1
// that never moves and catchup that knows no state.
func Mock() *NodeState {
	s, err := NewNodeState(0, types.DefaultChainConfig(), FixedL1{}, catchup.NewMock(nil))
	if err != nil {
		panic(err)
	}
	return s
}

// WithL1 returns a copy using l1 as L1 tracker
func (s *NodeState) WithL1(l1 L1Tracker) *NodeState {
	cp := *s
	cp.l1 = l1
	return &cp
}

// WithGenesis returns a copy whose genesis ledger is genesis
func (s *NodeState) WithGenesis(genesis *state.ValidatedState) *NodeState {
	cp := *s
	cp.genesisState = genesis
	return &cp
}

// WithL1Genesis returns a copy whose genesis header references the L1 block
func (s *NodeState) WithL1Genesis(block *types.L1BlockInfo) *NodeState {
	cp := *s
	cp.l1Genesis = block
	return &cp
}

// WithBuilder returns a copy building headers with b
func (s *NodeState) WithBuilder(b *header.Builder) *NodeState {
	cp := *s
	cp.builder = b
	return &cp
}

// NodeID is the index of this node in the network
func (s *NodeState) NodeID() uint64 { return s.nodeID }

// ChainConfig returns the chain config of the network
func (s *NodeState) ChainConfig() types.ChainConfig { return s.chainConfig }

// GenesisState returns the fee ledger at height 0
func (s *NodeState) GenesisState() *state.ValidatedState { return s.genesisState }

// L1Genesis returns the L1 block referenced by the genesis header, if any
func (s *NodeState) L1Genesis() *types.L1BlockInfo { return s.l1Genesis }

// Catchup returns the source used for accounts missing locally
func (s *NodeState) Catchup() types.StateCatchup { return s.catchup }

// GenesisBlock returns the genesis header and its payload, which holds only
// the genesis transaction
func (s *NodeState) GenesisBlock() (*types.Header, types.Payload, error) {
	payload, nsTable, err := types.NewPayload([]types.Transaction{types.GenesisTransaction()})
	if err != nil {
		return nil, types.Payload{}, err
	}
	h := header.Genesis(s.chainConfig, s.genesisState, s.l1Genesis, payload.Commit(), common.Hash{}, nsTable)
	return h, payload, nil
}

// BuildHeader applies payload on top of parentState and builds the header
// of the resulting block at the current L1 view.
func (s *NodeState) BuildHeader(
	ctx context.Context,
	parent *types.Header,
	parentState *state.ValidatedState,
	payload types.Payload,
	nsTable types.NamespaceTable,
	builderCommitment common.Hash,
) (*types.Header, *state.ValidatedState, error) {
	if parent == nil {
		return nil, nil, fmt.Errorf("%w: missing parent header", types.ErrBlockBuilding)
	}
	if payload.Size() > s.chainConfig.MaxBlockSize {
		return nil, nil, fmt.Errorf("%w: payload of %d bytes exceeds max block size %d", types.ErrBlockBuilding, payload.Size(), s.chainConfig.MaxBlockSize)
	}
	txns, err := payload.Transactions(nsTable)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", types.ErrBlockBuilding, err)
	}
	if parentState.Commit() != parent.FeeMerkleRoot {
		return nil, nil, fmt.Errorf("%w: parent state %s does not match parent header fee root %s", types.ErrBlockBuilding, parentState.Commit(), parent.FeeMerkleRoot)
	}
	l1, err := s.l1.Snapshot()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", types.ErrBlockBuilding, err)
	}

	newState, err := parentState.ApplyTransactions(ctx, s.catchup, parent.Height, txns)
	if err != nil {
		return nil, nil, err
	}
	h, err := s.builder.Build(parent, newState.Commit(), l1, payload.Commit(), builderCommitment, nsTable, s.chainConfig)
	if err != nil {
		return nil, nil, err
	}
	s.logger.Debugf("built header at height %d with %d transactions", h.Height, len(txns))
	return h, newState, nil
}

// ValidateAndApply checks candidate against parent and returns the ledger
// after applying its payload. A nil parent validates candidate as genesis.
func (s *NodeState) ValidateAndApply(
	ctx context.Context,
	parent *types.Header,
	parentState *state.ValidatedState,
	candidate *types.Header,
	payload types.Payload,
) (*state.ValidatedState, error) {
	txns, err := payload.Transactions(candidate.NsTable)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrIncorrectParent, err)
	}
	if err := header.Validate(candidate, parent, txns); err != nil {
		return nil, err
	}

	if parent == nil {
		if candidate.ChainConfigCommitment != s.chainConfig.Commit() {
			return nil, fmt.Errorf("%w: genesis chain config %s, expected %s", types.ErrIncorrectParent, candidate.ChainConfigCommitment, s.chainConfig.Commit())
		}
		if candidate.FeeMerkleRoot != s.genesisState.Commit() {
			return nil, fmt.Errorf("%w: genesis fee root %s, expected %s", types.ErrIncorrectParent, candidate.FeeMerkleRoot, s.genesisState.Commit())
		}
		return s.genesisState, nil
	}

	if parentState.Commit() != parent.FeeMerkleRoot {
		return nil, fmt.Errorf("%w: parent state %s does not match parent header fee root %s", types.ErrIncorrectParent, parentState.Commit(), parent.FeeMerkleRoot)
	}
	newState, err := parentState.Apply(ctx, s.catchup, candidate, txns)
	if err != nil {
		return nil, err
	}
	if newState.Commit() != candidate.FeeMerkleRoot {
		return nil, fmt.Errorf("%w: fee root %s, computed %s", types.ErrIncorrectParent, candidate.FeeMerkleRoot, newState.Commit())
	}
	return newState, nil
}
