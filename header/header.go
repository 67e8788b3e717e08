package header

import (
	"fmt"
	"time"

	"github.com/0xPolygon/zkevm-sequencer-core/log"
	"github.com/0xPolygon/zkevm-sequencer-core/state"
	"github.com/0xPolygon/zkevm-sequencer-core/types"
	"github.com/ethereum/go-ethereum/common"
)

// Genesis returns the header of the block at height 0
func Genesis(
	chainConfig types.ChainConfig,
	genesisState *state.ValidatedState,
	l1Genesis *types.L1BlockInfo,
	payloadCommitment common.Hash,
	builderCommitment common.Hash,
	nsTable types.NamespaceTable,
) *types.Header {
	h := &types.Header{
		Height:                0,
		PayloadCommitment:     payloadCommitment,
		BuilderCommitment:     builderCommitment,
		NsTable:               nsTable,
		FeeMerkleRoot:         genesisState.Commit(),
		ChainConfigCommitment: chainConfig.Commit(),
	}
	if l1Genesis != nil {
		finalized := *l1Genesis
		h.Timestamp = l1Genesis.TimestampOrZero().Uint64()
		h.L1Head = l1Genesis.Number
		h.L1Finalized = &finalized
	}
	return h
}

// Builder derives new headers from their parent
type Builder struct {
	// Clock returns the current time, time.Now when nil
	Clock  func() time.Time
	logger *log.Logger
}

// NewBuilder creates a builder using the wall clock
func NewBuilder() *Builder {
	return &Builder{
		Clock:  time.Now,
		logger: log.WithFields("module", "header"),
	}
}

func (b *Builder) now() uint64 {
	clock := b.Clock
	if clock == nil {
		clock = time.Now
	}
	return uint64(clock().Unix())
}

func (b *Builder) warnf(template string, args ...interface{}) {
	logger := b.logger
	if logger == nil {
		logger = log.WithFields("module", "header")
	}
	logger.Warnf(template, args...)
}

// Build returns the child of parent. The timestamp and L1 references never
// go below the parent's, and the timestamp is never behind the finalized L1
// block it references.
func (b *Builder) Build(
	parent *types.Header,
	newStateCommitment common.Hash,
	l1 types.L1Snapshot,
	payloadCommitment common.Hash,
	builderCommitment common.Hash,
	nsTable types.NamespaceTable,
	chainConfig types.ChainConfig,
) (*types.Header, error) {
	if parent == nil {
		return nil, fmt.Errorf("%w: missing parent header", types.ErrBlockBuilding)
	}

	timestamp := b.now()
	if timestamp < parent.Timestamp {
		b.warnf("clock %d is behind parent timestamp %d", timestamp, parent.Timestamp)
		timestamp = parent.Timestamp
	}

	l1Head := l1.Head
	if l1Head < parent.L1Head {
		b.warnf("L1 head %d is behind parent L1 head %d", l1Head, parent.L1Head)
		l1Head = parent.L1Head
	}

	finalized := l1.Finalized
	if types.CompareOptionalL1(finalized, parent.L1Finalized) < 0 {
		b.warnf("L1 finalized block %v is behind parent L1 finalized block %v", finalized, parent.L1Finalized)
		finalized = parent.L1Finalized
	}
	if finalized != nil {
		copied := *finalized
		finalized = &copied
		if finalized.Number > l1Head {
			b.warnf("L1 finalized block %d is ahead of L1 head %d", finalized.Number, l1Head)
			l1Head = finalized.Number
		}
		if l1Time := l1Timestamp(finalized); timestamp < l1Time {
			b.warnf("timestamp %d is behind L1 finalized block timestamp %d", timestamp, l1Time)
			timestamp = l1Time
		}
	}

	return &types.Header{
		Height:                parent.Height + 1,
		Timestamp:             timestamp,
		L1Head:                l1Head,
		L1Finalized:           finalized,
		PayloadCommitment:     payloadCommitment,
		BuilderCommitment:     builderCommitment,
		NsTable:               nsTable,
		FeeMerkleRoot:         newStateCommitment,
		ChainConfigCommitment: chainConfig.Commit(),
	}, nil
}

func l1Timestamp(b *types.L1BlockInfo) uint64 {
	ts := b.TimestampOrZero()
	if !ts.IsUint64() {
		return ^uint64(0)
	}
	return ts.Uint64()
}

// Validate checks candidate against its parent and the transactions of its
// payload. It returns the first violated rule.
func Validate(candidate, parent *types.Header, txns []types.Transaction) error {
	if candidate.Height == 0 {
		return validateGenesis(candidate, parent, txns)
	}

	if parent == nil {
		return fmt.Errorf("%w: no parent for height %d", types.ErrIncorrectParent, candidate.Height)
	}
	for _, tx := range txns {
		if tx.InGenesisNamespace() {
			return fmt.Errorf("%w: at height %d", types.ErrUnexpectedGenesis, candidate.Height)
		}
	}
	if candidate.Height != parent.Height+1 {
		return fmt.Errorf("%w: height %d, parent height %d", types.ErrIncorrectView, candidate.Height, parent.Height)
	}
	if candidate.Timestamp < parent.Timestamp {
		return fmt.Errorf("%w: timestamp %d, parent timestamp %d", types.ErrIncorrectView, candidate.Timestamp, parent.Timestamp)
	}
	if candidate.L1Head < parent.L1Head {
		return fmt.Errorf("%w: L1 head %d, parent L1 head %d", types.ErrIncorrectView, candidate.L1Head, parent.L1Head)
	}
	if types.CompareOptionalL1(candidate.L1Finalized, parent.L1Finalized) < 0 {
		return fmt.Errorf("%w: L1 finalized %v, parent L1 finalized %v", types.ErrIncorrectView, candidate.L1Finalized, parent.L1Finalized)
	}
	if candidate.L1Finalized != nil && candidate.Timestamp < l1Timestamp(candidate.L1Finalized) {
		return fmt.Errorf("%w: timestamp %d behind L1 finalized block timestamp", types.ErrIncorrectView, candidate.Timestamp)
	}
	if candidate.ChainConfigCommitment != parent.ChainConfigCommitment {
		return fmt.Errorf("%w: chain config %s, parent chain config %s", types.ErrIncorrectParent, candidate.ChainConfigCommitment, parent.ChainConfigCommitment)
	}
	return validatePayload(candidate, txns)
}

func validateGenesis(candidate, parent *types.Header, txns []types.Transaction) error {
	if parent != nil {
		return fmt.Errorf("%w: genesis with parent at height %d", types.ErrIncorrectView, parent.Height)
	}
	if len(txns) != 1 {
		return fmt.Errorf("%w: %d transactions", types.ErrGenesisWrongSize, len(txns))
	}
	if !txns[0].IsGenesis() {
		return types.ErrMissingGenesis
	}
	return validatePayload(candidate, txns)
}

func validatePayload(candidate *types.Header, txns []types.Transaction) error {
	payload, nsTable, err := types.NewPayload(txns)
	if err != nil {
		return fmt.Errorf("%w: %w", types.ErrIncorrectParent, err)
	}
	if payload.Commit() != candidate.PayloadCommitment {
		return fmt.Errorf("%w: payload commitment mismatch", types.ErrIncorrectParent)
	}
	if !nsTable.Equal(candidate.NsTable) {
		return fmt.Errorf("%w: namespace table mismatch", types.ErrIncorrectParent)
	}
	return nil
}
