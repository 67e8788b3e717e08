package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	ethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
)

// L1BlockInfo identifies an L1 block referenced by sequencer headers.
type L1BlockInfo struct {
	Number    uint64       `json:"number"`
	Timestamp *uint256.Int `json:"timestamp"`
	Hash      common.Hash  `json:"hash"`
}

// L1BlockInfoFromHeader extracts the block info from an L1 header.
func L1BlockInfoFromHeader(h *ethTypes.Header) L1BlockInfo {
	return L1BlockInfo{
		Number:    h.Number.Uint64(),
		Timestamp: uint256.NewInt(h.Time),
		Hash:      h.Hash(),
	}
}

// Cmp orders blocks by number.
func (b L1BlockInfo) Cmp(other L1BlockInfo) int {
	switch {
	case b.Number < other.Number:
		return -1
	case b.Number > other.Number:
		return 1
	default:
		return 0
	}
}

// TimestampOrZero never returns nil.
func (b L1BlockInfo) TimestampOrZero() *uint256.Int {
	if b.Timestamp == nil {
		return new(uint256.Int)
	}
	return b.Timestamp
}

func (b L1BlockInfo) String() string {
	return fmt.Sprintf("L1Block(%d, %s)", b.Number, b.Hash.TerminalString())
}

// CompareOptionalL1 orders optional finalized blocks: an absent block sorts
// before any present one.
func CompareOptionalL1(a, b *L1BlockInfo) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return a.Cmp(*b)
	}
}

// L1Snapshot is the view of the L1 used to build a header.
type L1Snapshot struct {
	// Head is the number of the latest L1 block seen.
	Head uint64
	// Finalized is the latest finalized L1 block, if the L1 has finalized any.
	Finalized *L1BlockInfo
}
