package types

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	ethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestHeaderCommit(t *testing.T) {
	h := Header{
		Height:                3,
		Timestamp:             1000,
		L1Head:                12,
		PayloadCommitment:     common.HexToHash("0x1"),
		NsTable:               NamespaceTable{{Namespace: 1, Offset: 8}},
		FeeMerkleRoot:         common.HexToHash("0x2"),
		ChainConfigCommitment: DefaultChainConfig().Commit(),
	}
	base := h.Commit()
	require.Equal(t, base, h.Commit())

	withFinalized := h
	withFinalized.L1Finalized = &L1BlockInfo{Number: 10, Timestamp: uint256.NewInt(900)}
	require.NotEqual(t, base, withFinalized.Commit())

	otherRoot := h
	otherRoot.FeeMerkleRoot = common.HexToHash("0x3")
	require.NotEqual(t, base, otherRoot.Commit())
}

func TestHeaderJSON(t *testing.T) {
	h := Header{
		Height:      1,
		L1Finalized: &L1BlockInfo{Number: 5, Timestamp: uint256.NewInt(77), Hash: common.HexToHash("0xabc")},
		NsTable:     NamespaceTable{},
	}
	data, err := json.Marshal(&h)
	require.NoError(t, err)

	var decoded Header
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, h.Commit(), decoded.Commit())
}

func TestChainConfigCommit(t *testing.T) {
	cfg := DefaultChainConfig()
	require.Equal(t, uint64(DefaultChainID), cfg.ChainID.Uint64())
	require.Equal(t, uint64(DefaultMaxBlockSize), cfg.MaxBlockSize)
	require.True(t, cfg.BaseFee.IsZero())

	other := DefaultChainConfig()
	other.MaxBlockSize++
	require.NotEqual(t, cfg.Commit(), other.Commit())
	require.Equal(t, cfg.Commit(), DefaultChainConfig().Commit())
}

func TestL1BlockInfo(t *testing.T) {
	h := &ethTypes.Header{Number: big.NewInt(42), Time: 1234, Difficulty: big.NewInt(0)}
	info := L1BlockInfoFromHeader(h)
	require.Equal(t, uint64(42), info.Number)
	require.Equal(t, uint64(1234), info.Timestamp.Uint64())
	require.Equal(t, h.Hash(), info.Hash)

	older := L1BlockInfo{Number: 41}
	require.Equal(t, 1, info.Cmp(older))
	require.Equal(t, -1, older.Cmp(info))
	require.Equal(t, 0, info.Cmp(info))

	require.Equal(t, -1, CompareOptionalL1(nil, &older))
	require.Equal(t, 1, CompareOptionalL1(&older, nil))
	require.Equal(t, 0, CompareOptionalL1(nil, nil))
	require.True(t, L1BlockInfo{}.TimestampOrZero().IsZero())
}

func TestNetworkConfigValidate(t *testing.T) {
	cfg := NetworkConfig{}
	require.Error(t, cfg.Validate())

	cfg.KnownNodes = []PeerConfig{{Stake: 1}, {Stake: 1}}
	cfg.NodeIndex = 1
	cfg.DACommitteeSize = 2
	require.NoError(t, cfg.Validate())

	cfg.NodeIndex = 2
	require.Error(t, cfg.Validate())

	cfg.NodeIndex = 0
	cfg.DACommitteeSize = 3
	require.Error(t, cfg.Validate())
}

func TestActionString(t *testing.T) {
	require.Equal(t, "vote", ActionVote.String())
	require.Equal(t, "action(99)", Action(99).String())
	require.True(t, ActionPropose.IsVoteOrPropose())
	require.False(t, ActionDAVote.IsVoteOrPropose())
}
