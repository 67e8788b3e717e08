// Package storagetest holds the behaviour every persistence backend must share.
package storagetest

import (
	"context"
	"testing"
	"time"

	configTypes "github.com/0xPolygon/zkevm-sequencer-core/config/types"
	"github.com/0xPolygon/zkevm-sequencer-core/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

// NetworkConfig returns a config with every field populated.
func NetworkConfig() types.NetworkConfig {
	finalized := uint64(19_000_000)
	return types.NetworkConfig{
		NodeIndex: 1,
		Seed:      common.FromHex("0x0102030405"),
		KnownNodes: []types.PeerConfig{
			{StakeKey: common.FromHex("0xaa01"), Stake: 1},
			{StakeKey: common.FromHex("0xaa02"), Stake: 2},
		},
		DACommitteeSize: 2,
		StartThreshold:  2,
		NextViewTimeout: configTypes.NewDuration(10 * time.Second),
		RoundStartDelay: configTypes.NewDuration(time.Millisecond),
		BuilderTimeout:  configTypes.NewDuration(2 * time.Second),
		BuilderURL:      "http://builder:31004",
		StatePeers:      []string{"http://peer0:8770", "http://peer1:8770"},
		ChainConfig: types.ChainConfig{
			ChainID:      uint256.NewInt(types.DefaultChainID),
			MaxBlockSize: types.DefaultMaxBlockSize,
			BaseFee:      uint256.NewInt(7),
			FeeRecipient: common.HexToAddress("0x00000000000000000000000000000000000000fe"),
		},
		L1FinalizedBlock: &finalized,
	}
}

// DAProposal returns a signed DA proposal for view.
func DAProposal(view types.View) types.Proposal[types.DAProposal] {
	return types.Proposal[types.DAProposal]{
		Data: types.DAProposal{
			View:                view,
			EncodedTransactions: common.FromHex("0x00000001deadbeef"),
			Metadata:            types.NamespaceTable{{Namespace: 1, Offset: 8}},
		},
		Signature: common.FromHex("0x5151"),
	}
}

// VIDShare returns a signed VID share for view.
func VIDShare(view types.View) types.Proposal[types.VidDisperseShare] {
	return types.Proposal[types.VidDisperseShare]{
		Data: types.VidDisperseShare{
			View:              view,
			PayloadCommitment: common.HexToHash("0xabcdef"),
			Recipient:         common.FromHex("0xaa01"),
			Share:             common.FromHex("0x0a0b0c"),
			Common:            common.FromHex("0x0d0e"),
		},
		Signature: common.FromHex("0x5252"),
	}
}

// Run exercises a backend returned by open. Every call to open must return
// an empty backend.
func Run(t *testing.T, open func(t *testing.T) types.Persistence) {
	t.Helper()
	ctx := context.Background()

	t.Run("config", func(t *testing.T) {
		s := open(t)
		defer s.Close()

		_, err := s.LoadConfig(ctx)
		require.ErrorIs(t, err, types.ErrNotFound)

		cfg := NetworkConfig()
		require.NoError(t, s.SaveConfig(ctx, cfg))
		loaded, err := s.LoadConfig(ctx)
		require.NoError(t, err)
		require.Equal(t, cfg, *loaded)

		cfg.NodeIndex = 0
		cfg.BuilderURL = "http://other-builder:31004"
		require.NoError(t, s.SaveConfig(ctx, cfg))
		loaded, err = s.LoadConfig(ctx)
		require.NoError(t, err)
		require.Equal(t, cfg, *loaded)
	})

	t.Run("da proposals", func(t *testing.T) {
		s := open(t)
		defer s.Close()

		tests := []struct {
			name        string
			proposal    types.Proposal[types.DAProposal]
			expectedErr error
		}{
			{name: "first view", proposal: DAProposal(1)},
			{name: "view zero", proposal: DAProposal(0)},
			{name: "duplicate view", proposal: DAProposal(1), expectedErr: types.ErrAlreadyExists},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				err := s.AppendDA(ctx, tc.proposal)
				if tc.expectedErr != nil {
					require.ErrorIs(t, err, tc.expectedErr)
					return
				}
				require.NoError(t, err)
				loaded, err := s.LoadDAProposal(ctx, tc.proposal.Data.View)
				require.NoError(t, err)
				require.Equal(t, tc.proposal, *loaded)
			})
		}

		_, err := s.LoadDAProposal(ctx, 42)
		require.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("vid shares", func(t *testing.T) {
		s := open(t)
		defer s.Close()

		share := VIDShare(3)
		require.NoError(t, s.AppendVID(ctx, share))
		require.ErrorIs(t, s.AppendVID(ctx, VIDShare(3)), types.ErrAlreadyExists)

		loaded, err := s.LoadVIDShare(ctx, 3)
		require.NoError(t, err)
		require.Equal(t, share, *loaded)

		_, err = s.LoadVIDShare(ctx, 4)
		require.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("latest action", func(t *testing.T) {
		s := open(t)
		defer s.Close()

		_, _, err := s.LoadLatestAction(ctx)
		require.ErrorIs(t, err, types.ErrNotFound)

		steps := []struct {
			view           types.View
			action         types.Action
			expectedView   types.View
			expectedAction types.Action
		}{
			{view: 5, action: types.ActionVote, expectedView: 5, expectedAction: types.ActionVote},
			{view: 9, action: types.ActionDAVote, expectedView: 5, expectedAction: types.ActionVote},
			{view: 3, action: types.ActionPropose, expectedView: 5, expectedAction: types.ActionVote},
			{view: 7, action: types.ActionPropose, expectedView: 7, expectedAction: types.ActionPropose},
		}
		for _, step := range steps {
			require.NoError(t, s.RecordAction(ctx, step.view, step.action))
			view, action, err := s.LoadLatestAction(ctx)
			require.NoError(t, err)
			require.Equal(t, step.expectedView, view)
			require.Equal(t, step.expectedAction, action, "after recording %s in view %d", step.action, step.view)
		}
	})
}
