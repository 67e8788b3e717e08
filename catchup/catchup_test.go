package catchup

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	configTypes "github.com/0xPolygon/zkevm-sequencer-core/config/types"
	"github.com/0xPolygon/zkevm-sequencer-core/mocks"
	"github.com/0xPolygon/zkevm-sequencer-core/state"
	"github.com/0xPolygon/zkevm-sequencer-core/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/rawdb"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	accountA = common.HexToAddress("0xA")
	accountB = common.HexToAddress("0xB")
	accountC = common.HexToAddress("0xC")

	errPeerDown = errors.New("peer down")
)

func testConfig() Config {
	return Config{
		Retries:        2,
		RequestTimeout: configTypes.NewDuration(time.Second),
		RetryInterval:  configTypes.NewDuration(time.Millisecond),
	}
}

func fullState(t *testing.T, store *state.Store) *state.ValidatedState {
	t.Helper()
	s, err := state.Genesis(store, types.DefaultChainConfig(), []common.Address{accountA, accountC})
	require.NoError(t, err)
	return s
}

func request(s *state.ValidatedState) types.FetchRequest {
	return types.FetchRequest{Height: 0, Root: s.Commit(), Accounts: []common.Address{accountA, accountB}}
}

func TestNoOp(t *testing.T) {
	_, err := NoOp{}.Fetch(context.Background(), types.FetchRequest{Height: 50, Accounts: []common.Address{accountA}})
	require.ErrorIs(t, err, types.ErrMerkleTree)
}

func TestNoOpCatchupWithEmptyState(t *testing.T) {
	full := fullState(t, state.NewMemoryStore())
	sparse := state.FromCommitment(state.NewMemoryStore(), full.Commit(), types.DefaultChainConfig())
	tx, err := types.NewFeeTransaction(accountA, accountB, big.NewInt(1))
	require.NoError(t, err)

	_, err = sparse.ApplyTransactions(context.Background(), NoOp{}, 50, []types.Transaction{tx})
	require.ErrorIs(t, err, types.ErrMerkleTree)
}

func TestMock(t *testing.T) {
	full := fullState(t, state.NewMemoryStore())
	m := NewMock(map[uint64]*state.ValidatedState{3: full})
	ctx := context.Background()

	req := request(full)
	req.Height = 3
	fragment, err := m.Fetch(ctx, req)
	require.NoError(t, err)
	require.NoError(t, verify(req, fragment))

	req.Height = 4
	_, err = m.Fetch(ctx, req)
	require.ErrorIs(t, err, types.ErrMerkleTree)

	req.Height = 3
	req.Root = common.HexToHash("0x1")
	_, err = m.Fetch(ctx, req)
	require.ErrorIs(t, err, types.ErrMerkleTree)
}

func TestLocalSource(t *testing.T) {
	store := state.NewStore(rawdb.NewMemoryDatabase(), rawdb.NewMemoryDatabase())
	full := fullState(t, store)
	req := request(full)

	fragment, err := NewLocalSource(store).Fetch(context.Background(), req)
	require.NoError(t, err)
	require.NoError(t, verify(req, fragment))

	_, err = NewLocalSource(state.NewMemoryStore()).Fetch(context.Background(), req)
	require.ErrorIs(t, err, types.ErrMerkleTree)
}

func TestVerifyRequiresEveryAccount(t *testing.T) {
	full := fullState(t, state.NewMemoryStore())
	req := request(full)
	fragment, err := full.Prove(0, []common.Address{accountA})
	require.NoError(t, err)
	require.ErrorIs(t, verify(req, fragment), types.ErrMerkleTree)
}

func inProcPeer(t *testing.T, store *state.Store) Peer {
	t.Helper()
	server, err := NewRPCServer(NewAPI(store, 0))
	require.NoError(t, err)
	client := rpc.DialInProc(server)
	t.Cleanup(func() {
		client.Close()
		server.Stop()
	})
	return NewRPCPeer(client)
}

func TestStatePeersOverRPC(t *testing.T) {
	full := fullState(t, state.NewMemoryStore())
	req := request(full)

	peers := &StatePeers{}
	peers.Add("empty", inProcPeer(t, state.NewMemoryStore()))
	peers.Add("full", inProcPeer(t, full.Store()))
	require.Equal(t, 2, peers.Len())

	fragment, err := peers.Fetch(context.Background(), req)
	require.NoError(t, err)
	require.NoError(t, state.VerifyFragment(full.Commit(), fragment))

	_, err = (&StatePeers{}).Fetch(context.Background(), req)
	require.ErrorIs(t, err, types.ErrMerkleTree)
}

func TestAPILimitsAccounts(t *testing.T) {
	full := fullState(t, state.NewMemoryStore())
	api := NewAPI(full.Store(), 1)
	_, err := api.FetchAccounts(context.Background(), request(full))
	require.Error(t, err)
}

func TestLocalHitNeverUsesPeers(t *testing.T) {
	store := state.NewStore(rawdb.NewMemoryDatabase(), rawdb.NewMemoryDatabase())
	full := fullState(t, store)
	peer := mocks.NewPeer(t)
	peers := &StatePeers{}
	peers.Add("remote", peer)

	c := NewLocalAndRemote(testConfig(), NewLocalSource(store), peers)
	fragment, err := c.Fetch(context.Background(), request(full))
	require.NoError(t, err)
	require.Equal(t, full.Commit(), fragment.Root)
}

func TestBadRemoteFragmentIsRejected(t *testing.T) {
	full := fullState(t, state.NewMemoryStore())
	other, err := state.Genesis(state.NewMemoryStore(), types.DefaultChainConfig(), []common.Address{accountB})
	require.NoError(t, err)
	req := request(full)

	liar := mocks.NewPeer(t)
	liar.EXPECT().FetchAccounts(mock.Anything, req).RunAndReturn(
		func(_ context.Context, req types.FetchRequest) (*types.StateFragment, error) {
			fragment, err := other.Prove(req.Height, req.Accounts)
			if err != nil {
				return nil, err
			}
			fragment.Root = req.Root
			return fragment, nil
		}).Once()
	honest := mocks.NewPeer(t)
	honest.EXPECT().FetchAccounts(mock.Anything, req).RunAndReturn(
		func(_ context.Context, req types.FetchRequest) (*types.StateFragment, error) {
			return full.Prove(req.Height, req.Accounts)
		}).Once()

	peers := &StatePeers{}
	peers.Add("liar", liar)
	peers.Add("honest", honest)
	c := NewLocalAndRemote(testConfig(), NoOp{}, peers)

	sparse := state.FromCommitment(state.NewMemoryStore(), full.Commit(), types.DefaultChainConfig())
	tx, err := types.NewFeeTransaction(accountA, accountB, big.NewInt(100))
	require.NoError(t, err)
	next, err := sparse.ApplyTransactions(context.Background(), c, 0, []types.Transaction{tx})
	require.NoError(t, err)

	expected, err := full.ApplyTransactions(context.Background(), nil, 0, []types.Transaction{tx})
	require.NoError(t, err)
	require.Equal(t, expected.Commit(), next.Commit())
}

func TestAllSourcesFail(t *testing.T) {
	full := fullState(t, state.NewMemoryStore())
	req := request(full)
	cfg := testConfig()

	down := mocks.NewPeer(t)
	down.EXPECT().FetchAccounts(mock.Anything, req).Return(nil, errPeerDown).Times(int(cfg.Retries) + 1)
	incomplete := mocks.NewPeer(t)
	incomplete.EXPECT().FetchAccounts(mock.Anything, req).RunAndReturn(
		func(_ context.Context, req types.FetchRequest) (*types.StateFragment, error) {
			return full.Prove(req.Height, req.Accounts[:1])
		}).Once()

	peers := &StatePeers{}
	peers.Add("down", down)
	peers.Add("incomplete", incomplete)
	c := NewLocalAndRemote(cfg, NoOp{}, peers)

	_, err := c.Fetch(context.Background(), req)
	require.ErrorIs(t, err, types.ErrMerkleTree)
	require.ErrorIs(t, err, errPeerDown)
	require.ErrorIs(t, err, errRejected)
}

func TestRetriesTransientFailures(t *testing.T) {
	full := fullState(t, state.NewMemoryStore())
	req := request(full)

	flaky := mocks.NewPeer(t)
	flaky.EXPECT().FetchAccounts(mock.Anything, req).Return(nil, errPeerDown).Once()
	flaky.EXPECT().FetchAccounts(mock.Anything, req).RunAndReturn(
		func(_ context.Context, req types.FetchRequest) (*types.StateFragment, error) {
			return full.Prove(req.Height, req.Accounts)
		}).Once()

	peers := &StatePeers{}
	peers.Add("flaky", flaky)
	c := NewLocalAndRemote(testConfig(), nil, peers)

	fragment, err := c.Fetch(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, full.Commit(), fragment.Root)
}

func TestRequestTimeout(t *testing.T) {
	full := fullState(t, state.NewMemoryStore())
	req := request(full)
	cfg := testConfig()
	cfg.Retries = 0
	cfg.RequestTimeout = configTypes.NewDuration(10 * time.Millisecond)

	slow := mocks.NewPeer(t)
	slow.EXPECT().FetchAccounts(mock.Anything, req).RunAndReturn(
		func(ctx context.Context, _ types.FetchRequest) (*types.StateFragment, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		}).Once()

	peers := &StatePeers{}
	peers.Add("slow", slow)
	c := NewLocalAndRemote(cfg, nil, peers)

	_, err := c.Fetch(context.Background(), req)
	require.ErrorIs(t, err, types.ErrMerkleTree)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNoSources(t *testing.T) {
	c := NewLocalAndRemote(testConfig(), nil, nil)
	_, err := c.Fetch(context.Background(), types.FetchRequest{})
	require.ErrorIs(t, err, types.ErrMerkleTree)
}
