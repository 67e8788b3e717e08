package l1client

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	configTypes "github.com/0xPolygon/zkevm-sequencer-core/config/types"
	"github.com/0xPolygon/zkevm-sequencer-core/mocks"
	"github.com/0xPolygon/zkevm-sequencer-core/types"
	ethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errConnRefused = errors.New("connection refused")

func testConfig() Config {
	return Config{
		PollInterval:   configTypes.NewDuration(time.Millisecond),
		RequestTimeout: configTypes.NewDuration(time.Second),
		MaxBackoff:     configTypes.NewDuration(5 * time.Millisecond),
		BlockRetries:   2,
		CacheSize:      16,
	}
}

func l1Header(number, timestamp uint64) *ethTypes.Header {
	return &ethTypes.Header{Number: new(big.Int).SetUint64(number), Time: timestamp, Difficulty: big.NewInt(0)}
}

func TestSnapshotBeforeFirstObservation(t *testing.T) {
	sut := New(testConfig(), mocks.NewEthermanInterface(t))

	_, err := sut.Snapshot()
	require.ErrorIs(t, err, types.ErrL1Unavailable)
	_, ok := sut.LatestBlock()
	require.False(t, ok)
	require.Nil(t, sut.FinalizedBlock())
}

func TestPoll(t *testing.T) {
	etherman := mocks.NewEthermanInterface(t)
	sut := New(testConfig(), etherman)
	ctx := context.Background()

	etherman.EXPECT().LatestHeader(mock.Anything).Return(l1Header(10, 100), nil).Once()
	etherman.EXPECT().FinalizedHeader(mock.Anything).Return(nil, types.ErrNotFound).Once()
	require.NoError(t, sut.Poll(ctx))

	snapshot, err := sut.Snapshot()
	require.NoError(t, err)
	require.Equal(t, uint64(10), snapshot.Head)
	require.Nil(t, snapshot.Finalized)

	etherman.EXPECT().LatestHeader(mock.Anything).Return(l1Header(12, 124), nil).Once()
	etherman.EXPECT().FinalizedHeader(mock.Anything).Return(l1Header(4, 40), nil).Once()
	require.NoError(t, sut.Poll(ctx))

	snapshot, err = sut.Snapshot()
	require.NoError(t, err)
	require.Equal(t, uint64(12), snapshot.Head)
	require.NotNil(t, snapshot.Finalized)
	require.Equal(t, uint64(4), snapshot.Finalized.Number)
	require.Equal(t, uint64(40), snapshot.Finalized.Timestamp.Uint64())
}

func TestPollFailureKeepsLastKnownGood(t *testing.T) {
	etherman := mocks.NewEthermanInterface(t)
	sut := New(testConfig(), etherman)
	ctx := context.Background()

	etherman.EXPECT().LatestHeader(mock.Anything).Return(l1Header(10, 100), nil).Once()
	etherman.EXPECT().FinalizedHeader(mock.Anything).Return(l1Header(8, 80), nil).Once()
	require.NoError(t, sut.Poll(ctx))

	etherman.EXPECT().LatestHeader(mock.Anything).Return(nil, errConnRefused).Once()
	require.ErrorIs(t, sut.Poll(ctx), errConnRefused)

	etherman.EXPECT().LatestHeader(mock.Anything).Return(l1Header(11, 110), nil).Once()
	etherman.EXPECT().FinalizedHeader(mock.Anything).Return(nil, errConnRefused).Once()
	require.ErrorIs(t, sut.Poll(ctx), errConnRefused)

	latest, ok := sut.LatestBlock()
	require.True(t, ok)
	require.Equal(t, uint64(11), latest.Number)
	require.Equal(t, uint64(8), sut.FinalizedBlock().Number)
}

func TestStaleResponsesAreDiscarded(t *testing.T) {
	etherman := mocks.NewEthermanInterface(t)
	sut := New(testConfig(), etherman)
	ctx := context.Background()

	heads := []uint64{5, 9, 7, 9, 3, 12, 11}
	finals := []uint64{1, 4, 2, 4, 0, 6, 5}
	var maxHead, maxFinal uint64
	for i := range heads {
		etherman.EXPECT().LatestHeader(mock.Anything).Return(l1Header(heads[i], heads[i]*10), nil).Once()
		etherman.EXPECT().FinalizedHeader(mock.Anything).Return(l1Header(finals[i], finals[i]*10), nil).Once()
		require.NoError(t, sut.Poll(ctx))

		if heads[i] > maxHead {
			maxHead = heads[i]
		}
		if finals[i] > maxFinal {
			maxFinal = finals[i]
		}
		latest, ok := sut.LatestBlock()
		require.True(t, ok)
		require.Equal(t, maxHead, latest.Number)
		require.Equal(t, maxFinal, sut.FinalizedBlock().Number)
	}
}

func TestBlockAt(t *testing.T) {
	etherman := mocks.NewEthermanInterface(t)
	sut := New(testConfig(), etherman)
	ctx := context.Background()

	etherman.EXPECT().HeaderByNumber(mock.Anything, big.NewInt(20)).Return(l1Header(20, 200), nil).Once()
	info, err := sut.BlockAt(ctx, 20)
	require.NoError(t, err)
	require.Equal(t, uint64(20), info.Number)

	// served from the cache, the mock would fail on a second call
	cached, err := sut.BlockAt(ctx, 20)
	require.NoError(t, err)
	require.Equal(t, info, cached)
}

func TestBlockAtUnavailable(t *testing.T) {
	etherman := mocks.NewEthermanInterface(t)
	cfg := testConfig()
	sut := New(cfg, etherman)

	etherman.EXPECT().HeaderByNumber(mock.Anything, big.NewInt(30)).Return(nil, errConnRefused).Times(int(cfg.BlockRetries) + 1)
	_, err := sut.BlockAt(context.Background(), 30)
	require.ErrorIs(t, err, types.ErrL1Unavailable)
	require.ErrorIs(t, err, errConnRefused)
}

func TestBlockAtNotFound(t *testing.T) {
	etherman := mocks.NewEthermanInterface(t)
	sut := New(testConfig(), etherman)

	etherman.EXPECT().HeaderByNumber(mock.Anything, big.NewInt(1000)).Return(nil, types.ErrNotFound).Once()
	_, err := sut.BlockAt(context.Background(), 1000)
	require.ErrorIs(t, err, types.ErrNotFound)
	require.NotErrorIs(t, err, types.ErrL1Unavailable)
}

func TestBlockAtServesPolledBlocks(t *testing.T) {
	etherman := mocks.NewEthermanInterface(t)
	sut := New(testConfig(), etherman)
	ctx := context.Background()

	etherman.EXPECT().LatestHeader(mock.Anything).Return(l1Header(10, 100), nil).Once()
	etherman.EXPECT().FinalizedHeader(mock.Anything).Return(l1Header(8, 80), nil).Once()
	require.NoError(t, sut.Poll(ctx))

	info, err := sut.BlockAt(ctx, 8)
	require.NoError(t, err)
	require.Equal(t, uint64(80), info.Timestamp.Uint64())
}

func TestStaleResponsesAreNotCached(t *testing.T) {
	etherman := mocks.NewEthermanInterface(t)
	sut := New(testConfig(), etherman)
	ctx := context.Background()

	etherman.EXPECT().LatestHeader(mock.Anything).Return(l1Header(10, 100), nil).Once()
	etherman.EXPECT().FinalizedHeader(mock.Anything).Return(l1Header(8, 80), nil).Once()
	require.NoError(t, sut.Poll(ctx))

	// a lagging provider answers with blocks from another fork
	etherman.EXPECT().LatestHeader(mock.Anything).Return(l1Header(7, 71), nil).Once()
	etherman.EXPECT().FinalizedHeader(mock.Anything).Return(l1Header(6, 61), nil).Once()
	require.NoError(t, sut.Poll(ctx))

	etherman.EXPECT().HeaderByNumber(mock.Anything, big.NewInt(7)).Return(l1Header(7, 70), nil).Once()
	etherman.EXPECT().HeaderByNumber(mock.Anything, big.NewInt(6)).Return(l1Header(6, 60), nil).Once()

	info, err := sut.BlockAt(ctx, 7)
	require.NoError(t, err)
	require.Equal(t, uint64(70), info.Timestamp.Uint64())
	info, err = sut.BlockAt(ctx, 6)
	require.NoError(t, err)
	require.Equal(t, uint64(60), info.Timestamp.Uint64())
}

func TestGenesis(t *testing.T) {
	etherman := mocks.NewEthermanInterface(t)
	cfg := testConfig()
	sut := New(cfg, etherman)

	genesis, err := sut.Genesis(context.Background())
	require.NoError(t, err)
	require.Nil(t, genesis)

	block := uint64(3)
	cfg.FinalizedBlock = &block
	sut = New(cfg, etherman)
	etherman.EXPECT().HeaderByNumber(mock.Anything, big.NewInt(3)).Return(l1Header(3, 30), nil).Once()
	genesis, err = sut.Genesis(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(3), genesis.Number)
}

func TestStartRetriesAfterFailure(t *testing.T) {
	etherman := mocks.NewEthermanInterface(t)
	sut := New(testConfig(), etherman)

	etherman.EXPECT().LatestHeader(mock.Anything).Return(nil, errConnRefused).Twice()
	etherman.EXPECT().LatestHeader(mock.Anything).Return(l1Header(42, 420), nil)
	etherman.EXPECT().FinalizedHeader(mock.Anything).Return(l1Header(40, 400), nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		sut.Start(context.Background())
	}()

	require.Eventually(t, func() bool {
		latest, ok := sut.LatestBlock()
		return ok && latest.Number == 42
	}, time.Second, time.Millisecond)

	sut.Stop()
	sut.Stop()
	<-done
	require.Equal(t, uint64(40), sut.FinalizedBlock().Number)
}
