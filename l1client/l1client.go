package l1client

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/0xPolygon/zkevm-sequencer-core/log"
	"github.com/0xPolygon/zkevm-sequencer-core/metrics"
	"github.com/0xPolygon/zkevm-sequencer-core/types"
	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum/common/lru"
)

const defaultCacheSize = 128

// Client tracks the head and the finalized block of the L1. The values it
// exposes never go backwards.
type Client struct {
	cfg      Config
	etherman types.EthermanInterface
	logger   *log.Logger

	mu        sync.RWMutex
	latest    *types.L1BlockInfo
	finalized *types.L1BlockInfo
	blocks    *lru.Cache[uint64, types.L1BlockInfo]

	quit     chan struct{}
	stopOnce sync.Once
}

// New creates a tracker on top of the given L1 client
func New(cfg Config, etherman types.EthermanInterface) *Client {
	size := cfg.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	return &Client{
		cfg:      cfg,
		etherman: etherman,
		logger:   log.WithFields("module", "l1client"),
		blocks:   lru.NewCache[uint64, types.L1BlockInfo](size),
		quit:     make(chan struct{}),
	}
}

// Start polls the L1 until ctx is done or Stop is called. Failed polls are
// logged and retried with exponential backoff; the last good values keep
// being served meanwhile.
func (c *Client) Start(ctx context.Context) {
	bo := c.newBackoff()
	wait := time.Duration(0)
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.quit:
			return
		case <-time.After(wait):
		}

		if err := c.Poll(ctx); err != nil {
			metrics.L1PollFailures.Inc()
			wait = bo.NextBackOff()
			if wait == backoff.Stop {
				wait = c.cfg.MaxBackoff.Duration
			}
			c.logger.Warnf("failed to poll L1, retrying in %s: %v", wait, err)
			continue
		}
		bo.Reset()
		wait = c.cfg.PollInterval.Duration
	}
}

// Stop stops the polling loop
func (c *Client) Stop() {
	c.stopOnce.Do(func() { close(c.quit) })
}

func (c *Client) newBackoff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	if c.cfg.PollInterval.Duration > 0 {
		bo.InitialInterval = c.cfg.PollInterval.Duration
	}
	if c.cfg.MaxBackoff.Duration > 0 {
		bo.MaxInterval = c.cfg.MaxBackoff.Duration
	}
	bo.MaxElapsedTime = 0
	bo.Reset()
	return bo
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.RequestTimeout.Duration <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.cfg.RequestTimeout.Duration)
}

// Poll fetches the latest and finalized L1 blocks once
func (c *Client) Poll(ctx context.Context) error {
	ctx, cancel := c.requestContext(ctx)
	defer cancel()

	head, err := c.etherman.LatestHeader(ctx)
	if err != nil {
		return fmt.Errorf("fetching latest L1 header: %w", err)
	}
	c.observeLatest(types.L1BlockInfoFromHeader(head))

	finalized, err := c.etherman.FinalizedHeader(ctx)
	if errors.Is(err, types.ErrNotFound) {
		// nothing finalized yet
		return nil
	}
	if err != nil {
		return fmt.Errorf("fetching finalized L1 header: %w", err)
	}
	c.observeFinalized(types.L1BlockInfoFromHeader(finalized))
	return nil
}

func (c *Client) observeLatest(info types.L1BlockInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.latest != nil && info.Number < c.latest.Number {
		metrics.L1StaleResponses.Inc()
		c.logger.Debugf("discarding stale L1 head %d, current %d", info.Number, c.latest.Number)
		return
	}
	c.latest = &info
	c.blocks.Add(info.Number, info)
	metrics.L1Head.Set(float64(info.Number))
}

func (c *Client) observeFinalized(info types.L1BlockInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.finalized != nil && info.Number < c.finalized.Number {
		metrics.L1StaleResponses.Inc()
		c.logger.Debugf("discarding stale L1 finalized block %d, current %d", info.Number, c.finalized.Number)
		return
	}
	c.finalized = &info
	c.blocks.Add(info.Number, info)
	metrics.L1Finalized.Set(float64(info.Number))
}

// LatestBlock returns the latest L1 block seen, if any
func (c *Client) LatestBlock() (types.L1BlockInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.latest == nil {
		return types.L1BlockInfo{}, false
	}
	return *c.latest, true
}

// FinalizedBlock returns the latest finalized L1 block seen, or nil if the
// L1 has not finalized any block yet
func (c *Client) FinalizedBlock() *types.L1BlockInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.finalized == nil {
		return nil
	}
	finalized := *c.finalized
	return &finalized
}

// Snapshot returns the L1 view used to build a header. It fails with
// ErrL1Unavailable until the L1 has been observed at least once.
func (c *Client) Snapshot() (types.L1Snapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.latest == nil {
		return types.L1Snapshot{}, fmt.Errorf("%w: no L1 block observed yet", types.ErrL1Unavailable)
	}
	snapshot := types.L1Snapshot{Head: c.latest.Number}
	if c.finalized != nil {
		finalized := *c.finalized
		snapshot.Finalized = &finalized
	}
	return snapshot, nil
}

// BlockAt returns the L1 block with the given number, from the cache when
// possible. If the block is not cached and the L1 can't be reached it
// returns ErrL1Unavailable.
func (c *Client) BlockAt(ctx context.Context, number uint64) (types.L1BlockInfo, error) {
	if info, ok := c.blocks.Get(number); ok {
		return info, nil
	}

	var info types.L1BlockInfo
	op := func() error {
		reqCtx, cancel := c.requestContext(ctx)
		defer cancel()
		header, err := c.etherman.HeaderByNumber(reqCtx, new(big.Int).SetUint64(number))
		if errors.Is(err, types.ErrNotFound) {
			return backoff.Permanent(err)
		}
		if err != nil {
			return err
		}
		info = types.L1BlockInfoFromHeader(header)
		return nil
	}
	notify := func(err error, wait time.Duration) {
		c.logger.Debugf("failed to fetch L1 block %d, retrying in %s: %v", number, wait, err)
	}
	bo := backoff.WithContext(backoff.WithMaxRetries(c.newBackoff(), c.cfg.BlockRetries), ctx)
	err := backoff.RetryNotify(op, bo, notify)
	if errors.Is(err, types.ErrNotFound) {
		return types.L1BlockInfo{}, fmt.Errorf("L1 block %d: %w", number, types.ErrNotFound)
	}
	if err != nil {
		return types.L1BlockInfo{}, fmt.Errorf("%w: L1 block %d: %w", types.ErrL1Unavailable, number, err)
	}
	c.blocks.Add(number, info)
	return info, nil
}

// Genesis returns the L1 block configured as L1 genesis, or nil if none
func (c *Client) Genesis(ctx context.Context) (*types.L1BlockInfo, error) {
	if c.cfg.FinalizedBlock == nil {
		return nil, nil
	}
	info, err := c.BlockAt(ctx, *c.cfg.FinalizedBlock)
	if err != nil {
		return nil, err
	}
	return &info, nil
}
