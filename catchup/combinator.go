package catchup

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/0xPolygon/zkevm-sequencer-core/log"
	"github.com/0xPolygon/zkevm-sequencer-core/metrics"
	"github.com/0xPolygon/zkevm-sequencer-core/types"
	"github.com/cenkalti/backoff/v4"
	"github.com/hashicorp/go-multierror"
)

const (
	localSourceName     = "local"
	defaultRetryBackoff = 100 * time.Millisecond
)

var errRejected = errors.New("fragment rejected")

type source struct {
	name    string
	fetcher func(ctx context.Context, req types.FetchRequest) (*types.StateFragment, error)
	trusted bool
}

// LocalAndRemote asks the local source first and then every remote peer in
// order. Remote fragments are verified against the requested root before
// being returned; a peer sending a bad fragment is skipped.
type LocalAndRemote struct {
	cfg     Config
	sources []source
	logger  *log.Logger
}

// NewLocalAndRemote creates the combinator. local and peers may be nil.
func NewLocalAndRemote(cfg Config, local types.StateCatchup, peers *StatePeers) *LocalAndRemote {
	c := &LocalAndRemote{
		cfg:    cfg,
		logger: log.WithFields("module", "catchup"),
	}
	if local != nil {
		c.sources = append(c.sources, source{name: localSourceName, fetcher: local.Fetch, trusted: true})
	}
	if peers != nil {
		for _, p := range peers.peers {
			c.sources = append(c.sources, source{name: p.name, fetcher: p.peer.FetchAccounts})
		}
	}
	return c
}

// Fetch implements types.StateCatchup
func (c *LocalAndRemote) Fetch(ctx context.Context, req types.FetchRequest) (*types.StateFragment, error) {
	var result *multierror.Error
	for _, src := range c.sources {
		fragment, err := c.fetchFrom(ctx, src, req)
		if err == nil {
			metrics.CatchupAttempts.WithLabelValues(src.name, metrics.ResultSuccess).Inc()
			c.logger.Debugf("fetched %d accounts at height %d from %s", len(req.Accounts), req.Height, src.name)
			return fragment, nil
		}
		if errors.Is(err, errRejected) {
			metrics.CatchupAttempts.WithLabelValues(src.name, metrics.ResultRejected).Inc()
			c.logger.Warnf("rejected state fragment from %s: %v", src.name, err)
		} else {
			metrics.CatchupAttempts.WithLabelValues(src.name, metrics.ResultFailure).Inc()
			c.logger.Debugf("catchup from %s failed: %v", src.name, err)
		}
		result = multierror.Append(result, fmt.Errorf("%s: %w", src.name, err))

		if ctx.Err() != nil {
			break
		}
	}
	if result == nil {
		return nil, fmt.Errorf("%w: no catchup sources", types.ErrMerkleTree)
	}
	return nil, fmt.Errorf("%w: catchup of %d accounts at height %d failed: %w", types.ErrMerkleTree, len(req.Accounts), req.Height, result.ErrorOrNil())
}

func (c *LocalAndRemote) fetchFrom(ctx context.Context, src source, req types.FetchRequest) (*types.StateFragment, error) {
	var fragment *types.StateFragment
	op := func() error {
		reqCtx, cancel := c.requestContext(ctx)
		defer cancel()
		f, err := src.fetcher(reqCtx, req)
		if err != nil && src.trusted {
			// local failures are deterministic
			return backoff.Permanent(err)
		}
		if err != nil {
			return err
		}
		if !src.trusted {
			if err := verify(req, f); err != nil {
				return backoff.Permanent(fmt.Errorf("%w: %w", errRejected, err))
			}
		}
		fragment = f
		return nil
	}
	bo := backoff.WithContext(backoff.WithMaxRetries(c.newBackoff(), c.cfg.Retries), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		return nil, err
	}
	return fragment, nil
}

func (c *LocalAndRemote) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.cfg.RequestTimeout.Duration <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.cfg.RequestTimeout.Duration)
}

func (c *LocalAndRemote) newBackoff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = defaultRetryBackoff
	if c.cfg.RetryInterval.Duration > 0 {
		bo.InitialInterval = c.cfg.RetryInterval.Duration
	}
	bo.MaxElapsedTime = 0
	bo.Reset()
	return bo
}
