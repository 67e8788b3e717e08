package etherman

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/0xPolygon/zkevm-sequencer-core/log"
)

const (
	// DefaultInterval is a time interval
	DefaultInterval = 2 * time.Millisecond
	// DefaultDeadline is a time interval
	DefaultDeadline = 2 * time.Minute
)

// ErrTimeoutReached is thrown when the timeout is reached and
// because the condition is not matched
var ErrTimeoutReached = fmt.Errorf("timeout has been reached")

// ConditionFunc is a generic function
type ConditionFunc func() (done bool, err error)

// Poll retries the given condition with the given interval until it succeeds
// or the given deadline expires.
func Poll(interval, deadline time.Duration, condition ConditionFunc) error {
	timeout := time.After(deadline)
	tick := time.NewTicker(interval)
	defer tick.Stop()

	for {
		select {
		case <-timeout:
			return ErrTimeoutReached
		case <-tick.C:
			ok, err := condition()
			if err != nil {
				return err
			}
			if ok {
				return nil
			}
		}
	}
}

// WaitBlock waits until the L1 head reaches the given number.
func WaitBlock(ctx context.Context, client *Client, number uint64, timeout time.Duration) error {
	return Poll(time.Second, timeout, func() (bool, error) {
		current, err := client.GetLatestBlockNumber(ctx)
		if err != nil {
			log.Debugf("waiting for L1 block %d: %v", number, err)
			return false, nil
		}
		return current >= number, nil
	})
}

// WaitSignal blocks until an Interrupt or Terminate signal is received, or
// ctx is done, then it executes the given cleanup functions and returns.
func WaitSignal(ctx context.Context, cleanupFuncs ...func()) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	select {
	case <-signals:
		log.Info("terminating application gracefully...")
	case <-ctx.Done():
	}
	for _, cleanup := range cleanupFuncs {
		cleanup()
	}
}
