package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/0xPolygon/zkevm-sequencer-core/log"
	"github.com/0xPolygon/zkevm-sequencer-core/metrics"
	"github.com/0xPolygon/zkevm-sequencer-core/types"
	"golang.org/x/sync/semaphore"
)

// RecordedAction is the last vote or proposal made by this node
type RecordedAction struct {
	View   types.View
	Action types.Action
}

// Adapter is the single owner of a persistence backend. Every call holds
// exclusive access to the backend for its whole duration.
//
// Errors returned by the backend are wrapped in types.ErrPersistence and
// must be treated as fatal by the caller.
type Adapter struct {
	sema    *semaphore.Weighted
	backend types.Persistence
	logger  *log.Logger
}

// NewAdapter takes ownership of backend
func NewAdapter(backend types.Persistence) *Adapter {
	return &Adapter{
		sema:    semaphore.NewWeighted(1),
		backend: backend,
		logger:  log.WithFields("module", "persistence"),
	}
}

// exclusive runs fn while holding the backend
func (a *Adapter) exclusive(ctx context.Context, operation string, fn func() error) error {
	if err := a.sema.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("waiting for storage to %s: %w", operation, err)
	}
	defer a.sema.Release(1)

	err := fn()
	metrics.StorageOperations.WithLabelValues(operation, metrics.Result(err)).Inc()
	if err != nil {
		return fmt.Errorf("%w: %s: %w", types.ErrPersistence, operation, err)
	}
	return nil
}

// AppendVID stores the VID share of a view. Storing a share for a view that
// already has one keeps the first and succeeds.
func (a *Adapter) AppendVID(ctx context.Context, share types.Proposal[types.VidDisperseShare]) error {
	return a.exclusive(ctx, "append_vid", func() error {
		err := a.backend.AppendVID(ctx, share)
		if errors.Is(err, types.ErrAlreadyExists) {
			a.logger.Debugf("vid share for view %d already stored", share.Data.View)
			return nil
		}
		return err
	})
}

// AppendDA stores the DA proposal of a view. Storing a proposal for a view
// that already has one keeps the first and succeeds.
func (a *Adapter) AppendDA(ctx context.Context, proposal types.Proposal[types.DAProposal]) error {
	return a.exclusive(ctx, "append_da", func() error {
		err := a.backend.AppendDA(ctx, proposal)
		if errors.Is(err, types.ErrAlreadyExists) {
			a.logger.Debugf("da proposal for view %d already stored", proposal.Data.View)
			return nil
		}
		return err
	})
}

// RecordAction records a vote or proposal so the node never repeats one
// after a restart. Other actions are accepted and dropped.
func (a *Adapter) RecordAction(ctx context.Context, view types.View, action types.Action) error {
	return a.exclusive(ctx, "record_action", func() error {
		return a.backend.RecordAction(ctx, view, action)
	})
}

// LoadConfig returns the saved network config, or nil if there is none
func (a *Adapter) LoadConfig(ctx context.Context) (*types.NetworkConfig, error) {
	var cfg *types.NetworkConfig
	err := a.exclusive(ctx, "load_config", func() error {
		var err error
		cfg, err = a.backend.LoadConfig(ctx)
		if errors.Is(err, types.ErrNotFound) {
			cfg = nil
			return nil
		}
		return err
	})
	return cfg, err
}

// SaveConfig stores the network config
func (a *Adapter) SaveConfig(ctx context.Context, cfg types.NetworkConfig) error {
	return a.exclusive(ctx, "save_config", func() error {
		return a.backend.SaveConfig(ctx, cfg)
	})
}

// LoadDAProposal returns the DA proposal of a view, or nil if there is none
func (a *Adapter) LoadDAProposal(ctx context.Context, view types.View) (*types.Proposal[types.DAProposal], error) {
	var p *types.Proposal[types.DAProposal]
	err := a.exclusive(ctx, "load_da", func() error {
		var err error
		p, err = a.backend.LoadDAProposal(ctx, view)
		if errors.Is(err, types.ErrNotFound) {
			p = nil
			return nil
		}
		return err
	})
	return p, err
}

// LoadVIDShare returns the VID share of a view, or nil if there is none
func (a *Adapter) LoadVIDShare(ctx context.Context, view types.View) (*types.Proposal[types.VidDisperseShare], error) {
	var p *types.Proposal[types.VidDisperseShare]
	err := a.exclusive(ctx, "load_vid", func() error {
		var err error
		p, err = a.backend.LoadVIDShare(ctx, view)
		if errors.Is(err, types.ErrNotFound) {
			p = nil
			return nil
		}
		return err
	})
	return p, err
}

// LoadLatestAction returns the last recorded vote or proposal, or nil if
// the node never voted nor proposed
func (a *Adapter) LoadLatestAction(ctx context.Context) (*RecordedAction, error) {
	var recorded *RecordedAction
	err := a.exclusive(ctx, "load_latest_action", func() error {
		view, action, err := a.backend.LoadLatestAction(ctx)
		if errors.Is(err, types.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		recorded = &RecordedAction{View: view, Action: action}
		return nil
	})
	return recorded, err
}

// UpdateHighQC is accepted and ignored: the highest quorum certificate is
// not persisted, a restarted node learns it again from its peers.
func (a *Adapter) UpdateHighQC(_ context.Context, qc types.QuorumCertificate) error {
	a.logger.Debugf("high qc for view %d not persisted", qc.View)
	return nil
}

// UpdateUndecidedState is accepted and ignored: undecided leaves are not
// persisted, a restarted node learns them again from its peers.
func (a *Adapter) UpdateUndecidedState(_ context.Context, leaves []types.Leaf, view types.View) error {
	a.logger.Debugf("%d undecided leaves at view %d not persisted", len(leaves), view)
	return nil
}

// Close waits for the in flight operation and closes the backend
func (a *Adapter) Close(ctx context.Context) error {
	return a.exclusive(ctx, "close", a.backend.Close)
}
