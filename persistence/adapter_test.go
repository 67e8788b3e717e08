package persistence

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/0xPolygon/zkevm-sequencer-core/mocks"
	"github.com/0xPolygon/zkevm-sequencer-core/persistence/storagetest"
	"github.com/0xPolygon/zkevm-sequencer-core/types"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdapter_DuplicatesAreIdempotent(t *testing.T) {
	ctx := context.Background()
	backend := mocks.NewPersistence(t)
	adapter := NewAdapter(backend)

	backend.EXPECT().AppendDA(mock.Anything, storagetest.DAProposal(4)).Return(types.ErrAlreadyExists).Once()
	backend.EXPECT().AppendVID(mock.Anything, storagetest.VIDShare(4)).Return(types.ErrAlreadyExists).Once()

	require.NoError(t, adapter.AppendDA(ctx, storagetest.DAProposal(4)))
	require.NoError(t, adapter.AppendVID(ctx, storagetest.VIDShare(4)))
}

func TestAdapter_BackendErrorsAreWrapped(t *testing.T) {
	ctx := context.Background()
	diskFull := errors.New("disk full")

	tests := []struct {
		name  string
		setup func(backend *mocks.Persistence)
		call  func(adapter *Adapter) error
	}{
		{
			name: "append da",
			setup: func(backend *mocks.Persistence) {
				backend.EXPECT().AppendDA(mock.Anything, mock.Anything).Return(diskFull)
			},
			call: func(adapter *Adapter) error { return adapter.AppendDA(ctx, storagetest.DAProposal(1)) },
		},
		{
			name: "append vid",
			setup: func(backend *mocks.Persistence) {
				backend.EXPECT().AppendVID(mock.Anything, mock.Anything).Return(diskFull)
			},
			call: func(adapter *Adapter) error { return adapter.AppendVID(ctx, storagetest.VIDShare(1)) },
		},
		{
			name: "record action",
			setup: func(backend *mocks.Persistence) {
				backend.EXPECT().RecordAction(mock.Anything, types.View(1), types.ActionVote).Return(diskFull)
			},
			call: func(adapter *Adapter) error { return adapter.RecordAction(ctx, 1, types.ActionVote) },
		},
		{
			name: "save config",
			setup: func(backend *mocks.Persistence) {
				backend.EXPECT().SaveConfig(mock.Anything, mock.Anything).Return(diskFull)
			},
			call: func(adapter *Adapter) error { return adapter.SaveConfig(ctx, storagetest.NetworkConfig()) },
		},
		{
			name: "load config",
			setup: func(backend *mocks.Persistence) {
				backend.EXPECT().LoadConfig(mock.Anything).Return(nil, diskFull)
			},
			call: func(adapter *Adapter) error {
				_, err := adapter.LoadConfig(ctx)
				return err
			},
		},
		{
			name: "load latest action",
			setup: func(backend *mocks.Persistence) {
				backend.EXPECT().LoadLatestAction(mock.Anything).Return(0, 0, diskFull)
			},
			call: func(adapter *Adapter) error {
				_, err := adapter.LoadLatestAction(ctx)
				return err
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			backend := mocks.NewPersistence(t)
			tc.setup(backend)
			err := tc.call(NewAdapter(backend))
			require.ErrorIs(t, err, types.ErrPersistence)
			require.ErrorIs(t, err, diskFull)
		})
	}
}

func TestAdapter_MissingValuesAreNil(t *testing.T) {
	ctx := context.Background()
	backend := mocks.NewPersistence(t)
	adapter := NewAdapter(backend)

	backend.EXPECT().LoadConfig(mock.Anything).Return(nil, types.ErrNotFound)
	backend.EXPECT().LoadDAProposal(mock.Anything, types.View(3)).Return(nil, types.ErrNotFound)
	backend.EXPECT().LoadVIDShare(mock.Anything, types.View(3)).Return(nil, types.ErrNotFound)
	backend.EXPECT().LoadLatestAction(mock.Anything).Return(0, 0, types.ErrNotFound)

	cfg, err := adapter.LoadConfig(ctx)
	require.NoError(t, err)
	require.Nil(t, cfg)

	da, err := adapter.LoadDAProposal(ctx, 3)
	require.NoError(t, err)
	require.Nil(t, da)

	vid, err := adapter.LoadVIDShare(ctx, 3)
	require.NoError(t, err)
	require.Nil(t, vid)

	action, err := adapter.LoadLatestAction(ctx)
	require.NoError(t, err)
	require.Nil(t, action)
}

func TestAdapter_ExclusiveAccess(t *testing.T) {
	backend := mocks.NewPersistence(t)
	adapter := NewAdapter(backend)

	entered := make(chan struct{})
	release := make(chan struct{})
	backend.EXPECT().RecordAction(mock.Anything, types.View(1), types.ActionVote).
		RunAndReturn(func(context.Context, types.View, types.Action) error {
			close(entered)
			<-release
			return nil
		}).Once()

	done := make(chan error)
	go func() {
		done <- adapter.RecordAction(context.Background(), 1, types.ActionVote)
	}()
	<-entered

	// the backend is busy, a second caller gives up when its context expires
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err := adapter.SaveConfig(ctx, storagetest.NetworkConfig())
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.NotErrorIs(t, err, types.ErrPersistence)

	close(release)
	require.NoError(t, <-done)

	// access was released on the success path
	backend.EXPECT().SaveConfig(mock.Anything, mock.Anything).Return(nil).Once()
	require.NoError(t, adapter.SaveConfig(context.Background(), storagetest.NetworkConfig()))

	// and on the failure path
	backend.EXPECT().RecordAction(mock.Anything, types.View(2), types.ActionVote).Return(errors.New("boom")).Once()
	require.Error(t, adapter.RecordAction(context.Background(), 2, types.ActionVote))
	backend.EXPECT().RecordAction(mock.Anything, types.View(3), types.ActionVote).Return(nil).Once()
	require.NoError(t, adapter.RecordAction(context.Background(), 3, types.ActionVote))
}

func TestAdapter_NoOpUpdates(t *testing.T) {
	ctx := context.Background()
	// no expectations: neither update may reach the backend
	adapter := NewAdapter(mocks.NewPersistence(t))

	require.NoError(t, adapter.UpdateHighQC(ctx, types.QuorumCertificate{View: 9}))
	require.NoError(t, adapter.UpdateUndecidedState(ctx, []types.Leaf{{View: 8}, {View: 9}}, 9))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	configs := []Config{
		{Type: TypeMemory},
		{Type: TypeMemory, Path: filepath.Join(dir, "consensus.json")},
		{Type: TypeSQLite},
		{Type: TypeSQLite, Path: filepath.Join(dir, "consensus.sqlite")},
		{Type: TypePebble},
		{Type: TypePebble, Path: filepath.Join(dir, "pebble")},
	}
	for _, cfg := range configs {
		t.Run(cfg.Type+" "+filepath.Base(cfg.Path), func(t *testing.T) {
			adapter, err := Open(cfg)
			require.NoError(t, err)

			require.NoError(t, adapter.AppendDA(ctx, storagetest.DAProposal(1)))
			require.NoError(t, adapter.AppendDA(ctx, storagetest.DAProposal(1)))
			require.NoError(t, adapter.RecordAction(ctx, 1, types.ActionPropose))

			proposal, err := adapter.LoadDAProposal(ctx, 1)
			require.NoError(t, err)
			require.Equal(t, storagetest.DAProposal(1), *proposal)

			recorded, err := adapter.LoadLatestAction(ctx)
			require.NoError(t, err)
			require.Equal(t, &RecordedAction{View: 1, Action: types.ActionPropose}, recorded)

			require.NoError(t, adapter.Close(ctx))
		})
	}

	_, err := Open(Config{Type: "cassandra"})
	require.ErrorIs(t, err, types.ErrPersistence)

	_, err = Open(Config{Type: TypePostgres})
	require.ErrorContains(t, err, "requires a DSN")
}
