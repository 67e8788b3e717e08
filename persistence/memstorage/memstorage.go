package memstorage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/0xPolygon/zkevm-sequencer-core/log"
	"github.com/0xPolygon/zkevm-sequencer-core/types"
)

var _ types.Persistence = (*MemStorage)(nil)

type latestAction struct {
	View   types.View   `json:"view"`
	Action types.Action `json:"action"`
}

// snapshot is the document written to the persistence file
type snapshot struct {
	Config *types.NetworkConfig                                  `json:"config,omitempty"`
	DA     map[types.View]types.Proposal[types.DAProposal]       `json:"da_proposals"`
	VID    map[types.View]types.Proposal[types.VidDisperseShare] `json:"vid_shares"`
	Action *latestAction                                         `json:"latest_action,omitempty"`
}

// MemStorage keeps consensus artifacts in memory, optionally mirrored to a
// JSON file so they survive a restart.
type MemStorage struct {
	mu                  sync.RWMutex
	fileMutex           sync.Mutex
	data                snapshot
	PersistenceFilename string
}

// NewMemStorage creates a new instance of storage, loading the persistence
// file if it exists
func NewMemStorage(persistenceFilename string) (*MemStorage, error) {
	data := snapshot{
		DA:  make(map[types.View]types.Proposal[types.DAProposal]),
		VID: make(map[types.View]types.Proposal[types.VidDisperseShare]),
	}
	if persistenceFilename != "" {
		raw, err := os.ReadFile(persistenceFilename)
		switch {
		case errors.Is(err, os.ErrNotExist):
			log.Infof("Persistence file %s does not exist", persistenceFilename)
		case err != nil:
			return nil, err
		default:
			if err := json.Unmarshal(raw, &data); err != nil {
				return nil, fmt.Errorf("failed to decode persistence file %s: %w", persistenceFilename, err)
			}
			log.Infof("Persistence file %s loaded", persistenceFilename)
		}
	}

	return &MemStorage{
		data:                data,
		PersistenceFilename: persistenceFilename,
	}, nil
}

// persist writes the whole snapshot to a temporary file and renames it over
// the previous one. Callers hold mu.
func (s *MemStorage) persist() error {
	if s.PersistenceFilename == "" {
		return nil
	}
	s.fileMutex.Lock()
	defer s.fileMutex.Unlock()

	jsonFile, err := json.Marshal(s.data)
	if err != nil {
		return err
	}
	tmp := s.PersistenceFilename + ".tmp"
	if err := os.WriteFile(tmp, jsonFile, 0644); err != nil { //nolint:gosec,mnd
		return err
	}
	return os.Rename(tmp, s.PersistenceFilename)
}

// LoadConfig returns the saved network config
func (s *MemStorage) LoadConfig(_ context.Context) (*types.NetworkConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.Config == nil {
		return nil, types.ErrNotFound
	}
	cfg := *s.data.Config
	return &cfg, nil
}

// SaveConfig stores the network config, replacing any previous one
func (s *MemStorage) SaveConfig(_ context.Context, cfg types.NetworkConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Config = &cfg
	return s.persist()
}

// AppendDA stores the DA proposal of a view
func (s *MemStorage) AppendDA(_ context.Context, proposal types.Proposal[types.DAProposal]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.data.DA[proposal.Data.View]; exists {
		return types.ErrAlreadyExists
	}
	s.data.DA[proposal.Data.View] = proposal
	return s.persist()
}

// AppendVID stores the VID share of a view
func (s *MemStorage) AppendVID(_ context.Context, share types.Proposal[types.VidDisperseShare]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.data.VID[share.Data.View]; exists {
		return types.ErrAlreadyExists
	}
	s.data.VID[share.Data.View] = share
	return s.persist()
}

// RecordAction remembers the highest view voted or proposed in
func (s *MemStorage) RecordAction(_ context.Context, view types.View, action types.Action) error {
	if !action.IsVoteOrPropose() {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data.Action != nil && s.data.Action.View >= view {
		return nil
	}
	s.data.Action = &latestAction{View: view, Action: action}
	return s.persist()
}

// LoadDAProposal loads the DA proposal of a view
func (s *MemStorage) LoadDAProposal(_ context.Context, view types.View) (*types.Proposal[types.DAProposal], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, exists := s.data.DA[view]; exists {
		return &p, nil
	}
	return nil, types.ErrNotFound
}

// LoadVIDShare loads the VID share of a view
func (s *MemStorage) LoadVIDShare(_ context.Context, view types.View) (*types.Proposal[types.VidDisperseShare], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, exists := s.data.VID[view]; exists {
		return &p, nil
	}
	return nil, types.ErrNotFound
}

// LoadLatestAction returns the last recorded vote or proposal
func (s *MemStorage) LoadLatestAction(_ context.Context) (types.View, types.Action, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.data.Action == nil {
		return 0, 0, types.ErrNotFound
	}
	return s.data.Action.View, s.data.Action.Action, nil
}

// Close flushes the snapshot one last time
func (s *MemStorage) Close() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persist()
}
