package pebblestorage

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/0xPolygon/zkevm-sequencer-core/types"
	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
)

const (
	prefixConfig byte = iota + 1
	prefixDA
	prefixVID
	prefixLatestAction
)

var _ types.Persistence = (*PebbleStorage)(nil)

type latestAction struct {
	View   types.View
	Action types.Action
}

// PebbleStorage keeps consensus artifacts in a pebble key value store.
// Values are CBOR documents compressed with Zstandard.
type PebbleStorage struct {
	mu    sync.Mutex
	db    *pebble.DB
	codec *Codec
}

// NewStorage opens the store at path. An empty path opens an in memory store.
func NewStorage(path string) (*PebbleStorage, error) {
	opts := &pebble.Options{
		Cache:        pebble.NewCache(8 << 20),
		MemTableSize: 4 << 20,
	}
	defer opts.Cache.Unref()
	if path == "" {
		opts.FS = vfs.NewMem()
	}

	db, err := pebble.Open(path, opts)
	if err != nil {
		return nil, err
	}
	codec, err := NewCodec()
	if err != nil {
		db.Close()
		return nil, err
	}
	return &PebbleStorage{db: db, codec: codec}, nil
}

func viewKey(prefix byte, view types.View) []byte {
	key := make([]byte, 9)
	key[0] = prefix
	binary.BigEndian.PutUint64(key[1:], uint64(view))
	return key
}

func (s *PebbleStorage) get(key []byte, value interface{}) error {
	raw, closer, err := s.db.Get(key)
	if errors.Is(err, pebble.ErrNotFound) {
		return types.ErrNotFound
	}
	if err != nil {
		return err
	}
	defer closer.Close()
	return s.codec.Unmarshal(raw, value)
}

func (s *PebbleStorage) put(key []byte, value interface{}) error {
	raw, err := s.codec.Marshal(value)
	if err != nil {
		return err
	}
	return s.db.Set(key, raw, pebble.Sync)
}

// insert writes value unless the key is already present
func (s *PebbleStorage) insert(key []byte, value interface{}) error {
	_, closer, err := s.db.Get(key)
	if err == nil {
		closer.Close()
		return types.ErrAlreadyExists
	}
	if !errors.Is(err, pebble.ErrNotFound) {
		return err
	}
	return s.put(key, value)
}

// LoadConfig returns the saved network config
func (s *PebbleStorage) LoadConfig(_ context.Context) (*types.NetworkConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var cfg types.NetworkConfig
	if err := s.get([]byte{prefixConfig}, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig stores the network config, replacing any previous one
func (s *PebbleStorage) SaveConfig(_ context.Context, cfg types.NetworkConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.put([]byte{prefixConfig}, cfg)
}

// AppendDA stores the DA proposal of a view
func (s *PebbleStorage) AppendDA(_ context.Context, proposal types.Proposal[types.DAProposal]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(viewKey(prefixDA, proposal.Data.View), proposal)
}

// AppendVID stores the VID share of a view
func (s *PebbleStorage) AppendVID(_ context.Context, share types.Proposal[types.VidDisperseShare]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(viewKey(prefixVID, share.Data.View), share)
}

// RecordAction remembers the highest view voted or proposed in
func (s *PebbleStorage) RecordAction(_ context.Context, view types.View, action types.Action) error {
	if !action.IsVoteOrPropose() {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var current latestAction
	err := s.get([]byte{prefixLatestAction}, &current)
	switch {
	case errors.Is(err, types.ErrNotFound):
	case err != nil:
		return err
	case current.View >= view:
		return nil
	}
	return s.put([]byte{prefixLatestAction}, latestAction{View: view, Action: action})
}

// LoadDAProposal loads the DA proposal of a view
func (s *PebbleStorage) LoadDAProposal(_ context.Context, view types.View) (*types.Proposal[types.DAProposal], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var p types.Proposal[types.DAProposal]
	if err := s.get(viewKey(prefixDA, view), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadVIDShare loads the VID share of a view
func (s *PebbleStorage) LoadVIDShare(_ context.Context, view types.View) (*types.Proposal[types.VidDisperseShare], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var p types.Proposal[types.VidDisperseShare]
	if err := s.get(viewKey(prefixVID, view), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadLatestAction returns the last recorded vote or proposal
func (s *PebbleStorage) LoadLatestAction(_ context.Context) (types.View, types.Action, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var current latestAction
	if err := s.get([]byte{prefixLatestAction}, &current); err != nil {
		return 0, 0, err
	}
	return current.View, current.Action, nil
}

// Close flushes and closes the store
func (s *PebbleStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codec.Close()
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close pebble: %w", err)
	}
	return nil
}
