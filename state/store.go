package state

import (
	"errors"
	"fmt"
	"sync"

	"github.com/0xPolygon/zkevm-sequencer-core/log"
	"github.com/0xPolygon/zkevm-sequencer-core/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/rawdb"
	ethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethdb"
	"github.com/ethereum/go-ethereum/ethdb/memorydb"
	"github.com/ethereum/go-ethereum/trie"
	"github.com/ethereum/go-ethereum/trie/trienode"
)

const archiveNamespace = "sequencer/archive/"

// Store holds the nodes of every fee ledger known to the node. States are
// immutable roots into the store.
type Store struct {
	diskdb    ethdb.Database
	triedb    *trie.Database
	archive   ethdb.Database
	archiveDB *trie.Database

	mu sync.Mutex
}

// NewStore creates a store on top of diskdb. If archive is not nil every
// committed or remembered node is also written there.
func NewStore(diskdb ethdb.Database, archive ethdb.Database) *Store {
	s := &Store{
		diskdb:  diskdb,
		triedb:  trie.NewDatabase(diskdb, nil),
		archive: archive,
	}
	if archive != nil {
		s.archiveDB = trie.NewDatabase(archive, nil)
	}
	return s
}

// NewMemoryStore creates an in memory store without archive
func NewMemoryStore() *Store {
	return NewStore(rawdb.NewMemoryDatabase(), nil)
}

// OpenStore creates an in memory store backed by the on disk archive
// configured in cfg, if any.
func OpenStore(cfg Config) (*Store, error) {
	if cfg.ArchivePath == "" {
		return NewMemoryStore(), nil
	}
	archive, err := rawdb.NewLevelDBDatabase(cfg.ArchivePath, cfg.ArchiveCache, cfg.ArchiveHandles, archiveNamespace, false)
	if err != nil {
		return nil, fmt.Errorf("opening state archive %s: %w", cfg.ArchivePath, err)
	}
	log.Infof("state archive opened at %s", cfg.ArchivePath)
	return NewStore(rawdb.NewMemoryDatabase(), archive), nil
}

// Archive returns the database retaining the ledger history, or nil
func (s *Store) Archive() ethdb.Database {
	return s.archive
}

// Close releases the underlying databases
func (s *Store) Close() error {
	var errs []error
	if err := s.triedb.Close(); err != nil {
		errs = append(errs, err)
	}
	if err := s.diskdb.Close(); err != nil {
		errs = append(errs, err)
	}
	if s.archive != nil {
		if err := s.archiveDB.Close(); err != nil {
			errs = append(errs, err)
		}
		if err := s.archive.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Store) open(root common.Hash) (*trie.Trie, error) {
	return trie.New(trie.TrieID(root), s.triedb)
}

// commit persists the nodes of t, whose previous root was parent, and
// returns the new root.
func (s *Store) commit(t *trie.Trie, parent common.Hash, height uint64) (common.Hash, error) {
	root, set, err := t.Commit(false)
	if err != nil {
		return common.Hash{}, err
	}
	if set == nil || root == parent || root == ethTypes.EmptyRootHash {
		return root, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.triedb.Update(root, parent, height, trienode.NewWithNodeSet(set), nil); err != nil {
		return common.Hash{}, err
	}
	if err := s.triedb.Commit(root, false); err != nil {
		return common.Hash{}, err
	}
	if s.archive != nil {
		batch := s.archive.NewBatch()
		for _, n := range set.Nodes {
			if n.IsDeleted() {
				continue
			}
			rawdb.WriteLegacyTrieNode(batch, n.Hash, n.Blob)
		}
		if err := batch.Write(); err != nil {
			return common.Hash{}, fmt.Errorf("writing archive: %w", err)
		}
	}
	return root, nil
}

// Prove returns the Merkle paths of accounts in the ledger with the given root
func (s *Store) Prove(height uint64, root common.Hash, accounts []common.Address) (*types.StateFragment, error) {
	return prove(s.triedb, height, root, accounts)
}

// ProveFromArchive is like Prove but only reads the archive
func (s *Store) ProveFromArchive(height uint64, root common.Hash, accounts []common.Address) (*types.StateFragment, error) {
	if s.archive == nil {
		return nil, fmt.Errorf("%w: no archive configured", types.ErrMerkleTree)
	}
	return prove(s.archiveDB, height, root, accounts)
}

func prove(db *trie.Database, height uint64, root common.Hash, accounts []common.Address) (*types.StateFragment, error) {
	t, err := trie.New(trie.TrieID(root), db)
	if err != nil {
		return nil, fmt.Errorf("%w: opening ledger %s: %w", types.ErrMerkleTree, root, err)
	}
	fragment := &types.StateFragment{
		Height:   height,
		Root:     root,
		Accounts: make([]types.AccountProof, 0, len(accounts)),
	}
	for _, account := range accounts {
		var proof proofList
		if err := t.Prove(accountKey(account), &proof); err != nil {
			return nil, fmt.Errorf("%w: proving %s: %w", types.ErrMerkleTree, account, err)
		}
		fragment.Accounts = append(fragment.Accounts, types.AccountProof{Account: account, Proof: proof})
	}
	return fragment, nil
}

// Remember verifies fragment against its root and stores its nodes, making
// the proven accounts available locally.
func (s *Store) Remember(fragment *types.StateFragment) error {
	if err := VerifyFragment(fragment.Root, fragment); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	batch := s.diskdb.NewBatch()
	var archiveBatch ethdb.Batch
	if s.archive != nil {
		archiveBatch = s.archive.NewBatch()
	}
	for _, account := range fragment.Accounts {
		for _, node := range account.Proof {
			hash := crypto.Keccak256Hash(node)
			rawdb.WriteLegacyTrieNode(batch, hash, node)
			if archiveBatch != nil {
				rawdb.WriteLegacyTrieNode(archiveBatch, hash, node)
			}
		}
	}
	if err := batch.Write(); err != nil {
		return fmt.Errorf("%w: storing fragment: %w", types.ErrMerkleTree, err)
	}
	if archiveBatch != nil {
		if err := archiveBatch.Write(); err != nil {
			return fmt.Errorf("%w: archiving fragment: %w", types.ErrMerkleTree, err)
		}
	}
	return nil
}

// VerifyFragment checks that fragment proves every one of its accounts
// against root.
func VerifyFragment(root common.Hash, fragment *types.StateFragment) error {
	if fragment == nil {
		return fmt.Errorf("%w: nil fragment", types.ErrMerkleTree)
	}
	if fragment.Root != root {
		return fmt.Errorf("%w: fragment root %s, expected %s", types.ErrMerkleTree, fragment.Root, root)
	}
	for _, account := range fragment.Accounts {
		db := memorydb.New()
		for _, node := range account.Proof {
			if err := db.Put(crypto.Keccak256(node), node); err != nil {
				return err
			}
		}
		value, err := trie.VerifyProof(root, accountKey(account.Account), db)
		if err != nil {
			return fmt.Errorf("%w: invalid proof for %s: %w", types.ErrMerkleTree, account.Account, err)
		}
		if value != nil && len(value) != balanceSize {
			return fmt.Errorf("%w: malformed balance for %s", types.ErrMerkleTree, account.Account)
		}
	}
	return nil
}

func accountKey(account common.Address) []byte {
	return crypto.Keccak256(account.Bytes())
}

// proofList collects the nodes of a Merkle proof
type proofList []hexutil.Bytes

func (n *proofList) Put(key []byte, value []byte) error {
	*n = append(*n, common.CopyBytes(value))
	return nil
}

func (n *proofList) Delete(key []byte) error {
	panic("not supported")
}
