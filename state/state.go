package state

import (
	"context"
	"errors"
	"fmt"

	localCommon "github.com/0xPolygon/zkevm-sequencer-core/common"
	"github.com/0xPolygon/zkevm-sequencer-core/log"
	"github.com/0xPolygon/zkevm-sequencer-core/metrics"
	"github.com/0xPolygon/zkevm-sequencer-core/types"
	"github.com/ethereum/go-ethereum/common"
	ethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/trie"
	"github.com/holiman/uint256"
)

const balanceSize = 32

// MaxBalance is the balance given to prefunded accounts
var MaxBalance = new(uint256.Int).SetAllOne()

// ValidatedState is the fee ledger after a given block. It never changes:
// applying transactions returns a new state.
type ValidatedState struct {
	store       *Store
	root        common.Hash
	chainConfig types.ChainConfig
}

// Genesis creates the ledger of the genesis block, giving MaxBalance to
// every prefunded account.
func Genesis(store *Store, chainConfig types.ChainConfig, prefunded []common.Address) (*ValidatedState, error) {
	t, err := store.open(ethTypes.EmptyRootHash)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrMerkleTree, err)
	}
	for _, account := range localCommon.Dedup(prefunded) {
		log.Warnf("prefunding account %s with max balance, for testing only", account)
		if err := t.Update(accountKey(account), encodeBalance(MaxBalance)); err != nil {
			return nil, fmt.Errorf("%w: prefunding %s: %w", types.ErrMerkleTree, account, err)
		}
	}
	root, err := store.commit(t, ethTypes.EmptyRootHash, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrMerkleTree, err)
	}
	return &ValidatedState{store: store, root: root, chainConfig: chainConfig}, nil
}

// FromCommitment creates a state known only by its root. Accounts are
// materialized on demand through catchup.
func FromCommitment(store *Store, root common.Hash, chainConfig types.ChainConfig) *ValidatedState {
	return &ValidatedState{store: store, root: root, chainConfig: chainConfig}
}

// Commit returns the root of the fee ledger
func (s *ValidatedState) Commit() common.Hash {
	return s.root
}

// ChainConfig returns the chain config the state was created with
func (s *ValidatedState) ChainConfig() types.ChainConfig {
	return s.chainConfig
}

// Store returns the node store backing the state
func (s *ValidatedState) Store() *Store {
	return s.store
}

// Balance returns the balance of account. It fails with ErrMerkleTree if
// the account is not materialized locally.
func (s *ValidatedState) Balance(account common.Address) (*uint256.Int, error) {
	t, err := s.store.open(s.root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrMerkleTree, err)
	}
	return getBalance(t, account)
}

// Prove returns the Merkle paths of accounts against this state's root
func (s *ValidatedState) Prove(height uint64, accounts []common.Address) (*types.StateFragment, error) {
	return s.store.Prove(height, s.root, accounts)
}

// Remember stores the nodes of a fragment proving accounts of this state
func (s *ValidatedState) Remember(fragment *types.StateFragment) error {
	if fragment.Root != s.root {
		return fmt.Errorf("%w: fragment root %s, state root %s", types.ErrMerkleTree, fragment.Root, s.root)
	}
	return s.store.Remember(fragment)
}

// Apply applies the transactions of block on top of this state, which must
// be the state of the parent block.
func (s *ValidatedState) Apply(ctx context.Context, catchup types.StateCatchup, block *types.Header, txns []types.Transaction) (*ValidatedState, error) {
	parentHeight := uint64(0)
	if block.Height > 0 {
		parentHeight = block.Height - 1
	}
	return s.ApplyTransactions(ctx, catchup, parentHeight, txns)
}

// ApplyTransactions applies the fee transfers in txns. Accounts not present
// locally are fetched in a single catchup request for parentHeight. A
// transfer that would overdraw its source is skipped.
func (s *ValidatedState) ApplyTransactions(ctx context.Context, catchup types.StateCatchup, parentHeight uint64, txns []types.Transaction) (*ValidatedState, error) {
	transfers := feeTransfers(txns)
	if len(transfers) == 0 {
		return s, nil
	}

	accounts := make([]common.Address, 0, 2*len(transfers))
	for _, transfer := range transfers {
		accounts = append(accounts, transfer.From, transfer.To)
	}
	accounts = localCommon.Dedup(accounts)

	if err := s.materialize(ctx, catchup, parentHeight, accounts); err != nil {
		return nil, err
	}

	t, err := s.store.open(s.root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrMerkleTree, err)
	}
	for _, transfer := range transfers {
		applied, err := applyTransfer(t, transfer)
		if err != nil {
			return nil, err
		}
		if applied {
			metrics.AppliedTransfers.Inc()
		} else {
			metrics.SkippedTransfers.Inc()
			log.Debugf("skipping fee transfer of %s from %s to %s", transfer.Amount, transfer.From, transfer.To)
		}
	}

	root, err := s.store.commit(t, s.root, parentHeight+1)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrMerkleTree, err)
	}
	return &ValidatedState{store: s.store, root: root, chainConfig: s.chainConfig}, nil
}

func (s *ValidatedState) materialize(ctx context.Context, catchup types.StateCatchup, height uint64, accounts []common.Address) error {
	missing, err := s.missingAccounts(accounts)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		return nil
	}
	if catchup == nil {
		return fmt.Errorf("%w: %d accounts missing and no catchup source", types.ErrMerkleTree, len(missing))
	}

	log.Debugf("catching up %d accounts of ledger %s at height %d", len(missing), s.root, height)
	fragment, err := catchup.Fetch(ctx, types.FetchRequest{Height: height, Root: s.root, Accounts: missing})
	if err != nil {
		return fmt.Errorf("%w: catching up %d accounts at height %d: %w", types.ErrMerkleTree, len(missing), height, err)
	}
	if err := s.Remember(fragment); err != nil {
		return err
	}

	missing, err = s.missingAccounts(missing)
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %d accounts still missing after catchup", types.ErrMerkleTree, len(missing))
	}
	return nil
}

// missingAccounts returns the accounts whose leaf, or proof of absence,
// isn't stored locally.
func (s *ValidatedState) missingAccounts(accounts []common.Address) ([]common.Address, error) {
	t, err := s.store.open(s.root)
	var missingErr *trie.MissingNodeError
	if errors.As(err, &missingErr) {
		return accounts, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrMerkleTree, err)
	}

	missing := make([]common.Address, 0)
	for _, account := range accounts {
		_, err := t.Get(accountKey(account))
		if errors.As(err, &missingErr) {
			missing = append(missing, account)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading %s: %w", types.ErrMerkleTree, account, err)
		}
	}
	return missing, nil
}

func feeTransfers(txns []types.Transaction) []*types.FeeTransfer {
	transfers := make([]*types.FeeTransfer, 0)
	for _, tx := range txns {
		if tx.Namespace != types.FeeNamespace {
			continue
		}
		transfer, err := tx.FeeTransfer()
		if err != nil {
			log.Debugf("ignoring malformed fee transaction %s: %v", tx.Commit(), err)
			continue
		}
		transfers = append(transfers, transfer)
	}
	return transfers
}

// applyTransfer returns false if the transfer can't be covered by the
// source balance or would overflow the destination.
func applyTransfer(t *trie.Trie, transfer *types.FeeTransfer) (bool, error) {
	amount, overflow := uint256.FromBig(transfer.Amount)
	if overflow || transfer.Amount.Sign() < 0 {
		return false, nil
	}
	fromBalance, err := getBalance(t, transfer.From)
	if err != nil {
		return false, err
	}
	if fromBalance.Lt(amount) {
		return false, nil
	}
	if transfer.From == transfer.To {
		return true, nil
	}
	toBalance, err := getBalance(t, transfer.To)
	if err != nil {
		return false, err
	}
	newTo, overflow := new(uint256.Int).AddOverflow(toBalance, amount)
	if overflow {
		return false, nil
	}
	newFrom := new(uint256.Int).Sub(fromBalance, amount)

	if err := t.Update(accountKey(transfer.From), encodeBalance(newFrom)); err != nil {
		return false, fmt.Errorf("%w: updating %s: %w", types.ErrMerkleTree, transfer.From, err)
	}
	if err := t.Update(accountKey(transfer.To), encodeBalance(newTo)); err != nil {
		return false, fmt.Errorf("%w: updating %s: %w", types.ErrMerkleTree, transfer.To, err)
	}
	return true, nil
}

func getBalance(t *trie.Trie, account common.Address) (*uint256.Int, error) {
	value, err := t.Get(accountKey(account))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %w", types.ErrMerkleTree, account, err)
	}
	if len(value) == 0 {
		return new(uint256.Int), nil
	}
	if len(value) != balanceSize {
		return nil, fmt.Errorf("%w: malformed balance of %s", types.ErrMerkleTree, account)
	}
	return new(uint256.Int).SetBytes32(value), nil
}

// balances are always stored with their full width so that a leaf is never
// deleted
func encodeBalance(balance *uint256.Int) []byte {
	b := balance.Bytes32()
	return b[:]
}
