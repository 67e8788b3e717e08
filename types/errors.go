package types

import "errors"

var (
	// ErrNotFound when the object is not found
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists when the object already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrIncorrectParent is returned when a candidate header does not link to
	// the expected parent: chain config, payload or post-state commitment mismatch.
	ErrIncorrectParent = errors.New("incorrect parent")
	// ErrIncorrectView is returned when the height of a candidate header is not
	// exactly one above its parent or one of the monotonic fields goes backwards.
	ErrIncorrectView = errors.New("incorrect view")
	// ErrGenesisWrongSize is returned when the genesis block does not carry
	// exactly one transaction.
	ErrGenesisWrongSize = errors.New("genesis block has wrong size")
	// ErrMissingGenesis is returned when the genesis transaction is not present
	// in the genesis block.
	ErrMissingGenesis = errors.New("genesis transaction missing")
	// ErrUnexpectedGenesis is returned when the genesis transaction appears in a
	// block above height 0.
	ErrUnexpectedGenesis = errors.New("unexpected genesis transaction")
	// ErrMerkleTree is returned when the fee ledger could not be read or
	// updated, including when missing state could not be caught up.
	ErrMerkleTree = errors.New("merkle tree error")
	// ErrBlockBuilding is returned when a header or state could not be built
	// for reasons opaque to validation.
	ErrBlockBuilding = errors.New("block building failed")
	// ErrL1Unavailable is returned when the L1 is unreachable and no usable
	// cached block can serve the request.
	ErrL1Unavailable = errors.New("l1 unavailable")
	// ErrPersistence wraps every failure of the durable backend. Callers must
	// treat it as fatal.
	ErrPersistence = errors.New("persistence failure")
)
