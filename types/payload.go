package types

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	lenPrefixSize  = 4
	nsEntrySize    = 8 + 4
	nsTableLenSize = 4
)

var (
	// ErrInvalidNamespaceTable is returned when a table can't be decoded or is inconsistent with its payload
	ErrInvalidNamespaceTable = errors.New("invalid namespace table")
	// ErrInvalidPayload is returned when the payload bytes don't match their table
	ErrInvalidPayload = errors.New("invalid payload")
)

// NamespaceEntry gives the end offset of a namespace inside the payload.
type NamespaceEntry struct {
	Namespace NamespaceID `json:"namespace"`
	Offset    uint32      `json:"offset"`
}

// NamespaceTable lists the namespaces of a payload in ascending order.
type NamespaceTable []NamespaceEntry

// Encode returns the binary form of the table: entry count followed by
// (namespace, end offset) pairs, all big endian.
func (t NamespaceTable) Encode() []byte {
	out := make([]byte, nsTableLenSize+len(t)*nsEntrySize)
	binary.BigEndian.PutUint32(out, uint32(len(t)))
	pos := nsTableLenSize
	for _, e := range t {
		binary.BigEndian.PutUint64(out[pos:], uint64(e.Namespace))
		binary.BigEndian.PutUint32(out[pos+8:], e.Offset)
		pos += nsEntrySize
	}
	return out
}

// DecodeNamespaceTable parses the output of NamespaceTable.Encode.
func DecodeNamespaceTable(data []byte) (NamespaceTable, error) {
	if len(data) < nsTableLenSize {
		return nil, fmt.Errorf("%w: short table", ErrInvalidNamespaceTable)
	}
	n := binary.BigEndian.Uint32(data)
	if uint64(len(data)) != nsTableLenSize+uint64(n)*nsEntrySize {
		return nil, fmt.Errorf("%w: %d entries in %d bytes", ErrInvalidNamespaceTable, n, len(data))
	}
	table := make(NamespaceTable, 0, n)
	pos := nsTableLenSize
	for i := uint32(0); i < n; i++ {
		table = append(table, NamespaceEntry{
			Namespace: NamespaceID(binary.BigEndian.Uint64(data[pos:])),
			Offset:    binary.BigEndian.Uint32(data[pos+8:]),
		})
		pos += nsEntrySize
	}
	if err := table.check(); err != nil {
		return nil, err
	}
	return table, nil
}

func (t NamespaceTable) check() error {
	for i := 1; i < len(t); i++ {
		if t[i].Namespace <= t[i-1].Namespace {
			return fmt.Errorf("%w: namespaces not ascending at entry %d", ErrInvalidNamespaceTable, i)
		}
		if t[i].Offset < t[i-1].Offset {
			return fmt.Errorf("%w: offsets decreasing at entry %d", ErrInvalidNamespaceTable, i)
		}
	}
	return nil
}

// Range returns the byte range of ns inside the payload.
func (t NamespaceTable) Range(ns NamespaceID) (start, end uint32, ok bool) {
	for i, e := range t {
		if e.Namespace == ns {
			if i > 0 {
				start = t[i-1].Offset
			}
			return start, e.Offset, true
		}
	}
	return 0, 0, false
}

// Equal compares two tables entry by entry.
func (t NamespaceTable) Equal(other NamespaceTable) bool {
	if len(t) != len(other) {
		return false
	}
	for i := range t {
		if t[i] != other[i] {
			return false
		}
	}
	return true
}

// Payload is the serialized content of a block.
type Payload struct {
	Raw hexutil.Bytes `json:"raw"`
}

// NewPayload groups txns by ascending namespace, keeping the relative order
// of transactions inside a namespace, and length-prefixes each of them.
func NewPayload(txns []Transaction) (Payload, NamespaceTable, error) {
	byNs := make(map[NamespaceID][]Transaction)
	namespaces := make([]NamespaceID, 0)
	for _, tx := range txns {
		if _, found := byNs[tx.Namespace]; !found {
			namespaces = append(namespaces, tx.Namespace)
		}
		byNs[tx.Namespace] = append(byNs[tx.Namespace], tx)
	}
	sort.Slice(namespaces, func(i, j int) bool { return namespaces[i] < namespaces[j] })

	raw := make([]byte, 0)
	table := make(NamespaceTable, 0, len(namespaces))
	for _, ns := range namespaces {
		for _, tx := range byNs[ns] {
			if len(tx.Payload) > math.MaxUint32 {
				return Payload{}, nil, fmt.Errorf("%w: transaction too large", ErrInvalidPayload)
			}
			var prefix [lenPrefixSize]byte
			binary.BigEndian.PutUint32(prefix[:], uint32(len(tx.Payload)))
			raw = append(raw, prefix[:]...)
			raw = append(raw, tx.Payload...)
		}
		if len(raw) > math.MaxUint32 {
			return Payload{}, nil, fmt.Errorf("%w: payload too large", ErrInvalidPayload)
		}
		table = append(table, NamespaceEntry{Namespace: ns, Offset: uint32(len(raw))})
	}
	return Payload{Raw: raw}, table, nil
}

// Size in bytes
func (p Payload) Size() uint64 {
	return uint64(len(p.Raw))
}

// Commit returns the payload commitment embedded in headers.
func (p Payload) Commit() common.Hash {
	return crypto.Keccak256Hash([]byte("PAYLOAD"), p.Raw)
}

// Transactions decodes every transaction of the payload.
func (p Payload) Transactions(table NamespaceTable) ([]Transaction, error) {
	if err := table.check(); err != nil {
		return nil, err
	}
	if len(table) > 0 && uint64(table[len(table)-1].Offset) != p.Size() {
		return nil, fmt.Errorf("%w: table covers %d of %d bytes", ErrInvalidPayload, table[len(table)-1].Offset, p.Size())
	}
	if len(table) == 0 && p.Size() != 0 {
		return nil, fmt.Errorf("%w: bytes without namespaces", ErrInvalidPayload)
	}
	txns := make([]Transaction, 0)
	for _, e := range table {
		nsTxns, err := p.NamespaceTransactions(table, e.Namespace)
		if err != nil {
			return nil, err
		}
		txns = append(txns, nsTxns...)
	}
	return txns, nil
}

// NamespaceTransactions decodes the transactions of a single namespace.
func (p Payload) NamespaceTransactions(table NamespaceTable, ns NamespaceID) ([]Transaction, error) {
	start, end, ok := table.Range(ns)
	if !ok {
		return nil, nil
	}
	if start > end || uint64(end) > p.Size() {
		return nil, fmt.Errorf("%w: namespace %d out of bounds", ErrInvalidPayload, ns)
	}
	txns := make([]Transaction, 0)
	data := p.Raw[start:end]
	for len(data) > 0 {
		if len(data) < lenPrefixSize {
			return nil, fmt.Errorf("%w: truncated length prefix in namespace %d", ErrInvalidPayload, ns)
		}
		n := binary.BigEndian.Uint32(data)
		data = data[lenPrefixSize:]
		if uint64(n) > uint64(len(data)) {
			return nil, fmt.Errorf("%w: truncated transaction in namespace %d", ErrInvalidPayload, ns)
		}
		txns = append(txns, Transaction{Namespace: ns, Payload: common.CopyBytes(data[:n])})
		data = data[n:]
	}
	return txns, nil
}
