package types

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

func TestPayloadRoundTrip(t *testing.T) {
	txns := []Transaction{
		NewTransaction(7, []byte("a")),
		NewTransaction(3, []byte("bb")),
		NewTransaction(7, []byte{}),
		NewTransaction(3, []byte("ccc")),
	}

	payload, table, err := NewPayload(txns)
	require.NoError(t, err)
	require.Len(t, table, 2)
	require.Equal(t, NamespaceID(3), table[0].Namespace)
	require.Equal(t, NamespaceID(7), table[1].Namespace)
	require.Equal(t, uint32(payload.Size()), table[1].Offset)

	decoded, err := payload.Transactions(table)
	require.NoError(t, err)
	require.Equal(t, []Transaction{txns[1], txns[3], txns[0], txns[2]}, decoded)

	ns7, err := payload.NamespaceTransactions(table, 7)
	require.NoError(t, err)
	require.Len(t, ns7, 2)

	missing, err := payload.NamespaceTransactions(table, 99)
	require.NoError(t, err)
	require.Empty(t, missing)
}

func TestPayloadCommitIgnoresInputOrderAcrossNamespaces(t *testing.T) {
	a := NewTransaction(1, []byte("x"))
	b := NewTransaction(2, []byte("y"))

	p1, t1, err := NewPayload([]Transaction{a, b})
	require.NoError(t, err)
	p2, t2, err := NewPayload([]Transaction{b, a})
	require.NoError(t, err)

	require.Equal(t, p1.Commit(), p2.Commit())
	require.True(t, t1.Equal(t2))
}

func TestEmptyPayload(t *testing.T) {
	payload, table, err := NewPayload(nil)
	require.NoError(t, err)
	require.Empty(t, table)
	require.Zero(t, payload.Size())

	txns, err := payload.Transactions(table)
	require.NoError(t, err)
	require.Empty(t, txns)
}

func TestPayloadTransactionsRejectsInconsistentTable(t *testing.T) {
	payload, table, err := NewPayload([]Transaction{NewTransaction(5, []byte("abc"))})
	require.NoError(t, err)

	short := NamespaceTable{{Namespace: 5, Offset: table[0].Offset - 1}}
	_, err = payload.Transactions(short)
	require.ErrorIs(t, err, ErrInvalidPayload)

	_, err = Payload{Raw: []byte{1, 2}}.Transactions(nil)
	require.ErrorIs(t, err, ErrInvalidPayload)
}

func TestNamespaceTableEncoding(t *testing.T) {
	table := NamespaceTable{
		{Namespace: 1, Offset: 10},
		{Namespace: 4, Offset: 10},
		{Namespace: 9, Offset: 32},
	}
	decoded, err := DecodeNamespaceTable(table.Encode())
	require.NoError(t, err)
	require.Equal(t, table, decoded)

	start, end, ok := table.Range(4)
	require.True(t, ok)
	require.Equal(t, uint32(10), start)
	require.Equal(t, uint32(10), end)

	start, end, ok = table.Range(1)
	require.True(t, ok)
	require.Zero(t, start)
	require.Equal(t, uint32(10), end)
}

func TestDecodeNamespaceTableErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "wrong length", data: []byte{0, 0, 0, 2, 1}},
		{name: "not ascending", data: NamespaceTable{{Namespace: 2, Offset: 1}, {Namespace: 2, Offset: 2}}.Encode()},
		{name: "offsets decreasing", data: NamespaceTable{{Namespace: 1, Offset: 5}, {Namespace: 2, Offset: 4}}.Encode()},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := DecodeNamespaceTable(test.data)
			require.ErrorIs(t, err, ErrInvalidNamespaceTable)
		})
	}
}

func TestFeeTransaction(t *testing.T) {
	from := common.HexToAddress("0xA")
	to := common.HexToAddress("0xB")

	tx, err := NewFeeTransaction(from, to, big.NewInt(100))
	require.NoError(t, err)
	require.Equal(t, FeeNamespace, tx.Namespace)
	require.False(t, tx.IsGenesis())

	transfer, err := tx.FeeTransfer()
	require.NoError(t, err)
	require.Equal(t, from, transfer.From)
	require.Equal(t, to, transfer.To)
	require.Equal(t, int64(100), transfer.Amount.Int64())

	_, err = NewFeeTransaction(from, to, big.NewInt(-1))
	require.Error(t, err)

	_, err = NewTransaction(42, []byte("x")).FeeTransfer()
	require.ErrorIs(t, err, ErrNotFeeTransfer)

	_, err = NewTransaction(FeeNamespace, []byte{0xff}).FeeTransfer()
	require.Error(t, err)
}

func TestGenesisTransaction(t *testing.T) {
	require.True(t, GenesisTransaction().IsGenesis())
	require.True(t, GenesisTransaction().InGenesisNamespace())

	forged := NewTransaction(GenesisNamespace, []byte("not the marker"))
	require.False(t, forged.IsGenesis())
	require.True(t, forged.InGenesisNamespace())
	require.Equal(t, GenesisTransaction().Commit(), GenesisTransaction().Commit())
	require.NotEqual(t, GenesisTransaction().Commit(), NewTransaction(1, []byte("genesis")).Commit())
}
