// Package testutil provides in-memory badger helpers for tests.
package testutil

import (
	"testing"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

// OpenDB opens an in-memory BadgerDB that is closed when the test ends.
func OpenDB(t testing.TB) *badger.DB {
	opt := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opt)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

// PrepareTxn creates an in-memory BadgerDB and a transaction for testing.
func PrepareTxn(t testing.TB, update bool) *badger.Txn {
	db := OpenDB(t)

	txn := db.NewTransaction(update)
	t.Cleanup(func() {
		txn.Discard()
	})
	return txn
}
