// Package flatdoc holds the storage primitives shared by the flattened
// document store: key-value and iterator interfaces over badger, key
// prefixing and a registry of short key prefixes.
package flatdoc

import (
	badger "github.com/dgraph-io/badger/v4"
)

// Store is the generalized interface that represents a key-value store with get, set, delete and iterate operations.
// *badger.Txn satisfies it.
type Store interface {
	Delete(key []byte) error
	Get(key []byte) (item *badger.Item, err error)
	NewIterator(opts badger.IteratorOptions) *badger.Iterator
	Set(key, value []byte) error
	SetEntry(e *badger.Entry) error
}
