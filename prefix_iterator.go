package flatdoc

import (
	badger "github.com/dgraph-io/badger/v4"
)

// PrefixIterator is an iterator that trims the prefix of a PrefixStore from the keys.
type PrefixIterator struct {
	base   BadgerIterator
	prefix []byte
}

// NewPrefixIterator creates a new PrefixIterator over all keys of the store.
func NewPrefixIterator(store *PrefixStore, opts badger.IteratorOptions) *PrefixIterator {
	return &PrefixIterator{
		base:   store.NewIterator(opts),
		prefix: store.Prefix(),
	}
}

// Close implements the BadgerIterator interface.
func (it *PrefixIterator) Close() {
	it.base.Close()
}

// Item implements the BadgerIterator interface.
func (it *PrefixIterator) Item() *badger.Item {
	return it.base.Item()
}

// Next implements the BadgerIterator interface.
func (it *PrefixIterator) Next() {
	it.base.Next()
}

// Rewind implements the BadgerIterator interface.
func (it *PrefixIterator) Rewind() {
	it.base.Rewind()
}

// Seek seeks the key relative to the prefix.
func (it *PrefixIterator) Seek(key []byte) {
	k := make([]byte, 0, len(it.prefix)+len(key))
	k = append(k, it.prefix...)
	it.base.Seek(append(k, key...))
}

// Valid implements the BadgerIterator interface.
func (it *PrefixIterator) Valid() bool {
	return it.base.Valid()
}

// Key returns the current key without the prefix.
func (it *PrefixIterator) Key() []byte {
	return it.base.Item().KeyCopy(nil)[len(it.prefix):]
}
