package flatdoc

import (
	badger "github.com/dgraph-io/badger/v4"
)

// PrefixStore is a store that prefixes all keys with a given prefix.
type PrefixStore struct {
	base   Store
	prefix []byte
}

// NewPrefixStore creates a new PrefixStore.
func NewPrefixStore(store Store, prefix []byte) *PrefixStore {
	return &PrefixStore{
		base:   store,
		prefix: prefix,
	}
}

// Prefix returns the prefix of the store.
func (s *PrefixStore) Prefix() []byte {
	return s.prefix
}

// Delete deletes the key from the store.
func (s *PrefixStore) Delete(key []byte) error {
	return s.base.Delete(s.key(key))
}

// Get gets the key from the store.
func (s *PrefixStore) Get(key []byte) (*badger.Item, error) {
	return s.base.Get(s.key(key))
}

// NewIterator creates an iterator over the keys of the store. The prefix of
// opts is relative to the store's prefix.
func (s *PrefixStore) NewIterator(opts badger.IteratorOptions) *badger.Iterator {
	opts.Prefix = s.key(opts.Prefix)
	return s.base.NewIterator(opts)
}

// Set sets the key in the store.
func (s *PrefixStore) Set(key, value []byte) error {
	return s.base.Set(s.key(key), value)
}

// SetEntry sets the entry in the store.
func (s *PrefixStore) SetEntry(e *badger.Entry) error {
	e.Key = s.key(e.Key)
	return s.base.SetEntry(e)
}

func (s *PrefixStore) key(key []byte) []byte {
	k := make([]byte, 0, len(s.prefix)+len(key))
	k = append(k, s.prefix...)
	return append(k, key...)
}
