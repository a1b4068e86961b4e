package store

import (
	"fmt"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/flatdoc"
	"github.com/ehsanranjbar/flatdoc/codec/lex"
	"github.com/google/uuid"
)

// Iterator is an iterator over the records of a store in ordinal order.
// Seek takes a big endian encoded ordinal.
type Iterator struct {
	in          *Instance
	base        *flatdoc.PrefixIterator
	cachedValue *Record
}

var _ flatdoc.Iterator[uuid.UUID, *Record] = (*Iterator)(nil)

func newIterator(in *Instance) *Iterator {
	return &Iterator{
		in:   in,
		base: flatdoc.NewPrefixIterator(in.ords, badger.DefaultIteratorOptions),
	}
}

// Close implements the Iterator interface.
func (it *Iterator) Close() {
	it.base.Close()
}

// Item returns the ordinal item of the current record.
func (it *Iterator) Item() *badger.Item {
	return it.base.Item()
}

// Next implements the Iterator interface.
func (it *Iterator) Next() {
	it.base.Next()
	it.cachedValue = nil
}

// Rewind implements the Iterator interface.
func (it *Iterator) Rewind() {
	it.base.Rewind()
	it.cachedValue = nil
}

// Seek implements the Iterator interface.
func (it *Iterator) Seek(key []byte) {
	it.base.Seek(key)
	it.cachedValue = nil
}

// Valid implements the Iterator interface.
func (it *Iterator) Valid() bool {
	return it.base.Valid()
}

// Key returns the id of the current record, or uuid.Nil if it can not be decoded.
func (it *Iterator) Key() uuid.UUID {
	id, err := it.id()
	if err != nil {
		return uuid.Nil
	}
	return id
}

// Ord returns the ordinal of the current record.
func (it *Iterator) Ord() (uint32, error) {
	return lex.ParseUint32(it.base.Key())
}

func (it *Iterator) id() (uuid.UUID, error) {
	var id uuid.UUID
	err := it.base.Item().Value(func(val []byte) error {
		var err error
		id, err = uuid.FromBytes(val)
		return err
	})
	return id, err
}

// Value returns the current record.
func (it *Iterator) Value() (*Record, error) {
	if it.cachedValue != nil {
		return it.cachedValue, nil
	}

	id, err := it.id()
	if err != nil {
		return nil, fmt.Errorf("failed to decode id: %w", err)
	}
	r, err := it.in.Get(id)
	if err != nil {
		return nil, err
	}
	it.cachedValue = r
	return r, nil
}
