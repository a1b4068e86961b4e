package iters

import (
	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/flatdoc"
	"github.com/ehsanranjbar/flatdoc/codec/lex"
)

// Slice returns an iterator over the items of s keyed by their index.
// Seek expects a big endian uint32 index. It has no badger items.
func Slice[T any](s []T) flatdoc.Iterator[int, T] {
	return &sliceIterator[T]{s: s}
}

type sliceIterator[T any] struct {
	s []T
	i int
}

// Close implements the Iterator interface.
func (it *sliceIterator[T]) Close() {}

// Item implements the Iterator interface.
func (it *sliceIterator[T]) Item() *badger.Item {
	return nil
}

// Next implements the Iterator interface.
func (it *sliceIterator[T]) Next() {
	it.i++
}

// Rewind implements the Iterator interface.
func (it *sliceIterator[T]) Rewind() {
	it.i = 0
}

// Seek implements the Iterator interface.
func (it *sliceIterator[T]) Seek(key []byte) {
	if len(key) < 4 {
		it.i = 0
		return
	}
	it.i = int(lex.DecodeUint32(key))
}

// Valid implements the Iterator interface.
func (it *sliceIterator[T]) Valid() bool {
	return it.i < len(it.s)
}

// Key implements the Iterator interface.
func (it *sliceIterator[T]) Key() int {
	return it.i
}

// Value implements the Iterator interface.
func (it *sliceIterator[T]) Value() (value T, err error) {
	return it.s[it.i], nil
}
