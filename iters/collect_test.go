package iters_test

import (
	"fmt"
	"testing"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/flatdoc"
	"github.com/ehsanranjbar/flatdoc/iters"
	"github.com/stretchr/testify/require"
)

type MockIterator[T any] struct {
	Items []T
	i     int
	err   error
}

var _ flatdoc.Iterator[int, string] = (*MockIterator[string])(nil)

func NewMockIterator[T any](items []T) *MockIterator[T] {
	return &MockIterator[T]{Items: items}
}

func (it *MockIterator[T]) Close() {}

func (it *MockIterator[T]) Item() *badger.Item {
	return nil
}

func (it *MockIterator[T]) Next() {
	it.i++
}

func (it *MockIterator[T]) Rewind() {
	it.i = 0
}

func (it *MockIterator[T]) Seek(key []byte) {}

func (it *MockIterator[T]) Valid() bool {
	return it.i < len(it.Items)
}

func (it *MockIterator[T]) Key() int {
	return it.i
}

func (it *MockIterator[T]) Value() (value T, err error) {
	if it.i < len(it.Items) {
		return it.Items[it.i], it.err
	}
	return value, fmt.Errorf("out of bounds")
}

func TestCollect(t *testing.T) {
	var (
		items = []int{1, 2, 3}
		it    = NewMockIterator(items)
	)

	collected, err := iters.Collect(it)
	require.NoError(t, err)
	require.Equal(t, items, collected)

	require.Equal(t, []int{0, 1, 2}, iters.CollectKeys[int, int](it))

	it.err = fmt.Errorf("failed to decode")
	_, err = iters.Collect(it)
	require.Error(t, err)
}

func TestSlice(t *testing.T) {
	it := iters.Slice([]string{"a", "b", "c"})

	collected, err := iters.Collect(it)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, collected)

	it.Seek([]byte{0, 0, 0, 2})
	require.True(t, it.Valid())
	require.Equal(t, 2, it.Key())
	require.Nil(t, it.Item())
}
