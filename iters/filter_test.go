package iters_test

import (
	"fmt"
	"testing"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/flatdoc/iters"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	iter := iters.Filter(iters.Slice([]int{1, 2, 3, 4}), func(value int, _ *badger.Item) bool {
		return value%2 == 0
	})
	defer iter.Close()

	iter.Rewind()
	require.True(t, iter.Valid())
	require.Equal(t, 1, iter.Key())
	value, err := iter.Value()
	require.NoError(t, err)
	require.Equal(t, 2, value)

	iter.Next()
	require.True(t, iter.Valid())
	require.Equal(t, 3, iter.Key())

	iter.Next()
	require.False(t, iter.Valid())

	iter.Seek([]byte{0, 0, 0, 2})
	require.True(t, iter.Valid())
	require.Equal(t, 3, iter.Key())
}

func TestFilterSkipsFailedValues(t *testing.T) {
	base := NewMockIterator([]int{1, 2})
	base.err = fmt.Errorf("failed to decode")

	collected, err := iters.Collect(iters.Filter(base, func(int, *badger.Item) bool { return true }))
	require.NoError(t, err)
	require.Empty(t, collected)
}
