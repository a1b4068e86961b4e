package iters_test

import (
	"testing"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/flatdoc/iters"
	"github.com/stretchr/testify/require"
)

func TestLimit(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want []string
	}{
		{name: "One", n: 1, want: []string{"a"}},
		{name: "Exact", n: 3, want: []string{"a", "b", "c"}},
		{name: "Larger", n: 10, want: []string{"a", "b", "c"}},
		{name: "Unbounded", n: 0, want: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			iter := iters.Limit(iters.Slice([]string{"a", "b", "c"}), tt.n)
			defer iter.Close()

			got, err := iters.Collect(iter)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestLimitOverFilter(t *testing.T) {
	iter := iters.Limit(
		iters.Filter(iters.Slice([]int{1, 2, 3, 4, 5, 6}), func(v int, _ *badger.Item) bool {
			return v > 2
		}),
		2,
	)
	defer iter.Close()

	got, err := iters.Collect(iter)
	require.NoError(t, err)
	require.Equal(t, []int{3, 4}, got)
}
