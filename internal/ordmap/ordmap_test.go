package ordmap_test

import (
	"testing"

	"github.com/ehsanranjbar/flatdoc/internal/ordmap"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	m := ordmap.New[string, int]()

	t.Run("Add", func(t *testing.T) {
		require.NoError(t, m.Add("b", 1))
		require.NoError(t, m.Add("a", 2))
		require.NoError(t, m.Add("c", 3))
		require.ErrorIs(t, m.Add("a", 4), ordmap.ErrKeyExists)
		require.Equal(t, 3, m.Len())
	})

	t.Run("Get", func(t *testing.T) {
		v, ok := m.Get("a")
		require.True(t, ok)
		require.Equal(t, 2, v)

		_, ok = m.Get("d")
		require.False(t, ok)
		require.True(t, m.Has("c"))
		require.False(t, m.Has("d"))
	})

	t.Run("Order", func(t *testing.T) {
		require.Equal(t, []string{"b", "a", "c"}, m.Keys())

		var values []int
		for _, v := range m.Iter() {
			values = append(values, v)
		}
		require.Equal(t, []int{1, 2, 3}, values)
	})

	t.Run("Break", func(t *testing.T) {
		var keys []string
		for k := range m.Iter() {
			keys = append(keys, k)
			break
		}
		require.Equal(t, []string{"b"}, keys)
	})
}
