package flatdoc_test

import (
	"testing"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/flatdoc"
	"github.com/ehsanranjbar/flatdoc/testutil"
	"github.com/stretchr/testify/require"
)

func TestNameRegistry(t *testing.T) {
	db := testutil.OpenDB(t)

	nreg, err := flatdoc.NewNameRegistry(db)
	t.Run("Init", func(t *testing.T) {
		require.NoError(t, err)

		prefix, err := nreg.Name("docs")
		require.NoError(t, err)
		require.Equal(t, []byte{0x01}, prefix)

		prefix = nreg.MustName("paths")
		require.Equal(t, []byte{0x02}, prefix)

		prefix, err = nreg.Name("docs")
		require.NoError(t, err)
		require.Equal(t, []byte{0x01}, prefix)
	})

	t.Run("Reload", func(t *testing.T) {
		nreg2, err := flatdoc.NewNameRegistry(db)
		require.NoError(t, err)

		prefix, ok := nreg2.Lookup("paths")
		require.True(t, ok)
		require.Equal(t, []byte{0x02}, prefix)

		_, ok = nreg2.Lookup("ords")
		require.False(t, ok)
	})

	t.Run("SubRegistry", func(t *testing.T) {
		nreg2, err := flatdoc.NewNameRegistry(db, flatdoc.WithRegistryPrefix(nreg.MustName("branch")))
		require.NoError(t, err)

		prefix, err := nreg2.Name("docs")
		require.NoError(t, err)
		require.Equal(t, []byte{0x01}, prefix)

		prefix = nreg2.MustName("paths")
		require.Equal(t, []byte{0x02}, prefix)
	})

	t.Run("Keys", func(t *testing.T) {
		var keys [][]byte
		err := db.View(func(txn *badger.Txn) error {
			it := txn.NewIterator(badger.DefaultIteratorOptions)
			defer it.Close()

			for it.Rewind(); it.Valid(); it.Next() {
				keys = append(keys, it.Item().KeyCopy(nil))
			}
			return nil
		})
		require.NoError(t, err)
		require.Equal(t, [][]byte{
			{0x00},
			{0x03},
		}, keys)
	})
}

func TestNameRegistryFull(t *testing.T) {
	db := testutil.OpenDB(t)

	nreg, err := flatdoc.NewNameRegistry(db, flatdoc.WithRegistryKeyLen(1))
	require.NoError(t, err)

	for i := 0; i < 255; i++ {
		_, err := nreg.Name(string(rune('a' + i)))
		require.NoError(t, err)
	}

	_, err = nreg.Name("overflow")
	require.ErrorIs(t, err, flatdoc.ErrRegistryFull)

	_, err = flatdoc.NewNameRegistry(db, flatdoc.WithRegistryKeyLen(0))
	require.Error(t, err)
}
