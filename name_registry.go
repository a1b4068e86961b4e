package flatdoc

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/flatdoc/codec/lex"
	msgpack "github.com/vmihailenco/msgpack/v5"
)

// ErrRegistryFull is returned when every key of the configured length is taken.
var ErrRegistryFull = errors.New("name registry is full")

// NameRegistry associates a long string name with a unique sized byte slice.
// The associations are persisted under the registry prefix so that reopening
// a database hands out the same keys.
type NameRegistry struct {
	db      *badger.DB
	prefix  []byte
	keyLen  int
	nextKey []byte
	m       map[string][]byte
	mu      sync.Mutex
}

// NewNameRegistry creates a new NameRegistry.
func NewNameRegistry(db *badger.DB, opts ...func(*NameRegistry)) (*NameRegistry, error) {
	nreg := &NameRegistry{
		db:     db,
		keyLen: 1,
		m:      make(map[string][]byte),
	}
	for _, opt := range opts {
		opt(nreg)
	}
	if nreg.keyLen < 1 {
		return nil, fmt.Errorf("invalid key length %d", nreg.keyLen)
	}
	nreg.nextKey = lex.Increment(bytes.Repeat([]byte{0}, nreg.keyLen))

	err := nreg.load()
	if err != nil {
		return nil, fmt.Errorf("failed to load name registry: %w", err)
	}
	return nreg, nil
}

// WithRegistryPrefix sets the prefix for the NameRegistry.
func WithRegistryPrefix(prefix []byte) func(*NameRegistry) {
	return func(nreg *NameRegistry) {
		nreg.prefix = prefix
	}
}

// WithRegistryKeyLen sets the key length for the NameRegistry.
func WithRegistryKeyLen(keyLen int) func(*NameRegistry) {
	return func(nreg *NameRegistry) {
		nreg.keyLen = keyLen
	}
}

func (nreg *NameRegistry) load() error {
	return nreg.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(nreg.configKey())
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get config item: %w", err)
		}

		return item.Value(func(val []byte) error {
			dec := msgpack.GetDecoder()
			dec.Reset(bytes.NewReader(val))
			defer msgpack.PutDecoder(dec)

			err := dec.DecodeMulti(&nreg.m, &nreg.nextKey)
			if err != nil {
				return fmt.Errorf("failed to decode config: %w", err)
			}
			return nil
		})
	})
}

func (nreg *NameRegistry) configKey() []byte {
	if len(nreg.prefix) == 0 {
		return bytes.Repeat([]byte{0}, nreg.keyLen)
	}
	return nreg.prefix
}

// MustName is like Name but panics if an error occurs.
func (nreg *NameRegistry) MustName(name string) []byte {
	key, err := nreg.Name(name)
	if err != nil {
		panic(err)
	}
	return key
}

// Name associates a name with a unique key, allocating and persisting a new
// key the first time name is seen.
func (nreg *NameRegistry) Name(name string) ([]byte, error) {
	nreg.mu.Lock()
	defer nreg.mu.Unlock()

	if key, ok := nreg.m[name]; ok {
		return bytes.Clone(key), nil
	}

	if len(nreg.nextKey) > nreg.keyLen {
		return nil, ErrRegistryFull
	}

	key := bytes.Clone(nreg.nextKey)
	nreg.m[name] = key
	nreg.nextKey = lex.Increment(bytes.Clone(nreg.nextKey))

	err := nreg.update()
	if err != nil {
		delete(nreg.m, name)
		nreg.nextKey = key
		return nil, fmt.Errorf("failed to update name registry: %w", err)
	}

	return bytes.Clone(key), nil
}

// Lookup returns the key associated with name without allocating one.
func (nreg *NameRegistry) Lookup(name string) ([]byte, bool) {
	nreg.mu.Lock()
	defer nreg.mu.Unlock()

	key, ok := nreg.m[name]
	return bytes.Clone(key), ok
}

func (nreg *NameRegistry) update() error {
	return nreg.db.Update(func(txn *badger.Txn) error {
		var buf bytes.Buffer
		enc := msgpack.GetEncoder()
		enc.Reset(&buf)
		defer msgpack.PutEncoder(enc)

		err := enc.EncodeMulti(nreg.m, nreg.nextKey)
		if err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}

		err = txn.Set(nreg.configKey(), buf.Bytes())
		if err != nil {
			return fmt.Errorf("failed to set config item: %w", err)
		}
		return nil
	})
}
