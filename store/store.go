// Package store persists flattened documents in badger. Every record is kept
// as a msgpack encoded row keyed by its UUID and gets a 32-bit ordinal which
// is added to a roaring bitmap per flattened path, so records can be looked up
// by the paths they contain and filtered with qlbridge expressions.
package store

import (
	"errors"
	"fmt"
	"math"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/flatdoc"
	"github.com/ehsanranjbar/flatdoc/flatten"
	"github.com/ehsanranjbar/flatdoc/schema"
	"github.com/ehsanranjbar/flatdoc/value"
)

// DefaultSequenceBandwidth is the number of ordinals leased from badger at once.
const DefaultSequenceBandwidth = 128

const (
	docsName  = "docs"
	ordsName  = "ords"
	pathsName = "paths"
	seqName   = "seq"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrNoPaths is returned by lookups that were given no path.
	ErrNoPaths = errors.New("at least one path is required")
	// ErrInvalidQuery is returned when a query expression can not be parsed.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrOrdinalsExhausted is returned when the 32-bit ordinal space is used up.
	ErrOrdinalsExhausted = errors.New("record ordinals exhausted")
)

// Store is a store of flattened documents.
type Store struct {
	db        *badger.DB
	flattener schema.Flatter[value.Value]
	extractor schema.PathExtractor[value.Value]
	prefix    []byte
	bandwidth uint64
	docs      []byte
	ords      []byte
	paths     []byte
	seq       *badger.Sequence
}

// New creates a new Store on db. Documents are flattened with flattener, or
// with a default flatten.Flattener when it is nil.
func New(
	db *badger.DB,
	flattener schema.Flatter[value.Value],
	opts ...func(*Store) error,
) (*Store, error) {
	if flattener == nil {
		flattener = flatten.New()
	}

	s := &Store{
		db:        db,
		flattener: flattener,
		extractor: schema.FlatPathExtractor{},
		bandwidth: DefaultSequenceBandwidth,
	}
	for _, opt := range opts {
		err := opt(s)
		if err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	reg, err := flatdoc.NewNameRegistry(db, flatdoc.WithRegistryPrefix(s.prefix))
	if err != nil {
		return nil, fmt.Errorf("failed to create name registry: %w", err)
	}

	for _, p := range []struct {
		name string
		dst  *[]byte
	}{
		{docsName, &s.docs},
		{ordsName, &s.ords},
		{pathsName, &s.paths},
	} {
		*p.dst, err = s.registerPrefix(reg, p.name)
		if err != nil {
			return nil, err
		}
	}

	seqKey, err := s.registerPrefix(reg, seqName)
	if err != nil {
		return nil, err
	}
	s.seq, err = db.GetSequence(seqKey, s.bandwidth)
	if err != nil {
		return nil, fmt.Errorf("failed to get ordinal sequence: %w", err)
	}

	return s, nil
}

func (s *Store) registerPrefix(reg *flatdoc.NameRegistry, name string) ([]byte, error) {
	key, err := reg.Name(name)
	if err != nil {
		return nil, fmt.Errorf("failed to register %s prefix: %w", name, err)
	}

	p := make([]byte, 0, len(s.prefix)+len(key))
	p = append(p, s.prefix...)
	return append(p, key...), nil
}

// WithPrefix is an option to keep all keys of the store under prefix. Stores
// sharing a database must use prefixes where neither is a prefix of the other.
func WithPrefix(prefix []byte) func(*Store) error {
	return func(s *Store) error {
		if len(prefix) == 0 {
			return fmt.Errorf("empty prefix")
		}

		s.prefix = prefix
		return nil
	}
}

// WithSequenceBandwidth is an option to set how many ordinals are leased at once.
func WithSequenceBandwidth(n uint64) func(*Store) error {
	return func(s *Store) error {
		if n == 0 {
			return fmt.Errorf("sequence bandwidth must be positive")
		}

		s.bandwidth = n
		return nil
	}
}

// WithExtractor is an option to set how query identifiers are resolved
// against a record. The default looks identifiers up as flat keys.
func WithExtractor(pe schema.PathExtractor[value.Value]) func(*Store) error {
	return func(s *Store) error {
		if pe == nil {
			return fmt.Errorf("nil extractor")
		}

		s.extractor = pe
		return nil
	}
}

// Instantiate creates a new Instance bound to txn.
func (s *Store) Instantiate(txn *badger.Txn) *Instance {
	return &Instance{
		store: s,
		docs:  flatdoc.NewPrefixStore(txn, s.docs),
		ords:  flatdoc.NewPrefixStore(txn, s.ords),
		paths: flatdoc.NewPrefixStore(txn, s.paths),
	}
}

// Update runs fn within a read-write transaction.
func (s *Store) Update(fn func(*Instance) error) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return fn(s.Instantiate(txn))
	})
}

// View runs fn within a read-only transaction.
func (s *Store) View(fn func(*Instance) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		return fn(s.Instantiate(txn))
	})
}

// Close releases the leased ordinals. It does not close the database.
func (s *Store) Close() error {
	err := s.seq.Release()
	if err != nil {
		return fmt.Errorf("failed to release ordinal sequence: %w", err)
	}
	return nil
}

func (s *Store) nextOrd() (uint32, error) {
	n, err := s.seq.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to get next ordinal: %w", err)
	}
	if n > math.MaxUint32 {
		return 0, ErrOrdinalsExhausted
	}
	return uint32(n), nil
}
