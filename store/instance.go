package store

import (
	"errors"
	"fmt"

	roaring "github.com/RoaringBitmap/roaring/v2"
	"github.com/araddon/qlbridge/expr"
	qlvm "github.com/araddon/qlbridge/vm"
	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/flatdoc"
	"github.com/ehsanranjbar/flatdoc/codec/lex"
	"github.com/ehsanranjbar/flatdoc/internal/qlutil"
	"github.com/ehsanranjbar/flatdoc/iters"
	"github.com/ehsanranjbar/flatdoc/value"
	"github.com/google/uuid"
)

// Instance is a Store bound to a badger transaction.
type Instance struct {
	store *Store
	docs  *flatdoc.PrefixStore
	ords  *flatdoc.PrefixStore
	paths *flatdoc.PrefixStore
}

// Put flattens doc and stores it under a new random id.
func (in *Instance) Put(doc value.Value) (uuid.UUID, error) {
	id := uuid.New()
	err := in.PutWithID(id, doc)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// PutWithID flattens doc and stores it under id, replacing any record
// previously stored under the same id.
func (in *Instance) PutWithID(id uuid.UUID, doc value.Value) error {
	flat, err := in.store.flattener.Flatten(doc)
	if err != nil {
		return fmt.Errorf("failed to flatten document: %w", err)
	}

	r := &Record{ID: id, Flat: flat}
	old, err := in.Get(id)
	switch {
	case err == nil:
		r.Ord = old.Ord
		err = in.unindex(old)
		if err != nil {
			return err
		}
	case errors.Is(err, ErrNotFound):
		r.Ord, err = in.store.nextOrd()
		if err != nil {
			return err
		}
		err = in.ords.Set(lex.EncodeUint32(r.Ord), id[:])
		if err != nil {
			return fmt.Errorf("failed to set ordinal: %w", err)
		}
	default:
		return err
	}

	row, err := encodeRow(r)
	if err != nil {
		return err
	}
	err = in.docs.Set(id[:], row)
	if err != nil {
		return fmt.Errorf("failed to set row: %w", err)
	}

	return in.index(r)
}

// Get returns the record stored under id.
func (in *Instance) Get(id uuid.UUID) (*Record, error) {
	item, err := in.docs.Get(id[:])
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get row: %w", err)
	}

	var r *Record
	err = item.Value(func(val []byte) error {
		r, err = decodeRow(id, val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Delete removes the record stored under id along with its index entries.
func (in *Instance) Delete(id uuid.UUID) error {
	r, err := in.Get(id)
	if err != nil {
		return err
	}

	err = in.unindex(r)
	if err != nil {
		return err
	}
	err = in.ords.Delete(lex.EncodeUint32(r.Ord))
	if err != nil {
		return fmt.Errorf("failed to delete ordinal: %w", err)
	}
	err = in.docs.Delete(id[:])
	if err != nil {
		return fmt.Errorf("failed to delete row: %w", err)
	}
	return nil
}

// WithPaths returns the ids of the records containing every one of paths,
// in insertion order.
func (in *Instance) WithPaths(paths ...string) ([]uuid.UUID, error) {
	if len(paths) == 0 {
		return nil, ErrNoPaths
	}

	bms := make([]*roaring.Bitmap, 0, len(paths))
	for _, path := range paths {
		bm, err := in.bitmap(path)
		if err != nil {
			return nil, err
		}
		bms = append(bms, bm)
	}

	bm := roaring.FastAnd(bms...)
	ids := make([]uuid.UUID, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		id, err := in.idOf(it.Next())
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Count returns the number of records containing path.
func (in *Instance) Count(path string) (uint64, error) {
	bm, err := in.bitmap(path)
	if err != nil {
		return 0, err
	}
	return bm.GetCardinality(), nil
}

// NewIterator returns an iterator over all records in insertion order.
// Badger allows a single open iterator per read-write transaction.
func (in *Instance) NewIterator() *Iterator {
	return newIterator(in)
}

// Query returns up to limit records, in insertion order, matching the
// qlbridge expression q. A non-positive limit returns every match.
// Identifiers in q are resolved with the store's extractor and "_id"
// refers to the record id.
func (in *Instance) Query(q string, limit int) ([]*Record, error) {
	qe, err := expr.ParseExpression(q)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}

	iter := iters.Limit(
		iters.Filter(in.NewIterator(), func(r *Record, _ *badger.Item) bool {
			ctx := qlutil.NewContextWrapper(r.ID.String(), r.Flat, in.store.extractor)
			t, _ := qlvm.MatchesExpr(ctx, qe)
			return t
		}),
		limit,
	)
	defer iter.Close()

	return iters.Collect(iter)
}
