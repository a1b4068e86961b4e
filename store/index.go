package store

import (
	"errors"
	"fmt"

	roaring "github.com/RoaringBitmap/roaring/v2"
	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/flatdoc/codec/lex"
	"github.com/google/uuid"
)

func (in *Instance) bitmap(path string) (*roaring.Bitmap, error) {
	bm := roaring.New()

	item, err := in.paths.Get([]byte(path))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return bm, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get index of %q: %w", path, err)
	}

	bz, err := item.ValueCopy(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read index of %q: %w", path, err)
	}
	err = bm.UnmarshalBinary(bz)
	if err != nil {
		return nil, fmt.Errorf("failed to decode index of %q: %w", path, err)
	}
	return bm, nil
}

func (in *Instance) setBitmap(path string, bm *roaring.Bitmap) error {
	if bm.IsEmpty() {
		err := in.paths.Delete([]byte(path))
		if err != nil {
			return fmt.Errorf("failed to delete index of %q: %w", path, err)
		}
		return nil
	}

	bm.RunOptimize()
	bz, err := bm.ToBytes()
	if err != nil {
		return fmt.Errorf("failed to encode index of %q: %w", path, err)
	}
	err = in.paths.Set([]byte(path), bz)
	if err != nil {
		return fmt.Errorf("failed to set index of %q: %w", path, err)
	}
	return nil
}

func (in *Instance) index(r *Record) error {
	for _, path := range r.Paths() {
		bm, err := in.bitmap(path)
		if err != nil {
			return err
		}
		bm.Add(r.Ord)
		err = in.setBitmap(path, bm)
		if err != nil {
			return err
		}
	}
	return nil
}

func (in *Instance) unindex(r *Record) error {
	for _, path := range r.Paths() {
		bm, err := in.bitmap(path)
		if err != nil {
			return err
		}
		bm.Remove(r.Ord)
		err = in.setBitmap(path, bm)
		if err != nil {
			return err
		}
	}
	return nil
}

func (in *Instance) idOf(ord uint32) (uuid.UUID, error) {
	item, err := in.ords.Get(lex.EncodeUint32(ord))
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to get id of ordinal %d: %w", ord, err)
	}

	var id uuid.UUID
	err = item.Value(func(val []byte) error {
		id, err = uuid.FromBytes(val)
		return err
	})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to decode id of ordinal %d: %w", ord, err)
	}
	return id, nil
}
