package main

import (
	"context"
	"fmt"
	"io"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/ehsanranjbar/flatdoc/store"
	"github.com/ehsanranjbar/flatdoc/value"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DB is a flattened document store opened from a directory.
type DB struct {
	base  *badger.DB
	store *store.Store
}

// openDB opens the store in c.dbDir, flattening documents as configured by c.
func openDB(c *config, log *zap.Logger) (*DB, error) {
	f, err := c.flattener()
	if err != nil {
		return nil, err
	}

	base, err := badger.Open(badger.DefaultOptions(c.dbDir).WithLogger(newBadgerLogger(log)))
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	s, err := store.New(base, f)
	if err != nil {
		base.Close()
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	return &DB{base: base, store: s}, nil
}

// Close closes the DB.
func (db *DB) Close() error {
	err := db.store.Close()
	if err != nil {
		db.base.Close()
		return err
	}
	return db.base.Close()
}

// Import puts every document of r into the store and writes the new ids to w.
func (db *DB) Import(ctx context.Context, r io.Reader, w io.Writer, keepGoing bool, log *zap.Logger) error {
	var imported int
	err := eachLine(ctx, r, func(n int, line []byte) error {
		id, err := db.putLine(line)
		if err != nil {
			log.Error("failed to import line", zap.Int("line", n), zap.Error(err))
			if keepGoing {
				return nil
			}
			return fmt.Errorf("line %d: %w", n, err)
		}

		imported++
		_, err = fmt.Fprintln(w, id)
		return err
	})
	log.Info("import finished", zap.Int("records", imported))
	return err
}

func (db *DB) putLine(line []byte) (uuid.UUID, error) {
	doc, err := value.Unmarshal(line)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return db.Put(doc)
}

// Put flattens and stores doc in its own transaction.
func (db *DB) Put(doc value.Value) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.store.Update(func(ins *store.Instance) error {
		var err error
		id, err = ins.Put(doc)
		return err
	})
	return id, err
}

// Get returns the record with the given id.
func (db *DB) Get(id uuid.UUID) (*store.Record, error) {
	var r *store.Record
	err := db.store.View(func(ins *store.Instance) error {
		var err error
		r, err = ins.Get(id)
		return err
	})
	return r, err
}

// Delete deletes the record with the given id.
func (db *DB) Delete(id uuid.UUID) error {
	return db.store.Update(func(ins *store.Instance) error {
		return ins.Delete(id)
	})
}

// Find returns the ids of the records containing all paths.
func (db *DB) Find(paths ...string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := db.store.View(func(ins *store.Instance) error {
		var err error
		ids, err = ins.WithPaths(paths...)
		return err
	})
	return ids, err
}

// Query returns the records matching q.
func (db *DB) Query(q string, limit int) ([]*store.Record, error) {
	var rs []*store.Record
	err := db.store.View(func(ins *store.Instance) error {
		var err error
		rs, err = ins.Query(q, limit)
		return err
	})
	return rs, err
}

func recordValue(r *store.Record) value.Value {
	return value.Object(
		value.Field{Key: "id", Value: value.String(r.ID.String())},
		value.Field{Key: "doc", Value: r.Flat},
	)
}

func writeRecords(w io.Writer, rs ...*store.Record) error {
	for _, r := range rs {
		_, err := io.WriteString(w, recordValue(r).String()+"\n")
		if err != nil {
			return err
		}
	}
	return nil
}

func writeIDs(w io.Writer, ids []uuid.UUID) error {
	for _, id := range ids {
		_, err := fmt.Fprintln(w, id)
		if err != nil {
			return err
		}
	}
	return nil
}
