package store

import (
	"bytes"
	"fmt"

	"github.com/ehsanranjbar/flatdoc/value"
	"github.com/google/uuid"
	msgpack "github.com/vmihailenco/msgpack/v5"
)

// Record is a stored flattened document.
type Record struct {
	ID   uuid.UUID
	Ord  uint32
	Flat value.Value
}

// Paths returns the flattened paths of the record in stored order.
func (r *Record) Paths() []string {
	return r.Flat.Keys()
}

func encodeRow(r *Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.GetEncoder()
	enc.Reset(&buf)
	defer msgpack.PutEncoder(enc)

	err := enc.EncodeMulti(r.Ord, r.Flat)
	if err != nil {
		return nil, fmt.Errorf("failed to encode row: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeRow(id uuid.UUID, bz []byte) (*Record, error) {
	dec := msgpack.GetDecoder()
	dec.Reset(bytes.NewReader(bz))
	defer msgpack.PutDecoder(dec)

	r := &Record{ID: id}
	err := dec.DecodeMulti(&r.Ord, &r.Flat)
	if err != nil {
		return nil, fmt.Errorf("failed to decode row: %w", err)
	}
	return r, nil
}
