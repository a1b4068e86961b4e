package qlutil

import (
	"time"

	qlvalue "github.com/araddon/qlbridge/value"
	"github.com/ehsanranjbar/flatdoc/schema"
	"github.com/ehsanranjbar/flatdoc/value"
)

// IDKey is the identifier under which a record's id is exposed to expressions.
const IDKey = "_id"

// ContextWrapper is a wrapper around a flattened document that implements the qlbridge.ContextReader interface.
type ContextWrapper[I any] struct {
	id        I
	data      value.Value
	extractor schema.PathExtractor[value.Value]
}

// NewContextWrapper creates a new ContextWrapper. If extractor is nil paths
// are looked up directly as keys of data.
func NewContextWrapper[I any](
	id I,
	data value.Value,
	extractor schema.PathExtractor[value.Value],
) *ContextWrapper[I] {
	if extractor == nil {
		extractor = schema.FlatPathExtractor{}
	}

	return &ContextWrapper[I]{
		id:        id,
		data:      data,
		extractor: extractor,
	}
}

// Get implements the qlbridge.ContextReader interface.
func (c *ContextWrapper[I]) Get(key string) (qlvalue.Value, bool) {
	switch {
	case key == IDKey:
		return qlvalue.NewValue(c.id), true
	default:
		v, err := c.extractor.ExtractPath(c.data, key)
		if err != nil {
			return qlvalue.NewErrorValue(err), false
		}
		return qlvalue.NewValue(v), true
	}
}

// Row implements the qlbridge.ContextReader interface.
func (c *ContextWrapper[I]) Row() map[string]qlvalue.Value {
	if !c.data.IsObject() {
		return nil
	}

	row := make(map[string]qlvalue.Value, c.data.Len())
	for k, v := range c.data.Fields() {
		row[k] = qlvalue.NewValue(v.Any())
	}
	return row
}

// Ts implements the qlbridge.ContextReader interface.
// Records carry no timestamp.
func (c *ContextWrapper[I]) Ts() time.Time { return time.Time{} }
