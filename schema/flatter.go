package schema

import (
	"fmt"

	"github.com/ehsanranjbar/flatdoc/value"
)

// Flatter is an interface for flattening a hierarchy of values to an object of paths -> values.
type Flatter[T any] interface {
	Flatten(t T) (value.Value, error)
}

// AnyFlatter is a Flatter for plain Go documents such as the ones produced by
// json.Unmarshal into an any.
type AnyFlatter struct {
	base Flatter[value.Value]
}

// NewAnyFlatter creates a new AnyFlatter on top of the given value flatter.
func NewAnyFlatter(base Flatter[value.Value]) AnyFlatter {
	return AnyFlatter{base: base}
}

// Flatten implements the Flatter interface.
func (f AnyFlatter) Flatten(v any) (value.Value, error) {
	doc, err := value.FromAny(v)
	if err != nil {
		return value.Value{}, fmt.Errorf("failed to convert document: %w", err)
	}

	return f.base.Flatten(doc)
}

// FlattenToMap flattens v and returns the result as a map of paths -> plain Go values.
func (f AnyFlatter) FlattenToMap(v any) (map[string]any, error) {
	flat, err := f.Flatten(v)
	if err != nil {
		return nil, err
	}

	m := make(map[string]any, flat.Len())
	for k, v := range flat.Fields() {
		m[k] = v.Any()
	}
	return m, nil
}
