package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ehsanranjbar/flatdoc/value"
)

// PathExtractor is an interface for extracting a value with the given path from a given value.
type PathExtractor[T any] interface {
	ExtractPath(t T, path string) (any, error)
}

// FlatPathExtractor is a PathExtractor for flattened documents where every
// path is a key of the root object.
type FlatPathExtractor struct{}

// ExtractPath implements the PathExtractor interface.
func (FlatPathExtractor) ExtractPath(flat value.Value, path string) (any, error) {
	v, ok := flat.Get(path)
	if !ok {
		return nil, fmt.Errorf("key %q not found", path)
	}

	return v.Any(), nil
}

// NestedPathExtractor is a PathExtractor that walks a nested document
// following the segments of a path.
type NestedPathExtractor struct {
	separator string
}

// NewNestedPathExtractor creates a new NestedPathExtractor splitting paths on separator.
func NewNestedPathExtractor(separator string) NestedPathExtractor {
	if separator == "" {
		panic("nested path extractor needs a non-empty separator")
	}

	return NestedPathExtractor{separator: separator}
}

// ExtractPath implements the PathExtractor interface.
func (pe NestedPathExtractor) ExtractPath(v value.Value, path string) (any, error) {
	x, err := ExtractPath(v, path, pe.separator)
	if err != nil {
		return nil, err
	}

	return x.Any(), nil
}

// ExtractPath extracts the value at path from v. Numeric segments index
// arrays and a "*" segment fans out over all items of an array, collecting
// the results into a single array.
func ExtractPath(v value.Value, path, separator string) (value.Value, error) {
	if path == "" {
		return v, nil
	}

	parts := strings.SplitN(path, separator, 2)
	switch v.Kind() {
	case value.KindObject:
		var ok bool
		v, ok = v.Get(parts[0])
		if !ok {
			return value.Value{}, fmt.Errorf("key %q not found", parts[0])
		}
	case value.KindArray:
		if parts[0] == "*" {
			var result []value.Value
			for _, item := range v.Items() {
				if len(parts) > 1 {
					var err error
					item, err = ExtractPath(item, parts[1], separator)
					if err != nil {
						return value.Value{}, err
					}
				}
				if item.IsArray() {
					for _, x := range item.Items() {
						result = append(result, x)
					}
				} else {
					result = append(result, item)
				}
			}
			return value.Array(result...), nil
		}

		i, err := strconv.Atoi(parts[0])
		if err != nil {
			return value.Value{}, fmt.Errorf("invalid index %q: %w", parts[0], err)
		}
		var ok bool
		v, ok = v.Index(i)
		if !ok {
			return value.Value{}, fmt.Errorf("index %d out of range", i)
		}
	default:
		return value.Value{}, fmt.Errorf("cannot extract path %q from %s", path, v.Kind())
	}

	if len(parts) == 1 {
		return v, nil
	}

	return ExtractPath(v, parts[1], separator)
}
