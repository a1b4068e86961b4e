package flatten

import (
	"fmt"

	"github.com/ehsanranjbar/flatdoc/value"
)

func (f *Flattener) flattenValue(v value.Value, key string, depth int, acc value.Value) error {
	if f.maxDepth > 0 && depth > f.maxDepth {
		return fmt.Errorf("%w: %d at key %q", ErrMaxDepthExceeded, f.maxDepth, key)
	}

	switch v.Kind() {
	case value.KindObject:
		if v.Len() == 0 && f.preserveEmptyObjects {
			return insert(acc, key, value.NewObject())
		}
		return f.flattenObject(v, key, depth, acc)
	case value.KindArray:
		if v.Len() == 0 && f.preserveEmptyArrays {
			return insert(acc, key, value.Array())
		}
		return f.flattenArray(v, key, depth, acc)
	}

	if acc.Has(key) {
		return &KeyWillBeOverwrittenError{Key: key}
	}
	if f.transform != nil {
		var err error
		v, err = f.transform(key, v)
		if err != nil {
			return fmt.Errorf("failed to transform value at %q: %w", key, err)
		}
	}
	return acc.Add(key, v)
}

func (f *Flattener) flattenObject(obj value.Value, parent string, depth int, acc value.Value) error {
	for k, v := range obj.Fields() {
		if err := f.flattenValue(v, f.objectKey(parent, k, depth), depth+1, acc); err != nil {
			return err
		}
	}
	return nil
}

func (f *Flattener) flattenArray(arr value.Value, parent string, depth int, acc value.Value) error {
	for i, item := range arr.Items() {
		if err := f.flattenValue(item, f.arrayKey(parent, i, depth), depth+1, acc); err != nil {
			return err
		}
	}
	return nil
}

func insert(acc value.Value, key string, v value.Value) error {
	if acc.Has(key) {
		return &KeyWillBeOverwrittenError{Key: key}
	}
	return acc.Add(key, v)
}
