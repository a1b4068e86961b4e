package value

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
)

// FromAny converts a Go value to a Value. Maps are converted with their keys
// sorted. Other types are converted through their JSON encoding, which keeps
// struct fields in declaration order.
func FromAny(v any) (Value, error) {
	switch v := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		return v, nil
	case bool:
		return Bool(v), nil
	case string:
		return String(v), nil
	case json.Number:
		return Number(string(v))
	case int:
		return Int(v), nil
	case int8:
		return Int(v), nil
	case int16:
		return Int(v), nil
	case int32:
		return Int(v), nil
	case int64:
		return Int(v), nil
	case uint:
		return Int(v), nil
	case uint8:
		return Int(v), nil
	case uint16:
		return Int(v), nil
	case uint32:
		return Int(v), nil
	case uint64:
		return Int(v), nil
	case float32:
		return Float(v), nil
	case float64:
		return fromFloat64(v), nil
	case []any:
		items := make([]Value, len(v))
		for i, item := range v {
			x, err := FromAny(item)
			if err != nil {
				return Value{}, fmt.Errorf("failed to convert item %d: %w", i, err)
			}
			items[i] = x
		}
		return Value{kind: KindArray, items: items}, nil
	case map[string]any:
		obj := NewObject()
		for _, key := range slices.Sorted(maps.Keys(v)) {
			x, err := FromAny(v[key])
			if err != nil {
				return Value{}, fmt.Errorf("failed to convert member %q: %w", key, err)
			}
			if err := obj.Add(key, x); err != nil {
				return Value{}, err
			}
		}
		return obj, nil
	}

	bz, err := json.Marshal(v)
	if err != nil {
		return Value{}, fmt.Errorf("failed to marshal %T: %w", v, err)
	}
	return Unmarshal(bz)
}

// fromFloat64 keeps integral floats as integers, matching what a JSON
// decoder into any produces for integer literals.
func fromFloat64(f float64) Value {
	if f >= -(1<<53) && f <= 1<<53 && f == math.Trunc(f) {
		return Int(int64(f))
	}
	return Float(f)
}

// Any converts the value to plain Go types: nil, bool, string, int64 or
// float64 for numbers, []any and map[string]any.
func (v Value) Any() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindString:
		return v.s
	case KindNumber:
		if i, err := strconv.ParseInt(v.s, 10, 64); err == nil {
			return i
		}
		f, _ := strconv.ParseFloat(v.s, 64)
		return f
	case KindArray:
		items := make([]any, len(v.items))
		for i, item := range v.items {
			items[i] = item.Any()
		}
		return items
	case KindObject:
		m := make(map[string]any, v.obj.Len())
		for key, member := range v.obj.Iter() {
			m[key] = member.Any()
		}
		return m
	}
	return nil
}
