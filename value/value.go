// Package value implements the structured document model: a tagged union of
// null, booleans, numbers, strings, arrays and insertion ordered objects.
package value

import (
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/ehsanranjbar/flatdoc/internal/ordmap"
	"golang.org/x/exp/constraints"
)

var (
	// ErrDuplicateKey is returned when a key is added twice to an object.
	ErrDuplicateKey = errors.New("duplicate key")
	// ErrNotObject is returned when an object operation is applied to another kind.
	ErrNotObject = errors.New("value is not an object")
	// ErrInvalidNumber is returned when a number literal is not a valid JSON number.
	ErrInvalidNumber = errors.New("invalid number literal")
)

// Kind is the variant of a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindNull:   "null",
	KindBool:   "bool",
	KindNumber: "number",
	KindString: "string",
	KindArray:  "array",
	KindObject: "object",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a structured value. The zero Value is null.
//
// Numbers keep the literal they were created from, so they round-trip
// without losing precision. Objects and arrays share their storage on
// copy; treat values as read-only once they are handed to another party.
type Value struct {
	kind  Kind
	b     bool
	s     string
	items []Value
	obj   *ordmap.Map[string, Value]
}

// Field is a single member of an object.
type Field struct {
	Key   string
	Value Value
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Number returns a number value from its JSON literal.
func Number(literal string) (Value, error) {
	if !isNumberLiteral(literal) {
		return Value{}, fmt.Errorf("%w: %q", ErrInvalidNumber, literal)
	}
	return Value{kind: KindNumber, s: literal}, nil
}

// MustNumber is like Number but panics if the literal is invalid.
func MustNumber(literal string) Value {
	v, err := Number(literal)
	if err != nil {
		panic(err)
	}
	return v
}

// Int returns a number value holding an integer.
func Int[I constraints.Integer](i I) Value {
	if i < 0 {
		return Value{kind: KindNumber, s: strconv.FormatInt(int64(i), 10)}
	}
	return Value{kind: KindNumber, s: strconv.FormatUint(uint64(i), 10)}
}

// Float returns a number value holding a float. The literal always carries a
// fraction or an exponent so it reads back as a float. NaN and infinities
// have no JSON representation and become null.
func Float[F constraints.Float](f F) Value {
	x := float64(f)
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return Null()
	}

	s := strconv.FormatFloat(x, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return Value{kind: KindNumber, s: s}
}

// Array returns an array value holding a copy of the given items.
func Array(items ...Value) Value {
	return Value{kind: KindArray, items: slices.Clone(items)}
}

// NewObject returns a new empty object.
func NewObject() Value {
	return Value{kind: KindObject, obj: ordmap.New[string, Value]()}
}

// Object returns an object holding the given fields in order. It panics on
// duplicate keys.
func Object(fields ...Field) Value {
	v := Value{kind: KindObject, obj: ordmap.WithCapacity[string, Value](len(fields))}
	for _, f := range fields {
		if err := v.Add(f.Key, f.Value); err != nil {
			panic(err)
		}
	}
	return v
}

// Kind returns the variant of the value.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsObject reports whether the value is an object.
func (v Value) IsObject() bool { return v.kind == KindObject }

// IsArray reports whether the value is an array.
func (v Value) IsArray() bool { return v.kind == KindArray }

// IsScalar reports whether the value is neither an object nor an array.
func (v Value) IsScalar() bool { return v.kind != KindObject && v.kind != KindArray }

// AsBool returns the boolean held by the value.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsString returns the string held by the value.
func (v Value) AsString() (string, bool) { return v.s, v.kind == KindString }

// Literal returns the number literal held by the value.
func (v Value) Literal() (string, bool) { return v.s, v.kind == KindNumber }

// Int64 returns the number as an int64.
func (v Value) Int64() (int64, error) {
	if v.kind != KindNumber {
		return 0, fmt.Errorf("cannot convert %s to int64", v.kind)
	}
	return strconv.ParseInt(v.s, 10, 64)
}

// Float64 returns the number as a float64.
func (v Value) Float64() (float64, error) {
	if v.kind != KindNumber {
		return 0, fmt.Errorf("cannot convert %s to float64", v.kind)
	}
	return strconv.ParseFloat(v.s, 64)
}

// Len returns the number of items of an array or members of an object.
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return v.obj.Len()
	}
	return 0
}

// Get returns the member of an object with the given key.
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	return v.obj.Get(key)
}

// Has reports whether an object has a member with the given key.
func (v Value) Has(key string) bool {
	return v.kind == KindObject && v.obj.Has(key)
}

// Index returns the item of an array at the given index.
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.items) {
		return Value{}, false
	}
	return v.items[i], true
}

// Fields iterates over the members of an object in insertion order.
func (v Value) Fields() iter.Seq2[string, Value] {
	if v.kind != KindObject {
		return func(func(string, Value) bool) {}
	}
	return v.obj.Iter()
}

// Items iterates over the items of an array.
func (v Value) Items() iter.Seq2[int, Value] {
	return slices.All(v.items)
}

// Keys returns the keys of an object in insertion order.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	return v.obj.Keys()
}

// Add appends a member to an object.
func (v Value) Add(key string, x Value) error {
	if v.kind != KindObject {
		return fmt.Errorf("%w: %s", ErrNotObject, v.kind)
	}
	if err := v.obj.Add(key, x); err != nil {
		return fmt.Errorf("%w: %q", ErrDuplicateKey, key)
	}
	return nil
}

// String returns the compact JSON representation of the value.
func (v Value) String() string {
	bz, err := Marshal(v)
	if err != nil {
		return fmt.Sprintf("!<%s>", err)
	}
	return string(bz)
}

func isNumberLiteral(s string) bool {
	if s == "" {
		return false
	}
	first, last := s[0], s[len(s)-1]
	if first != '-' && (first < '0' || first > '9') {
		return false
	}
	if last < '0' || last > '9' {
		return false
	}
	return json.Valid([]byte(s))
}
