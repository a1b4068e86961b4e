package ordmap

import (
	"errors"
	"iter"
)

var (
	// ErrKeyExists is returned when a key already exists in the map.
	ErrKeyExists = errors.New("key already exists")
)

// Map is a map that maintains the order of the keys.
type Map[K comparable, V any] struct {
	m     map[K]int
	order []pair[K, V]
}

// pair is a key-value pair.
type pair[K, V any] struct {
	key   K
	value V
}

// New creates a new Map.
func New[K comparable, V any]() *Map[K, V] {
	return WithCapacity[K, V](0)
}

// WithCapacity creates a new Map with room for n pairs.
func WithCapacity[K comparable, V any](n int) *Map[K, V] {
	return &Map[K, V]{
		m:     make(map[K]int, n),
		order: make([]pair[K, V], 0, n),
	}
}

// Add adds a key-value pair to the map. it returns error if the key already exists.
func (m *Map[K, V]) Add(key K, value V) error {
	if _, ok := m.m[key]; ok {
		return ErrKeyExists
	}

	m.m[key] = len(m.order)
	m.order = append(m.order, pair[K, V]{key: key, value: value})
	return nil
}

// Get returns the value of a key.
func (m *Map[K, V]) Get(key K) (value V, ok bool) {
	i, ok := m.m[key]
	if !ok {
		return value, false
	}
	return m.order[i].value, true
}

// Has reports whether the key is present.
func (m *Map[K, V]) Has(key K) bool {
	_, ok := m.m[key]
	return ok
}

// Iter returns an iterator that iterates over all key-value pairs.
func (m *Map[K, V]) Iter() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, p := range m.order {
			if !yield(p.key, p.value) {
				return
			}
		}
	}
}

// Keys returns the keys in insertion order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, len(m.order))
	for i, p := range m.order {
		keys[i] = p.key
	}
	return keys
}

// Len returns the number of key-value pairs in the map.
func (m *Map[K, V]) Len() int {
	return len(m.order)
}
