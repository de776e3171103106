package primitives

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// OrderedMap is a map that remembers key insertion order, backed by
// go-ordered-map.
//
// The zero value is an empty map ready to use. Read methods are safe on a nil
// *OrderedMap and behave as if it were empty. Not safe for concurrent use.
type OrderedMap[K comparable, V any] struct {
	om *orderedmap.OrderedMap[K, V]
}

// NewOrderedMap creates an empty OrderedMap.
func NewOrderedMap[K comparable, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{om: orderedmap.New[K, V]()}
}

// Set stores val under key. A new key is appended to the enumeration order;
// an existing key keeps its position.
func (m *OrderedMap[K, V]) Set(key K, val V) {
	if m.om == nil {
		m.om = orderedmap.New[K, V]()
	}
	m.om.Set(key, val)
}

// Get returns the value stored under key and whether it was present.
func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	if m == nil || m.om == nil {
		var zero V
		return zero, false
	}
	return m.om.Get(key)
}

// Has reports whether key is present.
func (m *OrderedMap[K, V]) Has(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Delete removes key. Missing keys are ignored.
func (m *OrderedMap[K, V]) Delete(key K) {
	if m == nil || m.om == nil {
		return
	}
	m.om.Delete(key)
}

// Len returns the number of entries.
func (m *OrderedMap[K, V]) Len() int {
	if m == nil || m.om == nil {
		return 0
	}
	return m.om.Len()
}

// Keys returns a copy of the keys in insertion order.
func (m *OrderedMap[K, V]) Keys() []K {
	keys := make([]K, 0, m.Len())
	m.Range(func(k K, _ V) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// Range calls fn for every entry in insertion order until fn returns false.
func (m *OrderedMap[K, V]) Range(fn func(key K, val V) bool) {
	if m == nil || m.om == nil {
		return
	}
	for pair := m.om.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// Clone returns a copy of the map. Values are copied with cp, or assigned
// as-is when cp is nil.
func (m *OrderedMap[K, V]) Clone(cp func(V) V) *OrderedMap[K, V] {
	out := NewOrderedMap[K, V]()
	m.Range(func(k K, v V) bool {
		if cp != nil {
			v = cp(v)
		}
		out.Set(k, v)
		return true
	})
	return out
}
