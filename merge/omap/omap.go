// Package omap provides a map that keeps its keys sorted, so that merged
// results iterate in a stable order.
package omap

import (
	"cmp"
	"iter"
	"slices"

	"github.com/TheVova/Merger/merge"
)

// Map is a key/value map ordered by key. The zero value is an empty map.
type Map[K cmp.Ordered, V any] struct {
	keys   []K
	values map[K]V
}

// New returns a map holding the given entries.
func New[K cmp.Ordered, V any](entries map[K]V) *Map[K, V] {
	m := &Map[K, V]{}
	for k, v := range entries {
		m.Set(k, v)
	}
	return m
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Get returns the value stored under key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	var zero V
	if m == nil || m.values == nil {
		return zero, false
	}
	v, ok := m.values[key]
	if !ok {
		return zero, false
	}
	return v, true
}

// Set stores value under key, replacing any previous value.
func (m *Map[K, V]) Set(key K, value V) {
	if m.values == nil {
		m.values = make(map[K]V)
	}
	if _, ok := m.values[key]; !ok {
		i, _ := slices.BinarySearch(m.keys, key)
		m.keys = slices.Insert(m.keys, i, key)
	}
	m.values[key] = value
}

// Keys returns the keys in ascending order.
func (m *Map[K, V]) Keys() []K {
	if m == nil {
		return nil
	}
	return slices.Clone(m.keys)
}

// All iterates over the entries in ascending key order.
func (m *Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Clone returns an independent copy of m with every value copied by
// merge.Clone.
func (m Map[K, V]) Clone() Map[K, V] {
	res := Map[K, V]{keys: slices.Clone(m.keys)}
	if m.values != nil {
		res.values = make(map[K]V, len(m.values))
		for k, v := range m.values {
			res.values[k] = merge.Clone(v)
		}
	}
	return res
}

// Upsert inserts a copy of value when key is absent and otherwise merges
// value into the stored one with f.
func (m *Map[K, V]) Upsert(key K, value V, f merge.Func[V]) {
	cur, ok := m.Get(key)
	if !ok {
		m.Set(key, merge.Clone(value))
		return
	}
	f(&cur, value)
	m.values[key] = cur
}

// MergeMap applies the map rule of package merge to ordered maps: keys only in
// other are inserted as copies, shared keys merge with f and keys only in
// self are kept. Keys are visited in ascending order.
func MergeMap[K cmp.Ordered, V any](self *Map[K, V], other Map[K, V], f merge.Func[V]) {
	for _, k := range other.keys {
		self.Upsert(k, other.values[k], f)
	}
}

// MergeFunc lifts the capability of V to Map[K, V].
func MergeFunc[K cmp.Ordered, V any](f merge.Func[V]) merge.Func[Map[K, V]] {
	return func(self *Map[K, V], other Map[K, V]) {
		MergeMap(self, other, f)
	}
}
