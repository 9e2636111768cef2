// Copyright (c) 2020 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package hashmap provides a generic K -> V convenience map, for callers
// who want map semantics without dealing with hashtab's element/key
// distinction directly. Storage and probing are delegated entirely to
// hashtab.Table; this package only adapts the K/V pair into the (element,
// key) shape hashtab expects.
package hashmap

import "github.com/aristanetworks/hashtab/hashtab"

type entry[K comparable, V any] struct {
	key K
	val V
}

// Hashmap is a K -> V map built on hashtab.Table.
type Hashmap[K comparable, V any] struct {
	t *hashtab.Table[entry[K, V], K]
}

// New creates an empty Hashmap. hash must be a well-distributed hash
// function over K; equal may be nil to use K's built-in ==. size is an
// initial capacity hint (0 means start empty and grow on demand).
func New[K comparable, V any](size uint, hash func(K) uint64, equal func(K, K) bool) *Hashmap[K, V] {
	desc := hashtab.TypeDescriptor[entry[K, V], K]{
		HashFunction: hash,
		GetKey:       func(e entry[K, V]) K { return e.key },
	}
	if equal != nil {
		desc.KeyEqual = equal
	}
	m := &Hashmap[K, V]{t: hashtab.New(desc)}
	if size > 0 {
		m.t.Expand(uint64(size))
	}
	return m
}

// Len returns the number of entries in m.
func (m *Hashmap[K, V]) Len() int {
	return m.t.Len()
}

// Set associates k with v in m, overwriting any previous value for k.
func (m *Hashmap[K, V]) Set(k K, v V) {
	m.t.Replace(entry[K, V]{key: k, val: v})
}

// Get returns the value associated with k, and whether k was present.
func (m *Hashmap[K, V]) Get(k K) (V, bool) {
	e, ok := m.t.Find(k)
	return e.val, ok
}

// Delete removes k from m, if present.
func (m *Hashmap[K, V]) Delete(k K) {
	m.t.Delete(k)
}
