// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashtab

// TypeDescriptor is the per-table immutable configuration bundle from
// spec.md §3: a capability bag of optional function values, in the same
// spirit as the teacher's Hashmap[K, V] constructor arguments generalized
// into a record so new hooks don't grow the constructor's argument list.
type TypeDescriptor[E any, K comparable] struct {
	// HashFunction computes the 64-bit hash of a key. Required: unlike the
	// source, Go generics give us no reflection-free way to hash an
	// arbitrary K by default, so callers must supply one (HashBytes,
	// HashString and HashBytesXX are provided for byte-string-like keys).
	HashFunction func(K) uint64

	// KeyEqual reports whether two keys are equal. If nil, K's built-in
	// == is used (K is constrained to comparable).
	KeyEqual func(a, b K) bool

	// GetKey extracts the key from an element. If nil, E must itself be
	// usable as K (i.e. E == K), and the identity function is used.
	GetKey func(E) K

	// Destructor, if set, is invoked exactly once per element on Delete,
	// Empty, and Release (never on Pop or TwoPhasePopFind, which hand the
	// element back to the caller) and on the displaced element of Replace.
	Destructor func(t *Table[E, K], e E)

	// MetadataSize is the number of extra trailing bytes the table
	// allocates for caller use, retrieved with Table.Metadata.
	MetadataSize int

	// RehashingStarted/RehashingCompleted fire exactly once per rehash
	// boundary, receiving the table.
	RehashingStarted   func(t *Table[E, K])
	RehashingCompleted func(t *Table[E, K])

	// InstantRehashing forces Resize (and therefore any operation that
	// triggers one) to drain the rehash synchronously before returning,
	// instead of amortizing it one bucket at a time.
	InstantRehashing bool

	// Allocator governs admission control for new bucket arrays. Defaults
	// to an unbudgeted allocator backed by the Go heap.
	Allocator Allocator
}

func (d *TypeDescriptor[E, K]) keyEqual(a, b K) bool {
	if d.KeyEqual != nil {
		return d.KeyEqual(a, b)
	}
	return a == b
}

func (d *TypeDescriptor[E, K]) getKey(e E) K {
	if d.GetKey != nil {
		return d.GetKey(e)
	}
	// E must equal K for this path; callers that don't set GetKey are
	// responsible for instantiating Table[K, K].
	k, ok := any(e).(K)
	if !ok {
		contractViolation("TypeDescriptor.GetKey is nil and E is not K; supply GetKey")
	}
	return k
}

func (d *TypeDescriptor[E, K]) allocator() Allocator {
	if d.Allocator != nil {
		return d.Allocator
	}
	return defaultAllocator{}
}
