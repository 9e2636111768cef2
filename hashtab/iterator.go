// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashtab

import "unsafe"

// Iterator walks every element of a Table exactly once (for a safe
// iterator, every element present for the whole iteration). Unlike Scan,
// an Iterator holds a reference into live table state between calls and so
// must be Reset when the caller is done with it, regardless of whether it
// was exhausted.
//
// Only Next/Elem/Reset may be called while an Iterator is live; any other
// table operation (on safe or unsafe iterators alike) can relocate
// elements and invalidate it. A safe Iterator only needs to worry about
// resize/rehash, since it pauses those; an unsafe Iterator forbids mutation
// outright and panics on Reset if it was violated.
type Iterator[E any, K comparable] struct {
	t     *Table[E, K]
	safe  bool
	table int
	index int64 // -1 before the first Next call.
	pos   int

	fingerprint uint64
	started     bool
	elem        E
	have        bool
}

// NewIterator returns an unsafe iterator: faster (no rehash pausing) but
// forbids any mutation of t for the iterator's lifetime, detected (not
// prevented) via a state fingerprint checked on Reset.
func NewIterator[E any, K comparable](t *Table[E, K]) *Iterator[E, K] {
	return &Iterator[E, K]{t: t, index: -1}
}

// NewSafeIterator returns a safe iterator: pauses rehashing for its
// lifetime so bucket addresses stay stable, at the cost of deferring any
// in-progress rehash's completion until Reset.
func NewSafeIterator[E any, K comparable](t *Table[E, K]) *Iterator[E, K] {
	return &Iterator[E, K]{t: t, index: -1, safe: true}
}

// Next advances the iterator and reports whether a new element is
// available; call Elem to retrieve it.
func (it *Iterator[E, K]) Next() bool {
	t := it.t
	for {
		if it.index == -1 && it.table == 0 && !it.started {
			it.started = true
			if it.safe {
				t.PauseRehashing()
			} else {
				it.fingerprint = t.fingerprint()
			}
			// Buckets of table 0 that a rehash has already migrated are
			// empty, so walking it from index 0 skips them.
			it.index = 0
			it.pos = 0
		} else {
			it.pos++
			if it.pos >= elementsPerBucket {
				it.pos = 0
				it.index++
				if it.index >= int64(t.numBuckets(it.table)) {
					it.index = 0
					if t.IsRehashing() && it.table == 0 {
						it.table++
					} else {
						it.have = false
						return false
					}
				}
			}
		}
		if len(t.tables[it.table]) == 0 {
			it.have = false
			return false
		}
		b := &t.tables[it.table][it.index]
		if !b.has(it.pos) {
			continue
		}
		it.elem = b.elements[it.pos]
		it.have = true
		return true
	}
}

// Elem returns the element found by the most recent successful Next call.
func (it *Iterator[E, K]) Elem() E {
	if !it.have {
		contractViolation("Iterator.Elem called without a preceding successful Next")
	}
	return it.elem
}

// Reset releases the iterator: resumes rehashing for a safe iterator, or
// verifies (and panics if violated) that an unsafe iterator's table was
// never mutated during its lifetime. Must be called exactly once per
// iterator that was used at all, even if Next was never called to
// exhaustion.
func (it *Iterator[E, K]) Reset() {
	if it.index == -1 && it.table == 0 && !it.started {
		return
	}
	if it.safe {
		it.t.ResumeRehashing()
	} else if it.fingerprint != it.t.fingerprint() {
		contractViolation("table mutated during an unsafe Iterator's lifetime")
	}
}

// fingerprint hashes the subset of table state an unsafe iterator depends
// on, using Tomas Wang's 64-bit integer mixing function, so Reset can
// detect (not prevent) disallowed mutation. Not a content hash: two
// distinct mutations can coincidentally fingerprint the same, but a
// completed resize/rehash reliably changes at least one of these fields.
func (t *Table[E, K]) fingerprint() uint64 {
	var words [6]uint64
	words[0] = uint64(uintptr(unsafe.Pointer(unsafe.SliceData(t.tables[0]))))
	words[1] = uint64(t.bucketExp[0])
	words[2] = uint64(t.used[0])
	words[3] = uint64(uintptr(unsafe.Pointer(unsafe.SliceData(t.tables[1]))))
	words[4] = uint64(t.bucketExp[1])
	words[5] = uint64(t.used[1])

	var hash uint64
	for _, w := range words {
		hash += w
		hash = (^hash) + (hash << 21)
		hash = hash ^ (hash >> 24)
		hash = (hash + (hash << 3)) + (hash << 8)
		hash = hash ^ (hash >> 14)
		hash = (hash + (hash << 2)) + (hash << 4)
		hash = hash ^ (hash >> 28)
		hash = hash + (hash << 31)
	}
	return hash
}
