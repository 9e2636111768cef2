// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashtab

import (
	"time"

	"github.com/aristanetworks/hashtab/monotime"
)

// Table is the public map API (spec.md §4.3, §4.6): find/add/replace/pop/
// delete, plus the two-phase variants that hand back an opaque Position so
// a caller can avoid a redundant probe.
//
// A Table is not safe for concurrent use; see the package doc comment.
type Table[E any, K comparable] struct {
	desc TypeDescriptor[E, K]

	tables    [2][]bucket[E]
	used      [2]int
	bucketExp [2]int8 // -1 means the table has no buckets allocated yet.
	rehashIdx int64   // -1 when not rehashing.

	pauseRehash     int
	pauseAutoShrink int

	meta []byte

	rehashStartedAt    monotime.Time
	lastRehashDuration time.Duration
}

// LastRehashDuration reports how long the most recently completed rehash
// took, wall-clock, from the step that allocated the destination table to
// the step that retired the source table. Zero until the first rehash
// completes.
func (t *Table[E, K]) LastRehashDuration() time.Duration {
	return t.lastRehashDuration
}

// New creates an empty table. desc.HashFunction must be non-nil.
func New[E any, K comparable](desc TypeDescriptor[E, K]) *Table[E, K] {
	if desc.HashFunction == nil {
		contractViolation("TypeDescriptor.HashFunction must be set")
	}
	t := &Table[E, K]{
		desc:      desc,
		bucketExp: [2]int8{-1, -1},
		rehashIdx: -1,
	}
	if desc.MetadataSize > 0 {
		t.meta = make([]byte, desc.MetadataSize)
	}
	return t
}

// Metadata returns the table's trailing metadata region (TypeDescriptor.MetadataSize
// bytes), owned entirely by the caller.
func (t *Table[E, K]) Metadata() []byte {
	return t.meta
}

// Len returns the number of elements currently stored.
func (t *Table[E, K]) Len() int {
	return t.used[0] + t.used[1]
}

// IsRehashing reports whether an incremental rehash is in progress.
func (t *Table[E, K]) IsRehashing() bool {
	return t.rehashIdx >= 0
}

// PauseRehashing increments the reentrant pause counter: while it is
// positive, no operation performs an incremental rehash step, which keeps
// bucket addresses (and Positions) stable across calls. Must be balanced
// with ResumeRehashing.
func (t *Table[E, K]) PauseRehashing() {
	t.pauseRehash++
}

// ResumeRehashing decrements the pause counter installed by PauseRehashing.
func (t *Table[E, K]) ResumeRehashing() {
	if t.pauseRehash == 0 {
		contractViolation("ResumeRehashing called without a matching PauseRehashing")
	}
	t.pauseRehash--
}

// PauseAutoShrink increments the reentrant counter that suppresses
// automatic shrinking on Pop/Delete. Must be balanced with
// ResumeAutoShrink.
func (t *Table[E, K]) PauseAutoShrink() {
	t.pauseAutoShrink++
}

// ResumeAutoShrink decrements the counter installed by PauseAutoShrink.
func (t *Table[E, K]) ResumeAutoShrink() {
	if t.pauseAutoShrink == 0 {
		contractViolation("ResumeAutoShrink called without a matching PauseAutoShrink")
	}
	t.pauseAutoShrink--
}

func (t *Table[E, K]) numBuckets(ti int) uint64 {
	if t.bucketExp[ti] < 0 {
		return 0
	}
	return uint64(1) << uint(t.bucketExp[ti])
}

func (t *Table[E, K]) mask(ti int) uint64 {
	n := t.numBuckets(ti)
	if n == 0 {
		return 0
	}
	return n - 1
}

// activeTable is table[1] while rehashing (the newer, fresher target),
// else table[0].
func (t *Table[E, K]) activeTable() int {
	if t.IsRehashing() {
		return 1
	}
	return 0
}

func (t *Table[E, K]) hash(key K) uint64 {
	return t.desc.HashFunction(key)
}

// Find looks up key, returning the stored element and whether it was
// present. An empty table always returns the zero value and false without
// faulting (spec.md §8 boundary behavior).
func (t *Table[E, K]) Find(key K) (E, bool) {
	if t.Len() == 0 {
		var zero E
		return zero, false
	}
	t.rehashStepOnRead()
	h := t.hash(key)
	if elem, _, _, _, ok := t.find(h, key); ok {
		return elem, true
	}
	var zero E
	return zero, false
}

// Release frees both bucket arrays, invoking the destructor (if set) on
// every remaining element first. The table is left empty and usable.
func (t *Table[E, K]) Release() {
	t.Empty()
}

// Empty removes every element, invoking the destructor (if set) on each,
// and frees both bucket arrays.
func (t *Table[E, K]) Empty() {
	for ti := 0; ti < 2; ti++ {
		for bi := range t.tables[ti] {
			b := &t.tables[ti][bi]
			for slot := 0; slot < elementsPerBucket; slot++ {
				if b.has(slot) {
					if t.desc.Destructor != nil {
						t.desc.Destructor(t, b.elements[slot])
					}
				}
			}
		}
		if len(t.tables[ti]) > 0 {
			t.desc.allocator().Release(uintptr(len(t.tables[ti])) * bucketSizeOf[E]())
		}
		t.tables[ti] = nil
		t.used[ti] = 0
		t.bucketExp[ti] = -1
	}
	t.rehashIdx = -1
}
