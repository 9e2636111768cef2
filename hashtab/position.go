// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashtab

// Position is an opaque token identifying a slot within a table, returned
// by FindPositionForInsert/TwoPhasePopFind and consumed by
// InsertAtPosition/TwoPhasePopDelete. A zero Position is never valid; the
// valid bit distinguishes "not found" from a genuine (possibly
// zero-valued) position.
//
// The table must not be mutated between acquiring and consuming a
// Position: rehashing, resizing, or any insert/delete can relocate
// elements and invalidate the bucket/slot it names. TwoPhasePopFind
// enforces this by pausing rehashing until TwoPhasePopDelete resumes it;
// FindPositionForInsert/InsertAtPosition rely on caller discipline instead,
// matching the source's documented contract.
type Position struct {
	bucketIdx uint64
	slot      int8
	tableIdx  int8
	valid     bool
}

// FindPositionForInsert looks up key and, if absent, reserves the slot it
// would occupy and returns a Position identifying it — the first phase of
// a two-phase insert. If key is already present, returns the existing
// element and a zero (invalid) Position. Expansion and an opportunistic
// rehash step happen here, same as a normal insert, so that
// InsertAtPosition itself never allocates.
func (t *Table[E, K]) FindPositionForInsert(key K) (pos Position, existing E, found bool) {
	h := t.hash(key)
	t.rehashStepOnRead()
	if elem, _, _, _, ok := t.find(h, key); ok {
		return Position{}, elem, true
	}
	t.expandIfNeeded()
	t.rehashStepOnWrite()
	bucketIdx, slot, ti := t.findForInsert(h)
	b := &t.tables[ti][bucketIdx]
	b.hashes[slot] = highBits(h)
	return Position{bucketIdx: bucketIdx, slot: int8(slot), tableIdx: int8(ti), valid: true}, existing, false
}

// InsertAtPosition inserts elem at pos, previously returned by
// FindPositionForInsert. elem must carry the same key that was looked up
// to acquire pos.
func (t *Table[E, K]) InsertAtPosition(elem E, pos Position) {
	if !pos.valid {
		contractViolation("InsertAtPosition: invalid Position")
	}
	b := &t.tables[pos.tableIdx][pos.bucketIdx]
	if b.has(int(pos.slot)) {
		contractViolation("InsertAtPosition: slot already occupied; Position is stale")
	}
	b.elements[pos.slot] = elem
	b.set(int(pos.slot))
	t.used[pos.tableIdx]++
}

// TwoPhasePopFind looks up key and, if found, pauses rehashing and returns
// the element along with a Position identifying it, without removing it —
// the first phase of a two-phase pop. Call TwoPhasePopDelete with the
// returned Position to complete the removal and resume rehashing.
func (t *Table[E, K]) TwoPhasePopFind(key K) (elem E, pos Position, found bool) {
	if t.Len() == 0 {
		return elem, Position{}, false
	}
	h := t.hash(key)
	t.rehashStepOnRead()
	elem, bucketIdx, slot, ti, ok := t.find(h, key)
	if !ok {
		return elem, Position{}, false
	}
	t.PauseRehashing()
	return elem, Position{bucketIdx: bucketIdx, slot: int8(slot), tableIdx: int8(ti), valid: true}, true
}

// TwoPhasePopDelete removes the element at pos (acquired via
// TwoPhasePopFind), invoking the destructor on it, and resumes rehashing.
// Two-phase pop is the optimized form of TwoPhasePopFind+Delete, not
// +Pop: the element was already handed back by TwoPhasePopFind, so this
// step destructs it rather than handing it back a second time.
func (t *Table[E, K]) TwoPhasePopDelete(pos Position) {
	if !pos.valid {
		contractViolation("TwoPhasePopDelete: invalid Position")
	}
	t.removeAt(int(pos.tableIdx), pos.bucketIdx, int(pos.slot), false)
	t.shrinkIfNeeded()
	t.ResumeRehashing()
}
