// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashtab

// find looks up hash/key across both tables, destination table first
// (spec.md §4.2): table[1] is newer and typically has fewer everfull
// buckets, so checking it first means less probing on average while
// rehashing is in progress. Returns the element, its bucket index, its
// slot, which table it was found in, and whether it was found at all.
func (t *Table[E, K]) find(hash uint64, key K) (elem E, bucketIdx uint64, slot int, tableIdx int, ok bool) {
	h2 := highBits(hash)
	for ti := 1; ti >= 0; ti-- {
		if t.used[ti] == 0 {
			continue
		}
		mask := t.mask(ti)
		idx := hash & mask
		for {
			b := &t.tables[ti][idx]
			for pos := 0; pos < elementsPerBucket; pos++ {
				if b.has(pos) && b.hashes[pos] == h2 {
					if t.desc.keyEqual(t.desc.getKey(b.elements[pos]), key) {
						return b.elements[pos], idx, pos, ti, true
					}
				}
			}
			if !b.everfull() {
				break
			}
			idx = nextCursor(idx, mask)
		}
	}
	var zero E
	return zero, 0, 0, 0, false
}

// findForInsert locates the first free slot for hash in the active table
// (table[1] while rehashing, else table[0]), per findBucketForInsert in the
// source. The active table's bucket array must already be allocated: the
// caller (insert/expandIfNeeded) is responsible for that.
func (t *Table[E, K]) findForInsert(hash uint64) (bucketIdx uint64, slot int, tableIdx int) {
	ti := t.activeTable()
	if len(t.tables[ti]) == 0 {
		contractViolation("findForInsert: table %d has no buckets allocated", ti)
	}
	mask := t.mask(ti)
	idx := hash & mask
	for {
		b := &t.tables[ti][idx]
		if pos := b.firstFree(); pos >= 0 {
			return idx, pos, ti
		}
		idx = nextCursor(idx, mask)
	}
}

// insertAt writes elem into the given slot, marking it present and caching
// the high hash bits, and updates the everfull flag and used counter. It
// does not check for a pre-existing key; callers must ensure that
// themselves (spec.md §4.3's Add contract).
func (t *Table[E, K]) insertAt(ti int, bucketIdx uint64, slot int, hash uint64, elem E) {
	b := &t.tables[ti][bucketIdx]
	b.elements[slot] = elem
	b.hashes[slot] = highBits(hash)
	b.set(slot)
	t.used[ti]++
}

// removeAt clears the slot's presence bit, invokes the destructor unless
// skipDestructor is set (Pop/TwoPhasePopFind hand the element back instead
// of destroying it), and returns the removed element.
func (t *Table[E, K]) removeAt(ti int, bucketIdx uint64, slot int, skipDestructor bool) E {
	b := &t.tables[ti][bucketIdx]
	elem := b.elements[slot]
	var zero E
	b.elements[slot] = zero
	b.clear(slot)
	t.used[ti]--
	if !skipDestructor && t.desc.Destructor != nil {
		t.desc.Destructor(t, elem)
	}
	return elem
}
