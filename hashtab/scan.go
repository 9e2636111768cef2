// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashtab

// ScanFlags tweaks Scan/ScanRef's behavior (spec.md §4.7).
type ScanFlags int

const (
	// ScanSingleStep advances the cursor by a single bucket instead of a
	// full probing chain, trading the at-least-once guarantee (elements
	// can be missed across a rehash boundary between calls) for doing
	// less work per call. Used internally by the sampling functions.
	ScanSingleStep ScanFlags = 1 << iota
)

// ScanFunc is invoked once per emitted element during a Scan.
type ScanFunc[E any] func(elem E)

// ScanRefFunc is invoked once per emitted element during a ScanRef, given
// the address of the slot the element lives in rather than a copy.
type ScanRefFunc[E any] func(elem *E)

// Scan is a stateless cursor-based iterator: it emits a bounded slice of
// the table's elements and returns a cursor to resume from. Start a full
// scan with cursor 0 and keep calling Scan with the returned cursor until
// it returns 0 again.
//
// The table may be mutated freely between calls. Guarantees:
//
//   - An element present for an entire full scan is emitted at least once
//     (usually exactly once, occasionally twice around cursor wraparound).
//   - An element inserted or deleted during a full scan may or may not be
//     emitted.
//
// Rehashing is paused for the duration of each call (not across calls),
// so a single call never observes bucket addresses moving mid-callback.
func (t *Table[E, K]) Scan(cursor uint64, fn ScanFunc[E], flags ScanFlags) uint64 {
	return t.scan(cursor, flags, func(b *bucket[E]) {
		for pos := 0; pos < elementsPerBucket; pos++ {
			if b.has(pos) {
				fn(b.elements[pos])
			}
		}
	})
}

// ScanRef behaves exactly like Scan, but hands fn the address of each
// slot's element instead of a copy — the EMIT_REF variant from spec.md
// §4.7 and the source's emit_ref flag (hashtab.c:1142). This lets a caller
// update an element in place (e.g. to relocate a pointee during
// defragmentation and rewrite the slot to point at the new location)
// without a separate find. fn must not change which key the element
// reports (that would desynchronize it from its bucket) and must not
// insert or remove elements from the table.
func (t *Table[E, K]) ScanRef(cursor uint64, fn ScanRefFunc[E], flags ScanFlags) uint64 {
	return t.scan(cursor, flags, func(b *bucket[E]) {
		for pos := 0; pos < elementsPerBucket; pos++ {
			if b.has(pos) {
				fn(&b.elements[pos])
			}
		}
	})
}

// scan holds the cursor/mask walk shared by Scan and ScanRef; emit is
// called once per visited bucket and is responsible for iterating that
// bucket's occupied slots itself, so Scan and ScanRef differ only in
// whether the caller sees a value or a pointer.
func (t *Table[E, K]) scan(cursor uint64, flags ScanFlags, emit func(b *bucket[E])) uint64 {
	if t.Len() == 0 {
		return 0
	}
	t.PauseRehashing()
	defer t.ResumeRehashing()

	singleStep := flags&ScanSingleStep != 0
	passedZero := false
	inProbeSequence := true
	for inProbeSequence {
		inProbeSequence = false
		if !t.IsRehashing() {
			mask := t.mask(0)
			idx := cursor & mask
			b := &t.tables[0][idx]
			emit(b)
			inProbeSequence = b.everfull()
			cursor = nextCursor(cursor, mask)
		} else {
			// table0/table1 here name which PHYSICAL table (0 or 1) has the
			// smaller/bigger bucketExp, and each is always indexed with its
			// own mask. The smaller table's bucket is emitted first (skipped
			// only when it is the rehash source and that bucket has already
			// been migrated), then every bucket of the bigger table whose
			// index expands it.
			table0, table1 := 0, 1
			if t.bucketExp[0] > t.bucketExp[1] {
				table0, table1 = 1, 0
			}
			mask0 := t.mask(table0)
			mask1 := t.mask(table1)

			if table0 == 1 || !cursorIsLessThan(cursor, uint64(t.rehashIdx)) {
				b := &t.tables[table0][cursor&mask0]
				emit(b)
				inProbeSequence = b.everfull()
			}

			for {
				b := &t.tables[table1][cursor&mask1]
				emit(b)
				inProbeSequence = inProbeSequence || b.everfull()
				cursor = nextCursor(cursor, mask1)
				if cursor&(mask0^mask1) == 0 {
					break
				}
			}
		}
		if cursor == 0 {
			passedZero = true
		}
		if singleStep {
			break
		}
	}
	if passedZero {
		return 0
	}
	return cursor
}
