// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashtab

import "github.com/aristanetworks/hashtab/monotime"

// rehashStep migrates every element of the single bucket at rehashIdx from
// table[0] into table[1], then advances rehashIdx to the next bucket in
// probing/cursor order so full probing chains are preserved. Completing a
// full pass over table[0] (rehashIdx wrapping back to 0) finishes the
// rehash and swaps table[1] into table[0].
func (t *Table[E, K]) rehashStep() {
	if !t.IsRehashing() {
		contractViolation("rehashStep called while not rehashing")
	}
	idx := uint64(t.rehashIdx)
	srcMask := t.mask(0)
	b := &t.tables[0][idx]
	for pos := 0; pos < elementsPerBucket; pos++ {
		if !b.has(pos) {
			continue
		}
		elem := b.elements[pos]
		h2 := b.hashes[pos]

		// When shrinking, the bucket index itself can stand in for the
		// hash, skipping a hash recomputation, but only if probing never
		// pushed this element out of its primary bucket: that's true iff
		// the previous bucket in cursor order was never full.
		var hash uint64
		if t.bucketExp[1] < t.bucketExp[0] && !t.tables[0][prevCursor(idx, srcMask)].everfull() {
			hash = idx
		} else {
			hash = t.hash(t.desc.getKey(elem))
		}

		dstIdx, dstPos, _ := t.findForInsert(hash)
		dst := &t.tables[1][dstIdx]
		dst.elements[dstPos] = elem
		dst.hashes[dstPos] = h2
		dst.set(dstPos)
		t.used[0]--
		t.used[1]++
	}
	b.presence &= everfullBit

	t.rehashIdx = int64(nextCursor(idx, srcMask))
	if t.rehashIdx == 0 {
		t.rehashingCompleted()
	}
}

// rehashingCompleted retires table[0] in favor of table[1] and fires the
// RehashingCompleted hook.
func (t *Table[E, K]) rehashingCompleted() {
	t.lastRehashDuration = monotime.Since(t.rehashStartedAt)
	if t.desc.RehashingCompleted != nil {
		t.desc.RehashingCompleted(t)
	}
	if len(t.tables[0]) > 0 {
		t.desc.allocator().Release(uintptr(len(t.tables[0])) * bucketSizeOf[E]())
	}
	t.tables[0] = t.tables[1]
	t.bucketExp[0] = t.bucketExp[1]
	t.used[0] = t.used[1]
	t.tables[1] = nil
	t.bucketExp[1] = -1
	t.used[1] = 0
	t.rehashIdx = -1
}

// rehashStepOnRead performs one rehash step on a read path (Find, Scan,
// iteration) only under ResizePolicyAllow: under AVOID/FORBID, progress is
// deferred to write paths so reads stay allocation- and mutation-free.
func (t *Table[E, K]) rehashStepOnRead() {
	if !t.IsRehashing() || t.pauseRehash > 0 {
		return
	}
	if GetResizePolicy() != ResizePolicyAllow {
		return
	}
	t.rehashStep()
}

// rehashStepOnWrite performs one rehash step on a write path (insert,
// delete) only under ResizePolicyAvoid: this guarantees a rehash started
// under AVOID still finishes before the table needs to resize again, since
// writes otherwise wouldn't make rehashing progress.
func (t *Table[E, K]) rehashStepOnWrite() {
	if !t.IsRehashing() || t.pauseRehash > 0 {
		return
	}
	if GetResizePolicy() != ResizePolicyAvoid {
		return
	}
	t.rehashStep()
}
