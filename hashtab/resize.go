// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashtab

import (
	"math/bits"

	"github.com/aristanetworks/hashtab/monotime"
)

// Fill-factor gates from spec.md §4.4. AVOID uses the hard limits so a
// forked child defers resizing as long as possible (copy-on-write
// friendliness); ALLOW/otherwise uses the soft limits, leaving headroom
// before the hard ceiling.
const (
	maxFillPercentSoft = 77
	maxFillPercentHard = 90
	minFillPercentSoft = 13
	minFillPercentHard = 3
)

// nextBucketExp returns the exponent n such that 1<<n buckets can hold
// minCapacity elements without exceeding elementsPerBucket per bucket,
// i.e. the smallest power of two >= ceil(minCapacity*bucketFactor/bucketDivisor).
func nextBucketExp(minCapacity uint64) int8 {
	if minCapacity == 0 {
		return -1
	}
	minBuckets := (minCapacity*bucketFactor-1)/bucketDivisor + 1
	if minBuckets >= 1<<63 {
		return 63
	}
	if minBuckets <= 1 {
		return 0
	}
	return int8(64 - bits.LeadingZeros64(minBuckets-1))
}

// capacityOf returns the number of elements exp buckets can hold.
func capacityOf(exp int8) uint64 {
	if exp < 0 {
		return 0
	}
	return (uint64(1) << uint(exp)) * elementsPerBucket
}

// Resize grows or shrinks the table to hold at least minCapacity elements,
// allocating a new destination table and beginning incremental rehashing.
// It panics instead of returning an error: the configured Allocator's
// Reserve panics when it cannot admit the allocation, and an overflowing
// minCapacity panics with ErrOverflow. Use TryResize to get an error back
// instead. Reports whether a resize was actually started:
// resizing to the current capacity, or to fewer elements than already
// stored, is a no-op.
func (t *Table[E, K]) Resize(minCapacity uint64) bool {
	ok, err := t.resize(minCapacity, true)
	if err != nil {
		panic(err)
	}
	return ok
}

// TryResize behaves like Resize but returns ErrAllocationFailed or
// ErrOverflow instead of panicking.
func (t *Table[E, K]) TryResize(minCapacity uint64) (bool, error) {
	return t.resize(minCapacity, false)
}

func (t *Table[E, K]) resize(minCapacity uint64, panicOnFailure bool) (bool, error) {
	if minCapacity == 0 {
		minCapacity = 1
	}
	if minCapacity < uint64(t.Len()) {
		return false, nil
	}
	exp := nextBucketExp(minCapacity)
	numBuckets := uint64(1) << uint(exp)
	newCapacity := numBuckets * elementsPerBucket
	if newCapacity < minCapacity {
		return false, ErrOverflow
	}
	activeExp := t.bucketExp[t.activeTable()]
	if exp == activeExp {
		return false, nil
	}

	// Can't start a resize while one is already underway: fast-forward the
	// current one to completion first.
	for t.IsRehashing() {
		t.rehashStep()
	}

	nBytes := uintptr(numBuckets) * bucketSizeOf[E]()
	alloc := t.desc.allocator()
	if panicOnFailure {
		alloc.Reserve(nBytes)
	} else if !alloc.TryReserve(nBytes) {
		return false, ErrAllocationFailed
	}

	t.tables[1] = make([]bucket[E], numBuckets)
	t.bucketExp[1] = exp
	t.used[1] = 0
	t.rehashIdx = 0
	t.rehashStartedAt = monotime.Now()
	if t.desc.RehashingStarted != nil {
		t.desc.RehashingStarted(t)
	}

	if len(t.tables[0]) == 0 || t.used[0] == 0 {
		t.rehashingCompleted()
	} else if t.desc.InstantRehashing {
		for t.IsRehashing() {
			t.rehashStep()
		}
	}
	return true, nil
}

// Expand grows the table to hold at least size elements, if it isn't
// already large enough. Returns false without changing anything if size is
// less than Len() or the table already has the buckets size needs.
func (t *Table[E, K]) Expand(size uint64) bool {
	if size < uint64(t.Len()) || nextBucketExp(size) <= t.bucketExp[t.activeTable()] {
		return false
	}
	return t.Resize(size)
}

// TryExpand behaves like Expand but returns an error instead of panicking
// on allocation failure.
func (t *Table[E, K]) TryExpand(size uint64) (bool, error) {
	if size < uint64(t.Len()) || nextBucketExp(size) <= t.bucketExp[t.activeTable()] {
		return false, nil
	}
	return t.TryResize(size)
}

// expandIfNeeded grows the active table automatically when its fill factor
// would exceed the policy-dependent soft/hard threshold after one more
// insertion. Called from every insert path.
func (t *Table[E, K]) expandIfNeeded() {
	minCapacity := uint64(t.used[0]+t.used[1]) + 1
	numBuckets := t.numBuckets(t.activeTable())
	currentCapacity := numBuckets * elementsPerBucket
	maxFillPercent := uint64(maxFillPercentSoft)
	if GetResizePolicy() == ResizePolicyAvoid {
		maxFillPercent = maxFillPercentHard
	}
	if minCapacity*100 <= currentCapacity*maxFillPercent {
		return
	}
	t.resize(minCapacity, true)
}

// shrinkIfNeeded shrinks table[0] automatically when its fill factor drops
// below the policy-dependent soft/hard threshold. Never triggers while a
// rehash is already underway, under ResizePolicyForbid, or while automatic
// shrinking is paused.
func (t *Table[E, K]) shrinkIfNeeded() {
	if t.pauseAutoShrink > 0 {
		return
	}
	if t.IsRehashing() || GetResizePolicy() == ResizePolicyForbid {
		return
	}
	currentCapacity := t.numBuckets(0) * elementsPerBucket
	minFillPercent := uint64(minFillPercentSoft)
	if GetResizePolicy() == ResizePolicyAvoid {
		minFillPercent = minFillPercentHard
	}
	if uint64(t.used[0])*100 > currentCapacity*minFillPercent {
		return
	}
	t.resize(uint64(t.used[0]), true)
}
