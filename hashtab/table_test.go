// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashtab

import (
	"fmt"
	"sort"
	"testing"

	"github.com/aristanetworks/hashtab/test"
)

type intElem struct {
	key int
	val string
}

func newIntTable() *Table[intElem, int] {
	return New(TypeDescriptor[intElem, int]{
		HashFunction: func(k int) uint64 { return HashBytes([]byte(fmt.Sprintf("%d", k))) },
		GetKey:       func(e intElem) int { return e.key },
	})
}

func TestBasicRoundTrip(t *testing.T) {
	tbl := newIntTable()
	if tbl.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", tbl.Len())
	}
	if _, ok := tbl.Find(1); ok {
		t.Fatal("Find on empty table found something")
	}

	for i := 0; i < 100; i++ {
		if !tbl.Add(intElem{key: i, val: fmt.Sprintf("v%d", i)}) {
			t.Fatalf("Add(%d) reported a duplicate", i)
		}
	}
	if tbl.Len() != 100 {
		t.Fatalf("Len() = %d, want 100", tbl.Len())
	}
	for i := 0; i < 100; i++ {
		e, ok := tbl.Find(i)
		if !ok || e.val != fmt.Sprintf("v%d", i) {
			t.Fatalf("Find(%d) = %+v, %v, want v%d, true", i, e, ok, i)
		}
	}
	if tbl.Add(intElem{key: 42, val: "dup"}) {
		t.Fatal("Add reported success for a duplicate key")
	}

	for i := 0; i < 50; i++ {
		if !tbl.Delete(i) {
			t.Fatalf("Delete(%d) found nothing", i)
		}
	}
	if tbl.Len() != 50 {
		t.Fatalf("Len() after deletes = %d, want 50", tbl.Len())
	}
	for i := 0; i < 50; i++ {
		if _, ok := tbl.Find(i); ok {
			t.Fatalf("Find(%d) found a deleted element", i)
		}
	}
	for i := 50; i < 100; i++ {
		if _, ok := tbl.Find(i); !ok {
			t.Fatalf("Find(%d) didn't find a surviving element", i)
		}
	}
}

func TestReplace(t *testing.T) {
	tbl := newIntTable()
	if inserted := tbl.Replace(intElem{key: 1, val: "a"}); !inserted {
		t.Fatal("Replace on an absent key reported overwrite")
	}
	if inserted := tbl.Replace(intElem{key: 1, val: "b"}); inserted {
		t.Fatal("Replace on a present key reported insert")
	}
	e, ok := tbl.Find(1)
	if !ok || e.val != "b" {
		t.Fatalf("Find(1) = %+v, %v, want b, true", e, ok)
	}
	if tbl.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tbl.Len())
	}
}

func TestPopDoesNotDestroy(t *testing.T) {
	destroyed := 0
	tbl := New(TypeDescriptor[intElem, int]{
		HashFunction: func(k int) uint64 { return HashBytes([]byte(fmt.Sprintf("%d", k))) },
		GetKey:       func(e intElem) int { return e.key },
		Destructor:   func(*Table[intElem, int], intElem) { destroyed++ },
	})
	tbl.Add(intElem{key: 1, val: "a"})
	elem, ok := tbl.Pop(1)
	if !ok || elem.val != "a" {
		t.Fatalf("Pop(1) = %+v, %v, want a, true", elem, ok)
	}
	if destroyed != 0 {
		t.Fatalf("destructor called %d times on Pop, want 0", destroyed)
	}
	tbl.Add(intElem{key: 2, val: "b"})
	if !tbl.Delete(2) {
		t.Fatal("Delete(2) found nothing")
	}
	if destroyed != 1 {
		t.Fatalf("destructor called %d times on Delete, want 1", destroyed)
	}
}

func TestGrowShrinkCycle(t *testing.T) {
	tbl := newIntTable()
	const n = 2000
	for i := 0; i < n; i++ {
		tbl.Add(intElem{key: i, val: fmt.Sprintf("v%d", i)})
	}
	if tbl.Len() != n {
		t.Fatalf("Len() = %d, want %d", tbl.Len(), n)
	}
	statsAfterGrow := tbl.GetStats()
	if len(statsAfterGrow) == 0 || statsAfterGrow[0].Buckets == 0 {
		t.Fatal("expected a non-empty allocated table after growth")
	}

	for i := 0; i < n; i++ {
		tbl.Delete(i)
	}
	if tbl.Len() != 0 {
		t.Fatalf("Len() after full delete = %d, want 0", tbl.Len())
	}
	// Shrinking waits while a rehash is underway and each Delete performs
	// one rehash step, so the last table listed (the shrink target while
	// rehashing) is smaller than the grown table, not a minimal one.
	statsAfterShrink := tbl.GetStats()
	last := statsAfterShrink[len(statsAfterShrink)-1]
	if last.Buckets >= statsAfterGrow[0].Buckets {
		t.Errorf("table did not shrink: %d buckets remain for 0 elements", last.Buckets)
	}
}

func TestForcedProbing(t *testing.T) {
	// All keys hash identically, forcing every insert past its primary
	// bucket and exercising the everfull-gated probe chain end to end.
	tbl := New(TypeDescriptor[intElem, int]{
		HashFunction: func(int) uint64 { return 12345 },
		GetKey:       func(e intElem) int { return e.key },
	})
	const n = 50
	for i := 0; i < n; i++ {
		if !tbl.Add(intElem{key: i, val: fmt.Sprintf("v%d", i)}) {
			t.Fatalf("Add(%d) failed", i)
		}
	}
	for i := 0; i < n; i++ {
		if _, ok := tbl.Find(i); !ok {
			t.Fatalf("Find(%d) missed an element forced deep into a probe chain", i)
		}
	}
	for i := 0; i < n; i += 2 {
		if !tbl.Delete(i) {
			t.Fatalf("Delete(%d) found nothing", i)
		}
	}
	for i := 1; i < n; i += 2 {
		if _, ok := tbl.Find(i); !ok {
			t.Fatalf("Find(%d) missed a survivor after interleaved deletes", i)
		}
	}
}

func TestScanUnderMutation(t *testing.T) {
	tbl := newIntTable()
	const n = 500
	for i := 0; i < n; i++ {
		tbl.Add(intElem{key: i, val: fmt.Sprintf("v%d", i)})
	}

	seen := map[int]int{}
	var cursor uint64
	calls := 0
	for {
		cursor = tbl.Scan(cursor, func(e intElem) {
			seen[e.key]++
		}, 0)
		calls++
		// Mutate between calls: add a fresh key not present before or
		// after the scan, which Scan is explicitly allowed to miss or
		// catch either way, and shouldn't ever derail cursor progress.
		tbl.Add(intElem{key: n + calls, val: "late"})
		if cursor == 0 || calls > n*4 {
			break
		}
	}
	for i := 0; i < n; i++ {
		if seen[i] == 0 {
			t.Errorf("element %d present for the entire scan was never emitted", i)
		}
	}
}

func TestScanRefMutatesInPlace(t *testing.T) {
	tbl := newIntTable()
	const n = 200
	for i := 0; i < n; i++ {
		tbl.Add(intElem{key: i, val: fmt.Sprintf("v%d", i)})
	}

	var cursor uint64
	for {
		// Scan may emit an element twice around cursor wraparound, so the
		// update is written to give the same result when applied twice.
		cursor = tbl.ScanRef(cursor, func(e *intElem) {
			e.val = "touched:" + fmt.Sprintf("v%d", e.key)
		}, 0)
		if cursor == 0 {
			break
		}
	}
	for i := 0; i < n; i++ {
		e, ok := tbl.Find(i)
		if !ok || e.val != "touched:"+fmt.Sprintf("v%d", i) {
			t.Fatalf("Find(%d) = %+v, %v, want an in-place ScanRef mutation to have stuck", i, e, ok)
		}
	}
}

func TestResizePolicyAvoidDuringRehash(t *testing.T) {
	old := GetResizePolicy()
	defer SetResizePolicy(old)

	tbl := newIntTable()
	const n = 1000
	for i := 0; i < n; i++ {
		tbl.Add(intElem{key: i, val: fmt.Sprintf("v%d", i)})
	}

	SetResizePolicy(ResizePolicyAvoid)
	tbl.Resize(uint64(n * 4))
	if !tbl.IsRehashing() {
		t.Fatal("expected Resize to start an incremental rehash")
	}

	// Under AVOID, reads must not progress the rehash.
	rehashIdxBefore := tbl.rehashIdx
	for i := 0; i < 20; i++ {
		tbl.Find(i)
	}
	if tbl.rehashIdx != rehashIdxBefore {
		t.Fatalf("rehashIdx advanced on reads under ResizePolicyAvoid: %d -> %d", rehashIdxBefore, tbl.rehashIdx)
	}

	// Writes must make progress.
	tbl.Add(intElem{key: n + 1, val: "trigger"})
	if tbl.rehashIdx == rehashIdxBefore && tbl.IsRehashing() {
		t.Fatal("rehashIdx did not advance on a write under ResizePolicyAvoid")
	}

	SetResizePolicy(ResizePolicyAllow)
	for i := 0; i < 10000 && tbl.IsRehashing(); i++ {
		tbl.Find(0)
	}
	if tbl.IsRehashing() {
		t.Fatal("rehash never completed under ResizePolicyAllow")
	}
	for i := 0; i < n; i++ {
		if _, ok := tbl.Find(i); !ok {
			t.Fatalf("Find(%d) missed an element after a policy-spanning rehash", i)
		}
	}
}

func TestTwoPhaseInsertAvoidsRedundantHash(t *testing.T) {
	calls := 0
	tbl := New(TypeDescriptor[intElem, int]{
		HashFunction: func(k int) uint64 {
			calls++
			return HashBytes([]byte(fmt.Sprintf("%d", k)))
		},
		GetKey: func(e intElem) int { return e.key },
	})

	calls = 0
	pos, _, found := tbl.FindPositionForInsert(7)
	if found {
		t.Fatal("FindPositionForInsert reported an existing element in an empty table")
	}
	hashCallsForFind := calls
	if hashCallsForFind != 1 {
		t.Fatalf("FindPositionForInsert hashed the key %d times, want 1", hashCallsForFind)
	}
	tbl.InsertAtPosition(intElem{key: 7, val: "seven"}, pos)
	if calls != hashCallsForFind {
		t.Fatalf("InsertAtPosition re-hashed the key: %d calls, want %d", calls, hashCallsForFind)
	}
	if e, ok := tbl.Find(7); !ok || e.val != "seven" {
		t.Fatalf("Find(7) = %+v, %v, want seven, true", e, ok)
	}
}

func TestTwoPhasePop(t *testing.T) {
	tbl := newIntTable()
	tbl.Add(intElem{key: 9, val: "nine"})

	elem, pos, found := tbl.TwoPhasePopFind(9)
	if !found || elem.val != "nine" {
		t.Fatalf("TwoPhasePopFind(9) = %+v, %v, want nine, true", elem, found)
	}
	if _, ok := tbl.Find(9); !ok {
		t.Fatal("element vanished before TwoPhasePopDelete was called")
	}
	tbl.TwoPhasePopDelete(pos)
	if _, ok := tbl.Find(9); ok {
		t.Fatal("element still present after TwoPhasePopDelete")
	}
}

func TestSafeIteratorVisitsAllSurvivors(t *testing.T) {
	tbl := newIntTable()
	const n = 300
	for i := 0; i < n; i++ {
		tbl.Add(intElem{key: i, val: fmt.Sprintf("v%d", i)})
	}

	it := NewSafeIterator(tbl)
	defer it.Reset()
	var got []int
	for it.Next() {
		got = append(got, it.Elem().key)
	}
	sort.Ints(got)
	want := make([]int, n)
	for i := range want {
		want[i] = i
	}
	if d := test.Diff(got, want); d != "" {
		t.Fatalf("safe iterator result differs from every key inserted: %s", d)
	}
}

func TestUnsafeIteratorPanicsOnMutation(t *testing.T) {
	tbl := newIntTable()
	tbl.Add(intElem{key: 1, val: "a"})
	tbl.Add(intElem{key: 2, val: "b"})

	it := NewIterator(tbl)
	it.Next()
	tbl.Resize(uint64(tbl.Len()) * 100)

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected Reset to panic after mutation during an unsafe iteration")
		}
	}()
	it.Reset()
}

func TestSampleElements(t *testing.T) {
	tbl := newIntTable()
	const n = 200
	for i := 0; i < n; i++ {
		tbl.Add(intElem{key: i, val: fmt.Sprintf("v%d", i)})
	}
	samples := tbl.SampleElements(20)
	if len(samples) != 20 {
		t.Fatalf("SampleElements(20) returned %d elements, want 20", len(samples))
	}
	samples = tbl.SampleElements(n * 2)
	if len(samples) != n {
		t.Fatalf("SampleElements(n*2) returned %d elements, want %d", len(samples), n)
	}
}

func TestEmptyTableBoundaries(t *testing.T) {
	tbl := newIntTable()
	if _, ok := tbl.Find(1); ok {
		t.Fatal("Find on an empty table found something")
	}
	if ok := tbl.Delete(1); ok {
		t.Fatal("Delete on an empty table reported success")
	}
	if _, ok := tbl.Pop(1); ok {
		t.Fatal("Pop on an empty table reported success")
	}
	if _, ok := tbl.RandomElement(); ok {
		t.Fatal("RandomElement on an empty table reported success")
	}
	if got := tbl.Scan(0, func(intElem) {}, 0); got != 0 {
		t.Fatalf("Scan on an empty table returned cursor %d, want 0", got)
	}
}

func TestPauseRehashingKeepsPositionsStable(t *testing.T) {
	tbl := newIntTable()
	const n = 1500
	for i := 0; i < n; i++ {
		tbl.Add(intElem{key: i, val: fmt.Sprintf("v%d", i)})
	}
	tbl.Resize(uint64(n * 4))
	if !tbl.IsRehashing() {
		t.Fatal("expected Resize to start a rehash")
	}

	tbl.PauseRehashing()
	pos, _, found := tbl.FindPositionForInsert(n + 1)
	if found {
		t.Fatal("unexpected existing element")
	}
	rehashIdxBefore := tbl.rehashIdx
	tbl.InsertAtPosition(intElem{key: n + 1, val: "paused"}, pos)
	if tbl.rehashIdx != rehashIdxBefore {
		t.Fatal("rehashIdx moved while rehashing was paused")
	}
	tbl.ResumeRehashing()

	if e, ok := tbl.Find(n + 1); !ok || e.val != "paused" {
		t.Fatalf("Find(n+1) = %+v, %v, want paused, true", e, ok)
	}
}
