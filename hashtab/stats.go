// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashtab

import (
	"fmt"
	"strings"
)

// statsChainVectorLen bounds the chain-length histogram: chains longer
// than this are folded into the last bucket.
const statsChainVectorLen = 50

// Stats summarizes one table's bucket occupancy, mirroring the source's
// hashtabStats. A rehashing table has one of these per physical table
// (index 0 and 1); GetStats returns both.
type Stats struct {
	TableIndex    int
	Buckets       uint64
	Size          uint64 // Buckets * elementsPerBucket: theoretical capacity.
	Used          uint64
	MaxChainLen   uint64
	TotalChainLen uint64
	// ChainLenHistogram[n] counts probe chains of length n, n capped at
	// statsChainVectorLen-1.
	ChainLenHistogram [statsChainVectorLen]uint64
}

// String renders Stats in the same terse "table N: ..." shape the source's
// CLI stats dump uses, for logging and /debug output.
func (s Stats) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "table %d: %d buckets, %d/%d used, max chain %d, avg chain %.2f",
		s.TableIndex, s.Buckets, s.Used, s.Size, s.MaxChainLen, s.avgChainLen())
	return b.String()
}

func (s Stats) avgChainLen() float64 {
	if s.Buckets == 0 {
		return 0
	}
	return float64(s.TotalChainLen) / float64(s.Buckets)
}

// GetStats computes Stats for each allocated physical table (one entry
// while stable, two while rehashing).
func (t *Table[E, K]) GetStats() []Stats {
	var out []Stats
	for ti := 0; ti < 2; ti++ {
		if t.bucketExp[ti] < 0 {
			continue
		}
		out = append(out, t.statsForTable(ti))
	}
	return out
}

func (t *Table[E, K]) statsForTable(ti int) Stats {
	s := Stats{
		TableIndex: ti,
		Buckets:    t.numBuckets(ti),
		Used:       uint64(t.used[ti]),
	}
	s.Size = s.Buckets * elementsPerBucket

	// Probe chains follow cursor order, so walk the buckets in that order.
	var chainLen uint64
	mask := t.mask(ti)
	idx := uint64(0)
	for i := uint64(0); i < s.Buckets; i++ {
		b := &t.tables[ti][idx]
		idx = nextCursor(idx, mask)
		if b.everfull() {
			s.TotalChainLen++
			chainLen++
			continue
		}
		bucketIdx := chainLen
		if bucketIdx >= statsChainVectorLen {
			bucketIdx = statsChainVectorLen - 1
		}
		s.ChainLenHistogram[bucketIdx]++
		if chainLen > s.MaxChainLen {
			s.MaxChainLen = chainLen
		}
		chainLen = 0
	}
	return s
}

// MemUsage estimates the number of bytes occupied by both bucket arrays
// and the metadata region, excluding the elements themselves (the caller
// owns those, whether pointers into a larger allocation or inline values).
func (t *Table[E, K]) MemUsage() uintptr {
	n := t.numBuckets(0) + t.numBuckets(1)
	return uintptr(n)*bucketSizeOf[E]() + uintptr(len(t.meta))
}
