// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashtab

import "math/bits"

// Cursors are bucket indices traversed in reverse-bit-increment order.
// This order has the property that a cursor valid in a smaller table
// (fewer buckets) is also a valid bucket index in a larger table that
// covers the same prefix range, which is what lets rehash progress and
// scan resumption survive a table resize between calls.

// nextCursor advances v to the next cursor in the sequence defined over
// [0, mask], using the host's bit-reverse primitive (math/bits.Reverse64)
// in place of the hand-rolled byte-swap-then-nibble-swap-then-bit-swap the
// source uses: the standard library already provides the optimized
// intrinsic spec.md asks for.
func nextCursor(v uint64, mask uint64) uint64 {
	v |= ^mask
	v = bits.Reverse64(v)
	v++
	return bits.Reverse64(v)
}

// prevCursor is the inverse of nextCursor.
func prevCursor(v uint64, mask uint64) uint64 {
	v = bits.Reverse64(v)
	v--
	v = bits.Reverse64(v)
	return v & mask
}

// cursorIsLessThan reports whether a precedes b in cursor order; this is
// the order rehashing migrates buckets in.
func cursorIsLessThan(a, b uint64) bool {
	return bits.Reverse64(a) < bits.Reverse64(b)
}
