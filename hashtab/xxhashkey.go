// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashtab

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// HashBytesXX is an alternative keyed hash function for byte-string keys,
// backed by github.com/cespare/xxhash/v2 instead of hash/maphash. It exists
// for callers who want a hash function with well-documented collision and
// speed characteristics independent of the Go runtime's map hash (which
// maphash wraps and which is explicitly allowed to change between Go
// releases). The 128-bit Seed is mixed in as a prefix, same as HashBytes.
func HashBytesXX(seed Seed, b []byte) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], seed[0])
	binary.LittleEndian.PutUint64(buf[8:], seed[1])

	d := xxhash.New()
	d.Write(buf[:])
	d.Write(b)
	return d.Sum64()
}
