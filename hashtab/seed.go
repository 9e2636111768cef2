// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashtab

import (
	"encoding/binary"
	"hash/maphash"
)

// Seed is the process-wide 128-bit hash seed described in spec.md §6. It is
// mixed into every call to HashBytes/HashBytesFold so that two processes (or
// a process restarted with a different seed) disagree on hash values, which
// is the usual defense against hash-flooding and the property the C source
// gets from its own keyed hash primitive.
type Seed [2]uint64

var processSeed Seed

// processMixSeed seeds the underlying maphash.Hash once per process.
// maphash.Seed itself cannot be constructed from caller-supplied bits (it is
// deliberately opaque and random), so the caller-controlled 128 bits of
// Seed are instead mixed into the hashed bytes ahead of the key, which gives
// the same "changing the seed changes every hash deterministically"
// property spec.md asks for.
var processMixSeed = maphash.MakeSeed()

// SetHashFunctionSeed installs the process-wide hash seed. Like the source,
// this is global state: every table's default hash function is affected,
// including tables that already exist. Hash values also depend on a random
// per-process maphash seed, so the same Seed does not give the same hash
// values in two different processes.
func SetHashFunctionSeed(s Seed) {
	processSeed = s
}

// HashFunctionSeed returns the currently installed process-wide seed.
func HashFunctionSeed() Seed {
	return processSeed
}

// HashBytes is the keyed hash function for byte-string keys: a
// 128-bit-keyed pseudo-random hash of a byte string, case-sensitive.
func HashBytes(b []byte) uint64 {
	return hashBytesWithSeed(processSeed, b)
}

// HashString is HashBytes over a string, which it copies into a []byte.
func HashString(s string) uint64 {
	return hashBytesWithSeed(processSeed, []byte(s))
}

// HashBytesFold is the case-insensitive variant of HashBytes: it folds ASCII
// letters to lower case before hashing. Like the source, this is an
// ASCII-only fold; it is meant for protocol tokens and identifiers, not
// natural-language text.
func HashBytesFold(b []byte) uint64 {
	folded := make([]byte, len(b))
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		folded[i] = c
	}
	return hashBytesWithSeed(processSeed, folded)
}

func hashBytesWithSeed(seed Seed, b []byte) uint64 {
	var h maphash.Hash
	h.SetSeed(processMixSeed)
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], seed[0])
	binary.LittleEndian.PutUint64(buf[8:], seed[1])
	h.Write(buf[:])
	h.Write(b)
	return h.Sum64()
}
