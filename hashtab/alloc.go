// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashtab

// Allocator is the external collaborator spec.md §6 calls the "memory
// allocator". Go's garbage-collected heap always hands back zeroed memory
// and has no separate "free" call, so there is nothing for Allocator to do
// at the byte-shuffling level the C source's alloc/tryAlloc/free trio
// operates at. What does carry over is the *admission control*: a caller
// embedding the table in a memory-budgeted subsystem (e.g. one enforcing a
// maxmemory-style limit) wants TryExpand/TryResize to fail cleanly instead
// of growing the table and only then discovering the budget is blown.
// Allocator is that seam.
type Allocator interface {
	// Reserve is called before a non-Try entry point allocates a new
	// bucket array of nBytes. It must not return false; an allocator that
	// wants to enforce a budget should panic here instead, matching the
	// "all other entry points panic on allocation failure" rule in
	// spec.md §7.
	Reserve(nBytes uintptr)
	// TryReserve is called before a Try-prefixed entry point allocates a
	// new bucket array of nBytes. It returns false to decline the
	// allocation instead of panicking.
	TryReserve(nBytes uintptr) bool
	// Release credits nBytes back to the allocator when a bucket array is
	// freed (a completed rehash, Release, or Empty).
	Release(nBytes uintptr)
}

// defaultAllocator imposes no budget: Reserve/TryReserve always succeed and
// Release is a no-op, leaving everything to the garbage collector. This is
// the Allocator every table uses unless TypeDescriptor.Allocator is set.
type defaultAllocator struct{}

func (defaultAllocator) Reserve(uintptr)         {}
func (defaultAllocator) TryReserve(uintptr) bool { return true }
func (defaultAllocator) Release(uintptr)         {}
