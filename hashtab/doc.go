// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package hashtab implements a cache-conscious, open-addressed hash table
// meant to be the primary indexing structure of a single-threaded in-memory
// data store. It is not safe for concurrent use: callers must serialize
// their own access, exactly like a plain Go map.
//
// The table rehashes incrementally: growing or shrinking a large table
// allocates a second bucket array and migrates one source bucket per
// subsequent operation instead of stopping the world, so that a single
// insert or lookup never has to pay for the whole table's resize. This
// also makes the table safe to use from a process that has just fork()ed:
// a parent that switches to ResizePolicyAvoid before forking touches only
// the buckets it must, keeping copy-on-write page faults to a minimum
// while a child reads the table.
package hashtab
