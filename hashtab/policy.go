// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashtab

// ResizePolicy governs whether and how tables are allowed to resize and
// rehash, process-wide (spec.md §6). It exists to let a server that is
// about to fork() (e.g. to perform a background save) avoid writing to
// table memory the child is still reading via copy-on-write.
type ResizePolicy int

const (
	// ResizePolicyAllow is the default: tables grow and shrink freely, and
	// both reads and writes perform incremental rehash steps.
	ResizePolicyAllow ResizePolicy = iota
	// ResizePolicyAvoid resizes only when a hard fill-factor limit is
	// breached, and only performs rehash steps on writes, never on reads.
	// Intended for the window around a fork().
	ResizePolicyAvoid
	// ResizePolicyForbid never shrinks and performs no incremental rehash
	// steps on reads or writes. An insert that would push the fill factor
	// past the soft limit still grows the table.
	ResizePolicyForbid
)

func (p ResizePolicy) String() string {
	switch p {
	case ResizePolicyAllow:
		return "allow"
	case ResizePolicyAvoid:
		return "avoid"
	case ResizePolicyForbid:
		return "forbid"
	default:
		return "unknown"
	}
}

var processResizePolicy = ResizePolicyAllow

// SetResizePolicy installs the process-wide resize policy, affecting every
// existing and future table.
func SetResizePolicy(p ResizePolicy) {
	processResizePolicy = p
}

// GetResizePolicy returns the currently installed process-wide resize
// policy.
func GetResizePolicy() ResizePolicy {
	return processResizePolicy
}
