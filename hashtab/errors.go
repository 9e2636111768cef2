// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

package hashtab

import (
	"errors"
	"fmt"

	"github.com/aristanetworks/hashtab/errs"
)

// Error tags for the three failure kinds spec.md §7 recognizes.
const (
	tagOverflow          errs.Tag = "overflow"
	tagContractViolation errs.Tag = "contract-violation"
	tagAllocation        errs.Tag = "allocation"
)

// ErrOverflow is returned by TryResize/TryExpand when the requested
// capacity exceeds what the table can address. No state is modified.
var ErrOverflow = errs.New(tagOverflow, errs.SevError, "requested capacity overflows the addressable bucket range")

// ErrAllocationFailed is returned by the Try-prefixed entry points when the
// configured Allocator declines an allocation.
var ErrAllocationFailed = errs.New(tagAllocation, errs.SevError, "allocator declined the request")

// contractViolation panics with a *errs.Tagged, used for conditions
// spec.md §7 calls "programmer error": unbalanced pause counters, a
// position token used twice, or mutation detected under an unsafe
// iterator's fingerprint.
func contractViolation(format string, args ...interface{}) {
	panic(errs.New(tagContractViolation, errs.SevFatal, fmt.Sprintf(format, args...)))
}

// IsOverflow reports whether err is (or wraps) ErrOverflow.
func IsOverflow(err error) bool {
	return errors.Is(err, ErrOverflow)
}
