// Copyright (c) 2015 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package value defines the Value interface used by key.Key to accept
// application-defined key types that are not natively comparable/hashable.
package value

// Value is implemented by application-defined types that want to be usable
// as a key.Key: they must be stringifiable, JSON-marshalable, and able to
// hand back a plain Go value for the cases (e.g. equality, hashing) that
// don't care about the richer type.
type Value interface {
	String() string
	MarshalJSON() ([]byte, error)
	ToBuiltin() interface{}
}
