// Copyright (c) 2015 Arista Networks, Inc.
// Use of this source code is governed by the Apache License 2.0
// that can be found in the COPYING file.

// Package errs provides a small tagged-error type: an error carries a
// short, stable Tag (for programmatic switch/case handling), a Severity,
// a human Message, and an optional Info side-map for structured detail.
//
// This is the same shape the original NETCONF-specific error type in this
// package used (error-type/error-tag/error-severity/error-info, per
// RFC6241 §4.3), generalized so any package in this module can build its
// own small family of tagged errors without re-deriving the pattern.
package errs

import "fmt"

// Severity classifies how serious a Tagged error is.
type Severity string

const (
	// SevNone indicates that the severity is not set.
	SevNone Severity = "none"
	// SevWarning indicates a condition the caller can reasonably ignore.
	SevWarning Severity = "warning"
	// SevError indicates the operation could not complete as requested.
	SevError Severity = "error"
	// SevFatal indicates a contract violation: a programmer error that
	// should not be recovered from.
	SevFatal Severity = "fatal"
)

// Tag is a short, stable identifier for a family of errors, meant to be
// switched on by callers instead of matching on Message text.
type Tag string

// Tagged is a structured error: a Tag for programmatic handling, a
// Severity, a human-readable Message, and an optional Info map for
// structured detail (e.g. the requested vs. available capacity on an
// overflow).
type Tagged struct {
	Tag      Tag
	Severity Severity
	Message  string
	Info     map[string]interface{}
}

// New creates a Tagged error.
func New(tag Tag, severity Severity, message string) *Tagged {
	return &Tagged{Tag: tag, Severity: severity, Message: message}
}

// WithInfo attaches a key/value pair to the error's Info map and returns the
// same error, for chaining at the call site.
func (e *Tagged) WithInfo(key string, value interface{}) *Tagged {
	if e.Info == nil {
		e.Info = map[string]interface{}{}
	}
	e.Info[key] = value
	return e
}

// Error implements the error interface.
func (e *Tagged) Error() string {
	return fmt.Sprintf("%s: %s", e.Tag, e.Message)
}

// Is reports whether other is a *Tagged with the same Tag, so that
// errors.Is(err, errs.New(SomeTag, ...)) works for sentinel-style checks.
func (e *Tagged) Is(other error) bool {
	o, ok := other.(*Tagged)
	return ok && o.Tag == e.Tag
}

// HasTag reports whether err is a *Tagged carrying tag.
func HasTag(err error, tag Tag) bool {
	t, ok := err.(*Tagged)
	return ok && t.Tag == tag
}
