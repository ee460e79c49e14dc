// Package transform reshapes upstream statistics responses into the
// structures served to the frontend. Functions here are pure.
package transform

import "errors"

var (
	// ErrLengthMismatch is returned when two sequences that are paired
	// positionally have different lengths.
	ErrLengthMismatch = errors.New("paired sequences differ in length")

	// ErrMalformedSegment is returned when a segment lacks a field the
	// normalisation depends on.
	ErrMalformedSegment = errors.New("malformed segment")
)
