// core/strs/errors.go
package strs

import "errors"

// Construction errors
var (
	// ErrInvalidWindow indicates a malformed query window (start < 0,
	// start > end, or end beyond the sequence).
	ErrInvalidWindow = errors.New("invalid query window")

	// ErrInvalidMaxPeriod indicates a non-positive maximum period.
	ErrInvalidMaxPeriod = errors.New("max period must be positive")
)

// Query errors
var (
	// ErrPositionOutOfWindow indicates a queried position outside [start, end).
	ErrPositionOutOfWindow = errors.New("position outside query window")
)
