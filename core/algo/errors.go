// Package algo has the pure computational core: normalization, fitness scoring,
// optimal assignment and ranking. Nothing in here performs I/O.
package algo

import "errors"

// Error classes reported by the Score Builder and the Assignment Solver.
// Every returned error wraps exactly one of these, so callers use errors.Is.
var (
	// ErrInvalidInput reports malformed or missing per-player statistics.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidMatrix reports a malformed fitness matrix.
	ErrInvalidMatrix = errors.New("invalid matrix")

	// ErrEmptyInput reports a matrix with zero players or zero positions.
	ErrEmptyInput = errors.New("empty input")
)
