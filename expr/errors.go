// SPDX-License-Identifier: MIT
// Package expr: sentinel error set. All constructors and accessors return
// these sentinels (possibly wrapped with context via %w); tests match them
// with errors.Is.

package expr

import "errors"

var (
	// ErrNilMatrix indicates a nil *Matrix receiver or argument.
	ErrNilMatrix = errors.New("expr: nil matrix")

	// ErrBadShape is returned when a requested shape is invalid (zero or
	// negative gene/cell count) or the data length does not match it.
	ErrBadShape = errors.New("expr: invalid shape")

	// ErrEmptyName is returned when a gene or cell identifier is empty.
	// Identifiers are mandatory; the pipeline addresses results by name.
	ErrEmptyName = errors.New("expr: empty identifier")

	// ErrDuplicateName is returned when a gene or cell identifier occurs
	// more than once.
	ErrDuplicateName = errors.New("expr: duplicate identifier")

	// ErrNegativeValue is returned when a matrix entry is negative.
	// Expression counts are non-negative by definition.
	ErrNegativeValue = errors.New("expr: negative value")

	// ErrNotFinite is returned when a matrix entry is NaN or ±Inf.
	ErrNotFinite = errors.New("expr: NaN or Inf value")

	// ErrOutOfRange indicates a row or column index outside valid bounds.
	ErrOutOfRange = errors.New("expr: index out of range")

	// ErrUnknownGene indicates a gene name that is not present in the matrix.
	ErrUnknownGene = errors.New("expr: unknown gene")
)
