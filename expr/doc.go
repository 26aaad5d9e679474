// SPDX-License-Identifier: MIT

// Package expr defines the expression Matrix container shared by every stage
// of the nullgen pipeline: a non-negative genes × cells count matrix with
// mandatory, unique row (gene) and column (cell) identifiers.
//
// Two storage backends sit behind the one Matrix type:
//
//   - Dense:  a gonum mat.Dense, row-major, one float64 per entry.
//   - Sparse: a compressed-sparse-row (CSR) layout holding only non-zero
//     entries; the natural shape for droplet-based single-cell data where
//     most entries are zero.
//
// The backend is chosen at construction and preserved by every operation
// that produces a new Matrix, so sparse inputs yield sparse synthetic
// outputs. Construction is validation-first: nil/empty identifiers,
// duplicated identifiers, shape mismatches, and negative or non-finite
// values are rejected with package sentinel errors before any storage is
// retained.
package expr
