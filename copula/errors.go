// SPDX-License-Identifier: MIT
// Package copula: sentinel error set.

package copula

import "errors"

var (
	// ErrNilScores indicates a nil score matrix.
	ErrNilScores = errors.New("copula: nil score matrix")

	// ErrTooFewGenes is returned when fewer than 2 important genes are
	// offered for correlation modeling; the caller should skip correlation
	// entirely and sample genes independently.
	ErrTooFewGenes = errors.New("copula: fewer than 2 important genes")

	// ErrTooFewCells is returned when the score matrix has fewer than 2
	// observations per gene.
	ErrTooFewCells = errors.New("copula: fewer than 2 cells")

	// ErrBadRidge is returned for a negative or non-finite ridge.
	ErrBadRidge = errors.New("copula: ridge must be non-negative and finite")

	// ErrBadThreshold is returned for a negative or non-finite sparse
	// threshold.
	ErrBadThreshold = errors.New("copula: threshold must be non-negative and finite")
)
