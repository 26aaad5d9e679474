// SPDX-License-Identifier: MIT
// Package factor: sentinel error set.

package factor

import "errors"

var (
	// ErrNilCorrelation indicates a nil correlation matrix.
	ErrNilCorrelation = errors.New("factor: nil correlation matrix")

	// ErrTooFewDimensions is returned for a correlation matrix smaller
	// than 2×2; correlation modeling should have been skipped upstream.
	ErrTooFewDimensions = errors.New("factor: correlation matrix smaller than 2x2")

	// ErrNotPositiveDefinite is returned by exact mode when the
	// ridge-stabilized correlation matrix fails Cholesky factorization.
	// This is fatal: exact mode never repairs the matrix.
	ErrNotPositiveDefinite = errors.New("factor: correlation matrix not positive definite")

	// ErrEigenFailed indicates that the symmetric eigendecomposition used
	// for eigenvalue flooring did not converge.
	ErrEigenFailed = errors.New("factor: eigendecomposition failed")

	// ErrSVDFailed indicates that the cross-block SVD did not converge.
	ErrSVDFailed = errors.New("factor: SVD failed")

	// ErrBadConfig is returned for non-positive tuning constants.
	ErrBadConfig = errors.New("factor: invalid configuration")
)
