// SPDX-License-Identifier: MIT
// Package simulate: sentinel error set for configuration errors. All are
// fatal and raised before any computation starts.

package simulate

import "errors"

var (
	// ErrBadReplicates is returned for a non-positive replicate count.
	ErrBadReplicates = errors.New("simulate: replicate count must be positive")

	// ErrBadWorkers is returned for a negative worker count (zero means
	// one worker per available CPU).
	ErrBadWorkers = errors.New("simulate: worker count must be non-negative")

	// ErrCovariatesFastPath is returned when a formula or extra covariates
	// are supplied under fast mode; covariate-conditioned marginals exist
	// only on the slow path.
	ErrCovariatesFastPath = errors.New("simulate: formula/covariates require fast mode disabled")

	// ErrSlowPathUnavailable is returned when fast mode is disabled but no
	// SlowSimulator is configured.
	ErrSlowPathUnavailable = errors.New("simulate: slow path requested but no simulator configured")
)
