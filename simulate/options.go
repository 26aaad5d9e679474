// SPDX-License-Identifier: MIT

// Package simulate: functional configuration of ConstructNull. Defaults
// are documented constants; option constructors only record values, and
// all validation happens inside Run before any computation (configuration
// errors are returned, never panicked).

package simulate

import (
	"go.uber.org/zap"

	"github.com/synthcell/nullgen/factor"
	"github.com/synthcell/nullgen/marginal"
)

// Defaults for zero-value behavior.
const (
	// DefaultWorkers of 0 sizes the gene worker pool to GOMAXPROCS.
	DefaultWorkers = 0

	// DefaultFastMode enables the native copula pipeline; disabling it
	// delegates to a configured SlowSimulator.
	DefaultFastMode = true

	// DefaultCorrelationCutoff is the important-gene non-zero-fraction
	// threshold.
	DefaultCorrelationCutoff = marginal.DefaultImportanceCutoff

	// DefaultSparseCorrelation selects the plain Pearson estimator; the
	// sparse-thresholded estimator is an explicit caller choice for the
	// genes ≫ cells regime.
	DefaultSparseCorrelation = false

	// DefaultApproximation selects the exact Cholesky factor; block
	// approximation is an explicit caller choice for large gene sets.
	DefaultApproximation = false
)

// options is the internal configuration state. Fields are unexported;
// public APIs consume ...Option.
type options struct {
	workers int

	seed   uint64
	seeded bool

	logger *zap.Logger

	fastMode   bool
	cutoff     float64
	sparseCorr bool
	sparseTau  float64
	approx     bool
	factorCfg  factor.Config

	formula    string
	covariates map[string][]float64
	slow       SlowSimulator
}

// Option mutates internal options; safe to apply repeatedly.
type Option func(*options)

func defaultOptions() options {
	return options{
		workers:   DefaultWorkers,
		logger:    zap.NewNop(),
		fastMode:  DefaultFastMode,
		cutoff:    DefaultCorrelationCutoff,
		factorCfg: factor.DefaultConfig(),
	}
}

// WithWorkers sets the gene worker-pool size; 0 means GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithSeed fixes the base random seed, making the whole call
// reproducible. Replicate r derives an independent stream from the base.
// Without it, runs are time-seeded.
func WithSeed(seed uint64) Option {
	return func(o *options) { o.seed, o.seeded = seed, true }
}

// WithLogger installs the diagnostics logger (default: no-op).
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithFastMode toggles the native copula pipeline. Disabled, the call is
// delegated to the SlowSimulator configured via WithSlowSimulator.
func WithFastMode(enabled bool) Option {
	return func(o *options) { o.fastMode = enabled }
}

// WithCorrelationCutoff sets the important-gene non-zero-fraction
// threshold (must be in [0, 1)).
func WithCorrelationCutoff(cutoff float64) Option {
	return func(o *options) { o.cutoff = cutoff }
}

// WithSparseCorrelation selects the sparse-thresholded correlation
// estimator for the high-dimensional regime.
func WithSparseCorrelation(enabled bool) Option {
	return func(o *options) { o.sparseCorr = enabled }
}

// WithSparseThreshold overrides the sparse estimator's hard threshold;
// 0 selects the universal rate sqrt(log d / n). Only meaningful together
// with WithSparseCorrelation.
func WithSparseThreshold(tau float64) Option {
	return func(o *options) { o.sparseTau = tau }
}

// WithApproximation selects the block-approximate factorization. It has
// effect only under fast mode; otherwise it is a no-op.
func WithApproximation(enabled bool) Option {
	return func(o *options) { o.approx = enabled }
}

// WithFactorConfig overrides the block-approximation tuning constants.
func WithFactorConfig(cfg factor.Config) Option {
	return func(o *options) { o.factorCfg = cfg }
}

// WithFormula sets the slow-path model formula. Supplying one under fast
// mode is a configuration error (rejected, not ignored).
func WithFormula(formula string) Option {
	return func(o *options) { o.formula = formula }
}

// WithCovariates sets named per-cell covariate vectors for the slow path.
// Supplying them under fast mode is a configuration error.
func WithCovariates(covariates map[string][]float64) Option {
	return func(o *options) { o.covariates = covariates }
}

// WithSlowSimulator installs the external covariate-general simulator
// used when fast mode is disabled.
func WithSlowSimulator(s SlowSimulator) Option {
	return func(o *options) { o.slow = s }
}
