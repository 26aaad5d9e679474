// SPDX-License-Identifier: MIT

package simulate

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/synthcell/nullgen/copula"
	"github.com/synthcell/nullgen/expr"
	"github.com/synthcell/nullgen/factor"
	"github.com/synthcell/nullgen/marginal"
	"github.com/synthcell/nullgen/sampler"
)

// Report summarizes what a Run did: diagnostic counts mirroring the log
// messages, with no influence on output values.
type Report struct {
	FilteredGenes      int
	ImportantGenes     int
	UnimportantGenes   int
	ImportantFraction  float64
	FallbackGenes      []string
	CorrelationSkipped bool
	Approximate        bool
	FactorRank         int
	FlooredEigenvalues int
}

// ConstructNull generates one synthetic null matrix with the same per-gene
// marginals and inter-gene correlation as m but no latent cluster
// structure.
func ConstructNull(m *expr.Matrix, family marginal.Family, opts ...Option) (*expr.Matrix, error) {
	out, _, err := Run(m, family, 1, opts...)
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("simulate: slow simulator returned no replicates")
	}

	return out[0], nil
}

// ConstructNullReplicates generates an ordered sequence of n independent
// synthetic null matrices sharing one set of fitted parameters and one
// sampling factor.
func ConstructNullReplicates(m *expr.Matrix, family marginal.Family, n int, opts ...Option) ([]*expr.Matrix, error) {
	out, _, err := Run(m, family, n, opts...)

	return out, err
}

// Run is the full pipeline: validate configuration, fit marginals once,
// estimate and factorize the copula correlation once, then sample
// `replicates` independent synthetic matrices. The Report carries the
// diagnostic counts (nil when the call was delegated to the slow path).
func Run(m *expr.Matrix, family marginal.Family, replicates int, opts ...Option) ([]*expr.Matrix, *Report, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	// Configuration errors: all checked before any computation.
	if m == nil {
		return nil, nil, expr.ErrNilMatrix
	}
	if replicates < 1 {
		return nil, nil, fmt.Errorf("%d: %w", replicates, ErrBadReplicates)
	}
	if o.workers < 0 {
		return nil, nil, fmt.Errorf("%d: %w", o.workers, ErrBadWorkers)
	}

	if !o.fastMode {
		if o.slow == nil {
			return nil, nil, ErrSlowPathUnavailable
		}
		out, err := o.slow.Simulate(m, family, o.formula, o.covariates, replicates)

		return out, nil, err
	}

	if o.formula != "" || len(o.covariates) > 0 {
		return nil, nil, ErrCovariatesFastPath
	}
	if !family.FastPath() {
		return nil, nil, fmt.Errorf("%s: %w", family, marginal.ErrUnsupportedFamily)
	}

	if !o.seeded {
		o.seed = uint64(time.Now().UnixNano())
	}
	base := rand.New(rand.NewSource(o.seed))

	// Phase 1: per-gene marginal fits (parallel, once per call).
	fits, err := marginal.FitGenes(m, family, o.cutoff, o.workers, o.logger)
	if err != nil {
		return nil, nil, err
	}
	part := fits.Partition
	report := &Report{
		FilteredGenes:     len(part.Filtered),
		ImportantGenes:    len(part.Important),
		UnimportantGenes:  len(part.Unimportant),
		ImportantFraction: part.ImportantFraction(),
		FallbackGenes:     fits.FallbackGenes(),
		Approximate:       o.approx,
	}

	// Phase 2: copula correlation and factorization (once per call).
	// Fewer than 2 important genes short-circuits before any factorization
	// in both exact and approximate mode: every gene samples independently.
	var fac factor.Factor
	if len(part.Important) >= 2 {
		fac, err = buildFactor(m, part, &o, report)
		if err != nil {
			return nil, nil, err
		}
	} else {
		report.CorrelationSkipped = true
		o.logger.Info("correlation modeling skipped",
			zap.Int("important_genes", len(part.Important)),
		)
	}

	// Phase 3: independent replicates; only sampling is repeated.
	_, cells := m.Dims()
	genes := m.Genes()
	out := make([]*expr.Matrix, replicates)
	for r := range out {
		repRng := rand.New(rand.NewSource(base.Uint64()))
		out[r], err = sampler.BuildReplicate(genes, cells, m.Storage(), fits, fac, o.workers, repRng, o.logger)
		if err != nil {
			return nil, nil, fmt.Errorf("replicate %d: %w", r, err)
		}
	}

	o.logger.Info("constructed null dataset",
		zap.Int("replicates", replicates),
		zap.Int("genes", len(genes)),
		zap.Int("cells", cells),
		zap.Bool("approximate", o.approx),
		zap.Bool("correlation_skipped", report.CorrelationSkipped),
	)

	return out, report, nil
}

// buildFactor estimates the copula correlation of the important genes and
// factorizes it in the configured mode.
func buildFactor(m *expr.Matrix, part *marginal.Partition, o *options, report *Report) (factor.Factor, error) {
	scores, err := copula.NormalScores(m, part.ImportantIdx)
	if err != nil {
		return nil, err
	}

	var corr *mat.SymDense
	if o.sparseCorr {
		corr, err = copula.SparseCorrelation(scores, o.sparseTau, copula.DefaultRidge)
	} else {
		corr, err = copula.Correlation(scores, copula.DefaultRidge)
	}
	if err != nil {
		return nil, err
	}

	if o.approx {
		fac, stats, blockErr := factor.Block(corr, o.factorCfg)
		if blockErr != nil {
			return nil, blockErr
		}
		report.FactorRank = stats.Rank
		report.FlooredEigenvalues = stats.FlooredEigen
		if stats.FlooredEigen > 0 {
			o.logger.Info("floored eigenvalues during block factorization",
				zap.Int("count", stats.FlooredEigen),
				zap.Int("rank", stats.Rank),
			)
		}

		return fac, nil
	}

	// Exact mode: non-positive-definiteness after ridging is fatal.
	return factor.Exact(corr)
}
