package sampler

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/synthcell/nullgen/expr"
	"github.com/synthcell/nullgen/factor"
	"github.com/synthcell/nullgen/marginal"
)

var (
	// ErrNilFits indicates missing fit results.
	ErrNilFits = errors.New("sampler: nil fits")

	// ErrBadCellCount is returned for a non-positive target cell count.
	ErrBadCellCount = errors.New("sampler: cell count must be positive")

	// ErrFactorDim is returned when the factor dimension does not match
	// the number of important genes.
	ErrFactorDim = errors.New("sampler: factor dimension mismatch")

	// ErrMissingFit indicates an unfiltered gene without a fit result;
	// the fit phase guarantees this never happens.
	ErrMissingFit = errors.New("sampler: missing fit for gene")
)

// BuildReplicate generates one synthetic genes × cells matrix. genes fixes
// the output row order, fac may be nil (fewer than 2 important genes: every
// gene independent), storage selects the output backend, and rng is the
// replicate's base random stream. workers ≤ 0 means GOMAXPROCS.
func BuildReplicate(
	genes []string,
	cells int,
	storage expr.Storage,
	fits *marginal.Fits,
	fac factor.Factor,
	workers int,
	rng *rand.Rand,
	logger *zap.Logger,
) (*expr.Matrix, error) {
	if fits == nil || fits.Partition == nil {
		return nil, ErrNilFits
	}
	if cells <= 0 {
		return nil, fmt.Errorf("%d cells: %w", cells, ErrBadCellCount)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	part := fits.Partition
	if fac != nil && fac.Dim() != len(part.Important) {
		return nil, fmt.Errorf("factor dim %d, important genes %d: %w",
			fac.Dim(), len(part.Important), ErrFactorDim)
	}

	// Copula-uniform scores for important genes, one column per gene in
	// partition order. Drawn from the base stream before the pool starts.
	var uniform map[string][]float64
	if fac != nil {
		z := fac.SampleNormal(cells, rng)
		uniform = make(map[string][]float64, len(part.Important))
		for j, gene := range part.Important {
			u := make([]float64, cells)
			for i := range u {
				u[i] = distuv.UnitNormal.CDF(z.At(i, j))
			}
			uniform[gene] = u
		}
	}

	// One deterministic seed per gene, drawn sequentially so the result
	// does not depend on worker scheduling.
	seeds := make([]uint64, len(genes))
	for i := range seeds {
		seeds[i] = rng.Uint64()
	}

	rows := make([][]float64, len(genes))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, gene := range genes {
		i, gene := i, gene
		g.Go(func() error {
			class, ok := part.Class(gene)
			if !ok || class == marginal.ClassFiltered {
				rows[i] = make([]float64, cells)

				return nil
			}
			fit, ok := fits.Result(gene)
			if !ok {
				return fmt.Errorf("%q: %w", gene, ErrMissingFit)
			}
			if class == marginal.ClassImportant && uniform != nil {
				rows[i] = fit.Quantile(uniform[gene])

				return nil
			}
			geneRng := rand.New(rand.NewSource(seeds[i]))
			rows[i] = fit.Sample(cells, geneRng)

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	scrubbed := scrubRows(rows)
	if scrubbed > 0 {
		logger.Warn("replaced missing sampled values with zero", zap.Int("count", scrubbed))
	}

	return expr.NewFromRows(genes, expr.CanonicalCells(cells), storage, rows)
}

// scrubRows replaces residual NaN entries with zero, returning how many
// were replaced.
func scrubRows(rows [][]float64) int {
	n := 0
	for _, row := range rows {
		for j, v := range row {
			if math.IsNaN(v) {
				row[j] = 0
				n++
			}
		}
	}

	return n
}
