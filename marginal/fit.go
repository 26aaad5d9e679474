package marginal

import (
	"fmt"
	"math"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/synthcell/nullgen/expr"
)

// Fits is the immutable outcome of the fit phase: the gene partition plus
// one FitResult per fittable gene, keyed by gene name. It is built once
// per ConstructNull call and shared read-only across all sampling workers
// and replicates.
type Fits struct {
	Partition *Partition

	byGene        map[string]FitResult
	fallbackGenes []string
}

// Result returns the fit for the named gene; ok is false for filtered
// (never fitted) and unknown genes.
func (f *Fits) Result(gene string) (FitResult, bool) {
	r, ok := f.byGene[gene]

	return r, ok
}

// FallbackGenes lists genes whose primary MLE failed, in input row order.
func (f *Fits) FallbackGenes() []string {
	return append([]string(nil), f.fallbackGenes...)
}

// FitGenes partitions the genes of m and fits the declared family to every
// fittable gene across a worker pool of the given size (≤0 means
// GOMAXPROCS). Per-gene MLE failures are absorbed as Poisson fallbacks and
// logged; only configuration-level problems (unsupported family, bad
// cutoff) return an error.
func FitGenes(m *expr.Matrix, family Family, cutoff float64, workers int, logger *zap.Logger) (*Fits, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	d, err := family.dist()
	if err != nil {
		return nil, err
	}
	part, err := PartitionGenes(m, cutoff)
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	genes, _ := m.Dims()
	names := m.Genes()
	results := make([]*FitResult, genes) // indexed by row; nil for filtered

	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < genes; i++ {
		if part.class[names[i]] == ClassFiltered {
			continue
		}
		i := i
		g.Go(func() error {
			row, rowErr := m.Row(nil, i)
			if rowErr != nil {
				return rowErr
			}
			res := fitOne(names[i], family, d, row)
			results[i] = &res

			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, fmt.Errorf("fit phase: %w", err)
	}

	fits := &Fits{
		Partition: part,
		byGene:    make(map[string]FitResult, genes),
	}
	for i, res := range results {
		if res == nil {
			continue
		}
		// A NaN mean would poison every downstream draw.
		if math.IsNaN(res.Params.Mean) {
			logger.Warn("replacing missing mean with zero", zap.String("gene", res.Gene))
			res.Params.Mean = 0
		}
		if res.Fallback {
			fits.fallbackGenes = append(fits.fallbackGenes, names[i])
			logger.Debug("marginal fit fell back to Poisson",
				zap.String("gene", res.Gene),
				zap.String("reason", res.Reason),
			)
		}
		fits.byGene[res.Gene] = *res
	}

	logger.Info("fitted marginal distributions",
		zap.String("family", family.String()),
		zap.Int("genes", genes),
		zap.Int("filtered", len(part.Filtered)),
		zap.Float64("important_fraction", part.ImportantFraction()),
		zap.Int("fallbacks", len(fits.fallbackGenes)),
	)

	return fits, nil
}

// fitOne attempts the primary MLE for one gene, substituting the
// method-of-moments Poisson fallback on failure.
func fitOne(gene string, family Family, d distribution, counts []float64) FitResult {
	p, err := d.fit(counts)
	if err != nil {
		return fallbackResult(gene, family, counts, err.Error())
	}

	return FitResult{Gene: gene, Family: family, Params: p}
}
