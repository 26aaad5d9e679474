package marginal_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/synthcell/nullgen/expr"
	"github.com/synthcell/nullgen/marginal"
)

// TestFamilyRoundTrip checks String and ParseFamily agree on every family.
func TestFamilyRoundTrip(t *testing.T) {
	for _, f := range []marginal.Family{
		marginal.NegBinomial,
		marginal.Poisson,
		marginal.ZeroInflatedPoisson,
		marginal.Binomial,
		marginal.ZeroInflatedNegBinomial,
		marginal.Gaussian,
	} {
		got, err := marginal.ParseFamily(f.String())
		require.NoError(t, err, f.String())
		assert.Equal(t, f, got)
	}

	_, err := marginal.ParseFamily("cauchy")
	assert.ErrorIs(t, err, marginal.ErrUnknownFamily)
}

// TestFamilyFastPath: only NB, Poisson and ZIP carry native implementations.
func TestFamilyFastPath(t *testing.T) {
	assert.True(t, marginal.NegBinomial.FastPath())
	assert.True(t, marginal.Poisson.FastPath())
	assert.True(t, marginal.ZeroInflatedPoisson.FastPath())
	assert.False(t, marginal.Binomial.FastPath())
	assert.False(t, marginal.ZeroInflatedNegBinomial.FastPath())
	assert.False(t, marginal.Gaussian.FastPath())
}

// TestFitGenes_SkipsFilteredAndFallsBack fits a matrix containing a clean
// NB gene, a constant gene with no NB optimum and a near-empty gene.
func TestFitGenes_SkipsFilteredAndFallsBack(t *testing.T) {
	const cells = 60
	rows := make([][]float64, 3)
	for i := range rows {
		rows[i] = make([]float64, cells)
	}
	// g1: overdispersed integer counts, fits cleanly.
	for j := 0; j < cells; j++ {
		rows[0][j] = float64((j * 7) % 13)
	}
	// g2: constant ones, variance zero, NB fit must fall back.
	for j := 0; j < cells; j++ {
		rows[1][j] = 1
	}
	// g3: a single non-zero observation, filtered before fitting.
	rows[2][5] = 4

	m, err := expr.NewFromRows(
		[]string{"g1", "g2", "g3"},
		expr.CanonicalCells(cells),
		expr.Dense,
		rows,
	)
	require.NoError(t, err)

	fits, err := marginal.FitGenes(m, marginal.NegBinomial, marginal.DefaultImportanceCutoff, 2, nil)
	require.NoError(t, err)

	clean, ok := fits.Result("g1")
	require.True(t, ok)
	assert.False(t, clean.Fallback)
	assert.Equal(t, marginal.NegBinomial, clean.Family)
	assert.Greater(t, clean.Params.Size, 0.0)

	fb, ok := fits.Result("g2")
	require.True(t, ok)
	assert.True(t, fb.Fallback)
	assert.NotEmpty(t, fb.Reason)
	assert.Equal(t, 1.0, fb.Params.Mean)
	assert.True(t, math.IsNaN(fb.Params.Size))
	assert.Equal(t, []string{"g2"}, fits.FallbackGenes())

	_, ok = fits.Result("g3")
	assert.False(t, ok, "filtered genes are never fitted")
	assert.Equal(t, []string{"g3"}, fits.Partition.Filtered)
}

// TestFitGenes_UnsupportedFamily: slow-path families are rejected before any
// fitting happens.
func TestFitGenes_UnsupportedFamily(t *testing.T) {
	m, err := expr.NewDense([]string{"g1"}, expr.CanonicalCells(4), []float64{1, 2, 3, 4})
	require.NoError(t, err)

	_, err = marginal.FitGenes(m, marginal.Gaussian, 0.1, 1, nil)
	assert.ErrorIs(t, err, marginal.ErrUnsupportedFamily)
}

// TestFitResult_FallbackSamplesPoisson: a fallback result samples from the
// Poisson with the method-of-moments mean, never NaN.
func TestFitResult_FallbackSamplesPoisson(t *testing.T) {
	const cells = 40
	rows := [][]float64{make([]float64, cells)}
	for j := range rows[0] {
		rows[0][j] = 2
	}
	m, err := expr.NewFromRows([]string{"g1"}, expr.CanonicalCells(cells), expr.Dense, rows)
	require.NoError(t, err)

	fits, err := marginal.FitGenes(m, marginal.NegBinomial, 0.1, 1, nil)
	require.NoError(t, err)
	fb, ok := fits.Result("g1")
	require.True(t, ok)
	require.True(t, fb.Fallback)

	rng := rand.New(rand.NewSource(1))
	draws := fb.Sample(5000, rng)
	mean := 0.0
	for _, v := range draws {
		require.False(t, math.IsNaN(v))
		require.GreaterOrEqual(t, v, 0.0)
		mean += v
	}
	mean /= float64(len(draws))
	assert.InDelta(t, 2.0, mean, 0.15)

	q := fb.Quantile([]float64{0.01, 0.5, 0.99})
	assert.True(t, q[0] <= q[1] && q[1] <= q[2], "quantiles are monotone")
}
