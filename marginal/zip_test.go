package marginal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// TestZIPFit_RecoversParameters fits synthetic ZIP(pi=0.3, lambda=4)
// counts and checks both parameters land near the truth.
func TestZIPFit_RecoversParameters(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	truth := Params{Mean: 4, ZeroProb: 0.3}
	counts := zeroInflatedPoisson{}.sample(truth, 5000, rng)

	p, err := zeroInflatedPoisson{}.fit(counts)
	require.NoError(t, err)
	assert.InDelta(t, truth.Mean, p.Mean, 0.4, "rate estimate")
	assert.InDelta(t, truth.ZeroProb, p.ZeroProb, 0.08, "inflation estimate")
	assert.True(t, math.IsNaN(p.Size), "dispersion must stay missing")
}

// TestZIPFit_SatisfiesMomentConditions checks the defining MLE equations on
// the fitted parameters: the fitted mean matches the sample mean and the
// fitted zero probability matches the observed zero fraction.
func TestZIPFit_SatisfiesMomentConditions(t *testing.T) {
	counts := make([]float64, 200)
	for i := 0; i < 100; i++ {
		counts[i] = float64(1 + i%7)
	}
	// Remaining 100 entries stay zero: far more zeros than Poisson allows.

	p, err := zeroInflatedPoisson{}.fit(counts)
	require.NoError(t, err)

	fittedMean := (1 - p.ZeroProb) * p.Mean
	assert.InDelta(t, sampleMean(counts), fittedMean, 1e-6, "mean equation")

	fittedP0 := p.ZeroProb + (1-p.ZeroProb)*math.Exp(-p.Mean)
	assert.InDelta(t, 0.5, fittedP0, 1e-6, "zero-fraction equation")
}

// TestZIPFit_NoExcessZeros verifies that a sample whose zero fraction is
// already explained by a plain Poisson is reported as degenerate.
func TestZIPFit_NoExcessZeros(t *testing.T) {
	counts := []float64{1, 2, 3, 1, 2, 3, 4, 2, 1, 2}

	_, err := zeroInflatedPoisson{}.fit(counts)
	assert.ErrorIs(t, err, errFitDegenerate)
}

// TestZIPQuantile splits the unit interval at the inflation mass.
func TestZIPQuantile(t *testing.T) {
	p := Params{Mean: 4, ZeroProb: 0.3}

	assert.Zero(t, zeroInflatedPoisson{}.quantile(p, 0.1))
	assert.Zero(t, zeroInflatedPoisson{}.quantile(p, 0.3))

	// Above the inflation mass the tail is a rescaled Poisson quantile.
	u := 0.3 + 0.7*0.5
	want := poissonQuantile(4, 0.5)
	assert.Equal(t, want, zeroInflatedPoisson{}.quantile(p, u))
}

// TestZIPSample_ZeroFraction checks the structural zeros show up at the
// configured rate.
func TestZIPSample_ZeroFraction(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	draws := zeroInflatedPoisson{}.sample(Params{Mean: 8, ZeroProb: 0.4}, 20000, rng)

	zeros := 0
	for _, v := range draws {
		require.GreaterOrEqual(t, v, 0.0)
		if v == 0 {
			zeros++
		}
	}
	// Poisson(8) contributes almost no zeros of its own.
	assert.InDelta(t, 0.4, float64(zeros)/float64(len(draws)), 0.02)
}
