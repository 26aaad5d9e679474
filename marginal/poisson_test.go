package marginal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// TestPoissonFit is the method-of-moments estimate: the mean, nothing else.
func TestPoissonFit(t *testing.T) {
	p, err := poisson{}.fit([]float64{0, 1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 2.0, p.Mean)
	assert.True(t, math.IsNaN(p.Size))
	assert.True(t, math.IsNaN(p.ZeroProb))

	_, err = poisson{}.fit(nil)
	assert.ErrorIs(t, err, ErrEmptySample)
}

// TestPoissonQuantile_KnownValues pins the quantile of Poisson(1):
// P(X=0) ≈ 0.3679, P(X≤1) ≈ 0.7358.
func TestPoissonQuantile_KnownValues(t *testing.T) {
	assert.Equal(t, 0.0, poissonQuantile(1, 0.36))
	assert.Equal(t, 1.0, poissonQuantile(1, 0.40))
	assert.Equal(t, 1.0, poissonQuantile(1, 0.73))
	assert.Equal(t, 2.0, poissonQuantile(1, 0.74))

	assert.Zero(t, poissonQuantile(0, 0.99), "zero rate is a point mass")
}

// TestPoissonQuantile_LargeMean exercises the log-space start: P(0) for
// lambda = 800 underflows a direct exp, the quantile must still bracket the
// mean.
func TestPoissonQuantile_LargeMean(t *testing.T) {
	q := poissonQuantile(800, 0.5)
	assert.InDelta(t, 800, q, 2, "median of Poisson(800)")
}

// TestPoissonSample_Moments checks sampled mean and variance agree (both
// equal lambda for a Poisson).
func TestPoissonSample_Moments(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	draws := poisson{}.sample(Params{Mean: 3}, 20000, rng)

	mean, variance := momentsOf(draws)
	assert.InDelta(t, 3.0, mean, 0.1)
	assert.InDelta(t, 3.0, variance, 0.25)
}

// TestClampUniform keeps uniforms strictly inside (0, 1).
func TestClampUniform(t *testing.T) {
	assert.Equal(t, minUniform, clampUniform(0))
	assert.Equal(t, minUniform, clampUniform(-3))
	assert.Equal(t, 1-minUniform, clampUniform(1))
	assert.Equal(t, 0.5, clampUniform(0.5))
}
