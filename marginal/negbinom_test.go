package marginal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// TestNegBinomialFit_RecoversParameters fits synthetic NB(size=2, mu=5)
// counts and checks the MLE lands near the truth.
func TestNegBinomialFit_RecoversParameters(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	truth := Params{Mean: 5, Size: 2}
	counts := negBinomial{}.sample(truth, 5000, rng)

	p, err := negBinomial{}.fit(counts)
	require.NoError(t, err)
	assert.InDelta(t, truth.Mean, p.Mean, 0.3, "mean estimate")
	assert.InDelta(t, truth.Size, p.Size, 0.8, "size estimate")
	assert.True(t, math.IsNaN(p.ZeroProb), "ZIP parameter must stay missing")
}

// TestNegBinomialFit_Underdispersed verifies that a sample with variance
// below its mean has no NB optimum and reports a degenerate fit.
func TestNegBinomialFit_Underdispersed(t *testing.T) {
	// 0/1 pattern: mean 0.9, variance 0.09.
	counts := make([]float64, 100)
	for i := range counts {
		if i%10 != 0 {
			counts[i] = 1
		}
	}

	_, err := negBinomial{}.fit(counts)
	assert.ErrorIs(t, err, errFitDegenerate)
}

// TestNegBinomialFit_EmptySample covers the empty-input sentinel.
func TestNegBinomialFit_EmptySample(t *testing.T) {
	_, err := negBinomial{}.fit(nil)
	assert.ErrorIs(t, err, ErrEmptySample)
}

// TestNBQuantile_InvertsCDF walks the NB CDF directly and checks the
// quantile function lands on the matching count just below and above each
// CDF step.
func TestNBQuantile_InvertsCDF(t *testing.T) {
	const (
		size = 2.0
		mu   = 4.0
	)
	p := size / (size + mu)

	pmf := math.Pow(p, size)
	cdf := pmf
	for k := 0; k < 10; k++ {
		assert.Equal(t, float64(k), nbQuantile(size, mu, cdf-1e-9), "quantile below step %d", k)
		assert.Equal(t, float64(k+1), nbQuantile(size, mu, cdf+1e-9), "quantile above step %d", k)
		pmf *= (size + float64(k)) / float64(k+1) * (1 - p)
		cdf += pmf
	}
}

// TestNBQuantile_Extremes pins the clamped tails.
func TestNBQuantile_Extremes(t *testing.T) {
	assert.Zero(t, nbQuantile(2, 4, minUniform), "lower tail maps to zero")
	assert.Zero(t, nbQuantile(2, 0, 0.99), "zero mean is a point mass at zero")

	hi := nbQuantile(2, 4, 1-minUniform)
	assert.Greater(t, hi, 20.0, "upper tail is far out")
	assert.Less(t, hi, float64(countQuantileBound(4, 4+8)), "walk terminates within its bound")
}

// TestNegBinomialSample_Moments checks sampled moments against NB theory:
// mean mu, variance mu + mu²/size.
func TestNegBinomialSample_Moments(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	p := Params{Mean: 6, Size: 3}
	draws := negBinomial{}.sample(p, 20000, rng)

	mean, variance := momentsOf(draws)
	assert.InDelta(t, 6.0, mean, 0.15, "sample mean")
	assert.InDelta(t, 6+36.0/3, variance, 1.5, "sample variance")
	for _, v := range draws {
		require.GreaterOrEqual(t, v, 0.0)
		require.Equal(t, math.Trunc(v), v, "counts must be integers")
	}
}

// momentsOf returns the sample mean and variance of x.
func momentsOf(x []float64) (mean, variance float64) {
	mean = sampleMean(x)
	for _, v := range x {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(x) - 1)

	return mean, variance
}
