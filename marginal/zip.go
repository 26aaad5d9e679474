package marginal

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Bisection bounds for the ZIP rate equation.
const (
	zipMaxLambda   = 1e6
	zipSolveTol    = 1e-10
	zipSolveRounds = 200
)

// zeroInflatedPoisson implements ZIP(pi, lambda): with probability pi the
// count is a structural zero, otherwise Poisson(lambda).
//
// The ZIP maximum-likelihood estimate satisfies two moment conditions
// simultaneously: the fitted mean matches the sample mean,
// (1-pi)·lambda = m̄, and the fitted zero probability matches the observed
// zero fraction, pi + (1-pi)e^{-lambda} = p̂0. Substituting the first into
// the second leaves one increasing scalar equation in lambda, solved by
// bisection on [m̄, ∞). A sample without excess zeros (p̂0 ≤ e^{-m̄}) has
// its optimum on the boundary pi ≤ 0 and is reported as degenerate.
type zeroInflatedPoisson struct{}

func (zeroInflatedPoisson) fit(counts []float64) (Params, error) {
	n := len(counts)
	if n == 0 {
		return Params{}, ErrEmptySample
	}
	mean := sampleMean(counts)
	if mean <= 0 {
		return Params{}, fmt.Errorf("non-positive mean %g: %w", mean, errFitDegenerate)
	}
	zeros := 0
	for _, x := range counts {
		if x == 0 {
			zeros++
		}
	}
	p0 := float64(zeros) / float64(n)
	if p0 <= math.Exp(-mean) {
		return Params{}, fmt.Errorf("no excess zeros (p0 %.4g): %w", p0, errFitDegenerate)
	}

	lambda, err := zipSolveLambda(mean, p0)
	if err != nil {
		return Params{}, err
	}
	pi := 1 - mean/lambda
	if pi <= 0 || pi >= 1 {
		return Params{}, fmt.Errorf("inflation %g outside (0, 1): %w", pi, errFitDegenerate)
	}

	return Params{Mean: lambda, Size: math.NaN(), ZeroProb: pi}, nil
}

// zipSolveLambda solves 1 - (m̄/λ)(1 - e^{-λ}) = p̂0 for λ ≥ m̄.
// The left side is negative at λ = m̄ when excess zeros exist and grows
// towards 1 - p̂0 > 0, so a root is bracketed by doubling.
func zipSolveLambda(mean, p0 float64) (float64, error) {
	g := func(lambda float64) float64 {
		return 1 - (mean/lambda)*(1-math.Exp(-lambda)) - p0
	}

	lo := mean
	hi := mean + 1
	for g(hi) <= 0 {
		hi *= 2
		if hi > zipMaxLambda {
			return 0, fmt.Errorf("rate equation unbracketed below %g: %w", zipMaxLambda, errFitDegenerate)
		}
	}
	for i := 0; i < zipSolveRounds && hi-lo > zipSolveTol; i++ {
		mid := 0.5 * (lo + hi)
		if g(mid) <= 0 {
			lo = mid
		} else {
			hi = mid
		}
	}

	return 0.5 * (lo + hi), nil
}

func (zeroInflatedPoisson) sample(p Params, n int, rng *rand.Rand) []float64 {
	out := make([]float64, n)
	if p.Mean <= 0 || p.ZeroProb >= 1 {
		return out
	}
	d := distuv.Poisson{Lambda: p.Mean, Src: rng}
	for i := range out {
		if rng.Float64() < p.ZeroProb {
			continue
		}
		out[i] = d.Rand()
	}

	return out
}

// quantile inverts the ZIP CDF: mass up to ZeroProb maps to zero, the rest
// is the Poisson quantile of the rescaled tail probability.
func (zeroInflatedPoisson) quantile(p Params, u float64) float64 {
	if u <= p.ZeroProb {
		return 0
	}

	return poissonQuantile(p.Mean, (u-p.ZeroProb)/(1-p.ZeroProb))
}
