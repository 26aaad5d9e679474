package marginal

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Size (dispersion) estimates outside these bounds are treated as a
// degenerate optimum: below sizeMin the fit is numerically meaningless,
// above sizeMax the negative binomial is indistinguishable from Poisson.
const (
	sizeMin = 1e-8
	sizeMax = 1e8
)

// negBinomial implements the negative binomial family NB(size, mu) with
// mean mu and variance mu + mu²/size.
//
// Fitting maximizes the profile log-likelihood: the MLE of mu is the
// sample mean regardless of size, which reduces the problem to a
// one-dimensional search over log(size), solved with Nelder–Mead from a
// method-of-moments start. An underdispersed sample (variance ≤ mean) has
// no finite optimum and is reported as a degenerate fit.
type negBinomial struct{}

func (negBinomial) fit(counts []float64) (Params, error) {
	n := len(counts)
	if n == 0 {
		return Params{}, ErrEmptySample
	}
	mu := sampleMean(counts)
	if mu <= 0 {
		return Params{}, fmt.Errorf("non-positive mean %g: %w", mu, errFitDegenerate)
	}
	variance := stat.Variance(counts, nil)
	if variance <= mu {
		return Params{}, fmt.Errorf("underdispersed sample (var %.4g ≤ mean %.4g): %w", variance, mu, errFitDegenerate)
	}

	// Moment start: size = mu² / (var − mu).
	size0 := mu * mu / (variance - mu)

	problem := optimize.Problem{
		Func: func(t []float64) float64 {
			return nbNegProfileLogLik(counts, mu, math.Exp(t[0]))
		},
	}
	res, err := optimize.Minimize(problem, []float64{math.Log(size0)}, nil, &optimize.NelderMead{})
	if err != nil {
		return Params{}, fmt.Errorf("dispersion optimization: %v: %w", err, errFitDegenerate)
	}
	if res == nil || math.IsNaN(res.F) || math.IsInf(res.F, 0) {
		return Params{}, fmt.Errorf("dispersion optimization diverged: %w", errFitDegenerate)
	}
	size := math.Exp(res.X[0])
	if size < sizeMin || size > sizeMax || math.IsNaN(size) {
		return Params{}, fmt.Errorf("dispersion %g outside [%g, %g]: %w", size, sizeMin, sizeMax, errFitDegenerate)
	}

	return Params{Mean: mu, Size: size, ZeroProb: math.NaN()}, nil
}

// nbNegProfileLogLik is the negative NB log-likelihood at (size, mu), with
// the observation-only lgamma(x+1) terms dropped.
func nbNegProfileLogLik(counts []float64, mu, size float64) float64 {
	if size <= 0 || math.IsInf(size, 1) {
		return math.Inf(1)
	}
	n := float64(len(counts))
	logFrac := math.Log(mu / (size + mu)) // log(1-p)
	lgSize, _ := math.Lgamma(size)

	ll := n*size*math.Log(size/(size+mu)) - n*lgSize
	for _, x := range counts {
		lgXS, _ := math.Lgamma(x + size)
		ll += lgXS + x*logFrac
	}

	return -ll
}

// sample draws NB(size, mu) via the Gamma–Poisson mixture:
// lambda ~ Gamma(shape=size, rate=size/mu), count ~ Poisson(lambda).
func (negBinomial) sample(p Params, n int, rng *rand.Rand) []float64 {
	out := make([]float64, n)
	if p.Mean <= 0 {
		return out
	}
	gamma := distuv.Gamma{Alpha: p.Size, Beta: p.Size / p.Mean, Src: rng}
	for i := range out {
		lambda := gamma.Rand()
		if lambda <= 0 {
			continue // Poisson(0) is a point mass at zero
		}
		out[i] = distuv.Poisson{Lambda: lambda, Src: rng}.Rand()
	}

	return out
}

func (negBinomial) quantile(p Params, u float64) float64 {
	return nbQuantile(p.Size, p.Mean, u)
}

// nbQuantile inverts the NB(size, mu) CDF at u with the mass recurrence
// P(k+1) = P(k)·(size+k)/(k+1)·(1-p), p = size/(size+mu), accumulated from
// a log-space P(0) = p^size.
func nbQuantile(size, mu, u float64) float64 {
	if mu <= 0 {
		return 0
	}
	logP := size * math.Log(size/(size+mu))
	log1mp := math.Log(mu / (size + mu))
	cdf := math.Exp(logP)
	bound := countQuantileBound(mu, mu+mu*mu/size)
	k := 0
	for cdf < u && k < bound {
		k++
		logP += math.Log((size+float64(k)-1)/float64(k)) + log1mp
		cdf += math.Exp(logP)
	}

	return float64(k)
}
