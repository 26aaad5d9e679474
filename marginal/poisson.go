package marginal

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// poisson implements the Poisson family: Mean is its single parameter and
// the method-of-moments estimate is also the MLE, so fitting never falls
// back.
type poisson struct{}

func (poisson) fit(counts []float64) (Params, error) {
	if len(counts) == 0 {
		return Params{}, ErrEmptySample
	}

	return Params{
		Mean:     sampleMean(counts),
		Size:     math.NaN(),
		ZeroProb: math.NaN(),
	}, nil
}

func (poisson) sample(p Params, n int, rng *rand.Rand) []float64 {
	out := make([]float64, n)
	if p.Mean <= 0 {
		return out
	}
	d := distuv.Poisson{Lambda: p.Mean, Src: rng}
	for i := range out {
		out[i] = d.Rand()
	}

	return out
}

func (poisson) quantile(p Params, u float64) float64 {
	return poissonQuantile(p.Mean, u)
}

// poissonQuantile inverts the Poisson(lambda) CDF at u by walking the mass
// function with the recurrence P(k+1) = P(k)·λ/(k+1), accumulated from a
// log-space start so large means do not underflow P(0).
func poissonQuantile(lambda, u float64) float64 {
	if lambda <= 0 {
		return 0
	}
	logP := -lambda
	cdf := math.Exp(logP)
	logLambda := math.Log(lambda)
	bound := countQuantileBound(lambda, lambda)
	k := 0
	for cdf < u && k < bound {
		k++
		logP += logLambda - math.Log(float64(k))
		cdf += math.Exp(logP)
	}

	return float64(k)
}

// sampleMean is the arithmetic mean of x.
func sampleMean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	return floats.Sum(x) / float64(len(x))
}
