package marginal

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

// Family is the closed set of marginal distribution families.
//
// Fast-path families carry a native fit/sample/quantile implementation;
// the remaining families are recognized identifiers for the slow,
// covariate-general path and reject fast-path operations with
// ErrUnsupportedFamily.
type Family int

const (
	// NegBinomial is the negative binomial family, parameterized by mean
	// and size (dispersion). The workhorse for over-dispersed UMI counts.
	NegBinomial Family = iota

	// Poisson is the Poisson family, parameterized by mean.
	Poisson

	// ZeroInflatedPoisson mixes a point mass at zero (probability
	// ZeroProb) with a Poisson component.
	ZeroInflatedPoisson

	// Binomial is accepted only for slow-path delegation.
	Binomial

	// ZeroInflatedNegBinomial is accepted only for slow-path delegation.
	ZeroInflatedNegBinomial

	// Gaussian is accepted only for slow-path delegation.
	Gaussian
)

// String returns the canonical family name.
func (f Family) String() string {
	switch f {
	case NegBinomial:
		return "nb"
	case Poisson:
		return "poisson"
	case ZeroInflatedPoisson:
		return "zip"
	case Binomial:
		return "binomial"
	case ZeroInflatedNegBinomial:
		return "zinb"
	case Gaussian:
		return "gaussian"
	default:
		return fmt.Sprintf("Family(%d)", int(f))
	}
}

// ParseFamily maps a canonical family name back to its Family value.
func ParseFamily(name string) (Family, error) {
	for _, f := range []Family{NegBinomial, Poisson, ZeroInflatedPoisson, Binomial, ZeroInflatedNegBinomial, Gaussian} {
		if f.String() == name {
			return f, nil
		}
	}

	return 0, fmt.Errorf("%q: %w", name, ErrUnknownFamily)
}

// FastPath reports whether the family has a native fast-path implementation.
func (f Family) FastPath() bool {
	switch f {
	case NegBinomial, Poisson, ZeroInflatedPoisson:
		return true
	default:
		return false
	}
}

// distribution is the per-family behavior behind the Family tag: a single
// polymorphic dispatch point instead of family switches scattered across
// fitting and sampling code.
type distribution interface {
	// fit estimates parameters by maximum likelihood. A returned error
	// means the primary fit failed and the caller should fall back.
	fit(counts []float64) (Params, error)

	// sample draws n independent values under p.
	sample(p Params, n int, rng *rand.Rand) []float64

	// quantile inverts the fitted CDF at probability u ∈ (0, 1).
	quantile(p Params, u float64) float64
}

// dist resolves the fast-path implementation for f.
func (f Family) dist() (distribution, error) {
	switch f {
	case NegBinomial:
		return negBinomial{}, nil
	case Poisson:
		return poisson{}, nil
	case ZeroInflatedPoisson:
		return zeroInflatedPoisson{}, nil
	case Binomial, ZeroInflatedNegBinomial, Gaussian:
		return nil, fmt.Errorf("%s: %w", f, ErrUnsupportedFamily)
	default:
		return nil, fmt.Errorf("%s: %w", f, ErrUnknownFamily)
	}
}

// minUniform clamps copula uniforms away from {0, 1} so that discrete
// quantile walks terminate at machine precision.
const minUniform = 1e-12

// clampUniform restricts u to [minUniform, 1-minUniform].
func clampUniform(u float64) float64 {
	if u < minUniform {
		return minUniform
	}
	if u > 1-minUniform {
		return 1 - minUniform
	}

	return u
}

// countQuantileBound caps discrete quantile walks at mean + 12·sd + 256,
// a bound far beyond any uniform representable under minUniform.
func countQuantileBound(mean, variance float64) int {
	return int(mean+12*math.Sqrt(variance)) + 256
}
