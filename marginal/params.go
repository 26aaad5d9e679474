package marginal

import (
	"math"

	"golang.org/x/exp/rand"
)

// Params holds fitted marginal parameters. Fields beyond Mean are
// family-dependent; a secondary parameter that could not be estimated is
// NaN, and sampling degrades to plain Poisson draws for that gene.
type Params struct {
	// Mean is the distribution mean (Poisson component mean for ZIP).
	Mean float64

	// Size is the negative-binomial dispersion (gamma shape); NaN unless
	// the family is NegBinomial and the MLE succeeded.
	Size float64

	// ZeroProb is the zero-inflation probability; NaN unless the family is
	// ZeroInflatedPoisson and the MLE succeeded.
	ZeroProb float64
}

// FitResult is the outcome of fitting one gene: either a clean fit or a
// method-of-moments Poisson fallback carrying the failure reason.
// Consumers branch on Fallback (or the NaN secondary parameter) rather
// than on sentinel values buried in Params.
type FitResult struct {
	Gene     string
	Family   Family
	Params   Params
	Fallback bool
	Reason   string
}

// effective resolves the distribution actually used for sampling and
// quantile inversion: the declared family, degraded to Poisson when the
// secondary parameter is missing.
func (r FitResult) effective() (distribution, Params) {
	p := r.Params
	switch r.Family {
	case NegBinomial:
		if math.IsNaN(p.Size) {
			return poisson{}, p
		}
		return negBinomial{}, p
	case ZeroInflatedPoisson:
		if math.IsNaN(p.ZeroProb) {
			return poisson{}, p
		}
		return zeroInflatedPoisson{}, p
	default:
		return poisson{}, p
	}
}

// Sample draws n independent synthetic counts for this gene.
func (r FitResult) Sample(n int, rng *rand.Rand) []float64 {
	d, p := r.effective()

	return d.sample(p, n, rng)
}

// Quantile inverts the fitted marginal CDF at each uniform score in u,
// writing the counts into a fresh slice. Inputs are clamped away from
// {0, 1}.
func (r FitResult) Quantile(u []float64) []float64 {
	d, p := r.effective()
	out := make([]float64, len(u))
	for i, ui := range u {
		out[i] = d.quantile(p, clampUniform(ui))
	}

	return out
}

// fallbackResult builds the method-of-moments Poisson fallback for a gene.
func fallbackResult(gene string, family Family, counts []float64, reason string) FitResult {
	return FitResult{
		Gene:   gene,
		Family: family,
		Params: Params{
			Mean:     sampleMean(counts),
			Size:     math.NaN(),
			ZeroProb: math.NaN(),
		},
		Fallback: true,
		Reason:   reason,
	}
}
