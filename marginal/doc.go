// Package marginal fits and samples per-gene count distributions.
//
// A gene's marginal is one of a closed set of families (Family): negative
// binomial, Poisson, and zero-inflated Poisson are supported natively on
// the fast simulation path; binomial, zero-inflated negative binomial and
// Gaussian exist only so the orchestrator can name them when delegating to
// the slow covariate-general path.
//
// Fitting policy: the declared family's maximum-likelihood fit is attempted
// first. On numerical failure (non-convergence, a degenerate optimum, an
// underdispersed sample for the negative binomial, a zero-free sample for
// the zero-inflated Poisson) the gene falls back to a method-of-moments
// Poisson fit; the result is marked Fallback with the failure reason and
// the secondary parameter (dispersion or zero-inflation probability)
// recorded as NaN. Sampling and quantile inversion consult that NaN and
// degrade to plain Poisson draws for the gene. A fit failure never aborts
// a run.
//
// Genes with at most two non-zero observations are too sparse to fit at
// all: PartitionGenes excludes them ("filtered") and the sampler writes
// them back as all-zero rows. Remaining genes are "important" (non-zero
// fraction above the correlation cutoff, included in copula modeling) or
// "unimportant" (fittable, sampled independently).
//
// FitGenes runs the per-gene fits across a bounded worker pool; each gene
// is an independent unit of work and results are keyed by gene name.
package marginal
