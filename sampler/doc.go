// Package sampler assembles one synthetic replicate from fitted marginals
// and an optional sampling factor.
//
// With a factor present, an n×d correlated standard-normal sample is drawn
// (d = important genes), every column is pushed through the standard-normal
// CDF to copula-uniform scores, and each important gene's synthetic counts
// are the inverse of its fitted quantile function at its score column,
// preserving the gene's marginal exactly while injecting the modeled
// correlation. Unimportant genes are drawn independently from their fitted
// marginals, filtered genes are written as all-zero rows, and any residual
// NaN is replaced with zero under a warning.
//
// Gene-level work runs on a bounded worker pool. Each gene gets its own
// deterministic random stream derived from the replicate's base stream, so
// no two workers share a source and a fixed seed reproduces the replicate
// regardless of worker count.
package sampler
