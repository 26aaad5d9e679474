// Package nullgen generates synthetic null datasets from real gene-by-cell
// expression count matrices: simulated matrices that preserve each gene's
// marginal count distribution and the inter-gene correlation structure of
// the input, but describe a single homogeneous cell population with no
// latent cluster structure. Such a matrix is the counterfactual reference
// against which a clustering-then-differential-expression pipeline can be
// checked for false discoveries.
//
// The pipeline, leaves first:
//
//	expr/     - the Matrix container (dense or CSR sparse storage,
//	            mandatory unique gene/cell identifiers)
//	marginal/ - per-gene parametric count fits (negative binomial, Poisson,
//	            zero-inflated Poisson) with a method-of-moments fallback,
//	            plus the filtered/important/unimportant gene partition
//	copula/   - rank pseudo-observations, normal scores and the dense or
//	            sparse-thresholded Gaussian-copula correlation estimate
//	factor/   - exact Cholesky or block-approximate factorization
//	            (rank-truncated SVD cross term, eigenvalue-floored block
//	            Cholesky) and correlated standard-normal sampling
//	sampler/  - inverse-CDF remapping of copula uniforms through the fitted
//	            quantile functions, assembly of one synthetic replicate
//	simulate/ - the public ConstructNull orchestrator: validation,
//	            configuration, replicate fan-out, diagnostics
//
// Fitting and factorization run once per call; each replicate re-runs only
// the sampling stage. Gene-level work is spread over a configurable worker
// pool, and fitted parameters and factors are immutable once built, so they
// are shared read-only across workers and replicates.
//
// A small CLI around the library lives in cmd/nullgen and operates on
// NumPy .npy matrices.
//
//	go get github.com/synthcell/nullgen
package nullgen
