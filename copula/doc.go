// SPDX-License-Identifier: MIT

// Package copula estimates the Gaussian-copula correlation structure of
// the important genes of an expression matrix.
//
// The copula transform separates correlation from marginals: each
// important gene's observed counts are converted to rank-based
// pseudo-uniform scores r/(n+1) (average ranks over ties), then to
// standard-normal scores through the inverse normal CDF. The correlation
// of those normal scores is the copula correlation.
//
// Two estimators are provided. Correlation computes the plain pairwise
// Pearson correlation of the scores (the dense regime).
// SparseCorrelation additionally hard-thresholds off-diagonal entries,
// the high-dimensional regime selected by the caller when the gene count
// greatly exceeds the cell count; the default threshold is the universal
// rate sqrt(log d / n). Both estimators finish by adding a small ridge
// (DefaultRidge) to the diagonal for numerical conditioning ahead of
// factorization.
package copula
