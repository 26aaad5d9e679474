// SPDX-License-Identifier: MIT

// Package factor turns an estimated copula correlation matrix into a
// sampling-ready factor for correlated standard-normal draws.
//
// Exact mode is a direct Cholesky factorization of the ridge-stabilized
// correlation matrix; a matrix that is still not positive definite after
// ridging is a fatal error, never silently repaired.
//
// Block mode approximates the factorization for large important-gene sets.
// The d×d correlation matrix is split into two contiguous blocks of sizes
// k = ceil(d/2) and d−k. A rank-truncated SVD of the off-diagonal block
// (singular values above Config.RankTol retained, scaled into U√Σ and
// V√Σ) yields a shared low-rank cross-block factor. Each diagonal block,
// minus its own cross-block contribution (a Schur-style correction), is
// then factorized by an eigenvalue-floored block Cholesky: the matrix is
// split recursively into a 2×2 grid of sub-blocks and, at leaf
// granularity, eigenvalues below Config.EigenFloor are clamped up before a
// factor is rebuilt, so the result is positive semidefinite even when the
// corrected block is slightly indefinite from numerical error.
//
// Sampling reconstructs a d-dimensional correlated normal vector as the
// direct sum of the two independently-sampled blocks plus the shared
// low-rank perturbation driven by one r-dimensional standard-normal
// vector, which preserves the cross-block correlation without ever
// forming a full d×d factor.
//
// Factors are immutable after construction and safe for concurrent use.
package factor
