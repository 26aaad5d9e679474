// SPDX-License-Identifier: MIT

// Package simulate is the public entry point of nullgen: it validates
// configuration, runs the fast simulation pipeline (fit → copula →
// factorize → sample) and fans out independent synthetic replicates.
//
// ConstructNull produces a single synthetic matrix;
// ConstructNullReplicates an ordered sequence of independent ones. Both
// wrap Run, which additionally returns a Report of diagnostic counts.
// Fitting and factorization happen once per call and are shared read-only
// across every replicate; each replicate re-runs only the sampling stage
// with its own random stream.
//
// When fast mode is disabled the call is delegated wholesale to a
// configured SlowSimulator, the external generalized-additive-model-based
// simulator that handles arbitrary formulas and covariates. Without one
// configured, disabling fast mode is a configuration error. Formulas and
// covariates are rejected (not ignored) under fast mode.
//
// Configuration errors abort before any computation; per-gene fit failures
// degrade to Poisson fallbacks; a non-positive-definite correlation matrix
// is fatal in exact mode and repaired by eigenvalue flooring in
// approximate mode. Diagnostics go to an injectable zap logger and never
// influence output values.
package simulate
