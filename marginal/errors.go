// Package marginal: sentinel error set, matched by callers via errors.Is.

package marginal

import "errors"

var (
	// ErrUnsupportedFamily is returned when a family outside
	// {NegBinomial, Poisson, ZeroInflatedPoisson} is used on the fast path.
	ErrUnsupportedFamily = errors.New("marginal: family not supported on the fast path")

	// ErrUnknownFamily is returned for a Family value outside the closed set.
	ErrUnknownFamily = errors.New("marginal: unknown family")

	// ErrEmptySample is returned when a fit receives no observations.
	ErrEmptySample = errors.New("marginal: empty sample")

	// ErrBadCutoff is returned when the importance cutoff is outside [0, 1).
	ErrBadCutoff = errors.New("marginal: importance cutoff must be in [0, 1)")

	// errFitDegenerate marks an MLE that failed to converge or converged to
	// a degenerate optimum; it is absorbed into a Fallback FitResult and
	// never escapes FitGenes.
	errFitDegenerate = errors.New("marginal: degenerate fit")
)
