// SPDX-License-Identifier: MIT

package simulate

import (
	"github.com/synthcell/nullgen/expr"
	"github.com/synthcell/nullgen/marginal"
)

// SlowSimulator is the external covariate-general simulator invoked as a
// black box when fast mode is disabled. It owns its own statistical model
// (typically a generalized additive model per gene) and supports arbitrary
// formulas and covariates, such as spatial coordinates or pseudotime, that
// the fast path does not.
//
// Implementations must honor the same output contract as the fast path:
// replicate matrices of identical shape, genes in input row order, cells
// canonically renamed, storage class mirroring the input.
type SlowSimulator interface {
	Simulate(
		m *expr.Matrix,
		family marginal.Family,
		formula string,
		covariates map[string][]float64,
		replicates int,
	) ([]*expr.Matrix, error)
}
