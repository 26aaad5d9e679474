// SPDX-License-Identifier: MIT

package factor

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// exactFactor holds the upper Cholesky factor U with corr = UᵀU.
type exactFactor struct {
	dim int
	u   *mat.TriDense
}

// Exact factorizes corr directly. It fails with ErrNotPositiveDefinite
// when corr is not positive definite after ridging; exact mode performs no
// repair.
func Exact(corr *mat.SymDense) (Factor, error) {
	if corr == nil {
		return nil, ErrNilCorrelation
	}
	d := corr.SymmetricDim()
	if d < 2 {
		return nil, ErrTooFewDimensions
	}

	var chol mat.Cholesky
	if !chol.Factorize(corr) {
		return nil, ErrNotPositiveDefinite
	}
	u := mat.NewTriDense(d, mat.Upper, nil)
	chol.UTo(u)

	return &exactFactor{dim: d, u: u}, nil
}

func (f *exactFactor) Dim() int { return f.dim }

// SampleNormal draws E (n×d iid normal) and returns Z = E·U, whose rows
// have covariance UᵀU = corr.
func (f *exactFactor) SampleNormal(n int, rng *rand.Rand) *mat.Dense {
	e := randNormal(n, f.dim, rng)
	var z mat.Dense
	z.Mul(e, f.u)

	return &z
}
