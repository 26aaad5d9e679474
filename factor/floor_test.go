// SPDX-License-Identifier: MIT

package factor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

// ar1Sym builds the d×d AR(1) correlation matrix with parameter rho.
func ar1Sym(d int, rho float64) *mat.SymDense {
	m := mat.NewSymDense(d, nil)
	for i := 0; i < d; i++ {
		m.SetSym(i, i, 1)
		p := rho
		for j := i + 1; j < d; j++ {
			m.SetSym(i, j, p)
			p *= rho
		}
	}

	return m
}

// TestFlooredCholesky_ReconstructsPD forces the recursion with a tiny leaf
// and checks L·Lᵀ reproduces a positive definite input with no flooring.
func TestFlooredCholesky_ReconstructsPD(t *testing.T) {
	m := ar1Sym(5, 0.6)
	cfg := DefaultConfig()
	cfg.LeafDim = 2

	l, floored, err := flooredCholesky(m, cfg)
	require.NoError(t, err)
	assert.Zero(t, floored)

	var prod mat.Dense
	prod.Mul(l, l.T())
	assert.True(t, mat.EqualApprox(m, &prod, 1e-8), "L·Lᵀ must reproduce the input")
}

// TestFlooredCholesky_RepairsIndefinite: an indefinite input gets its
// negative eigenvalue clamped and still yields a usable factor.
func TestFlooredCholesky_RepairsIndefinite(t *testing.T) {
	// Eigenvalues 2.2 and -0.2.
	m := mat.NewSymDense(2, []float64{
		1.0, 1.2,
		1.2, 1.0,
	})

	l, floored, err := flooredCholesky(m, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 1, floored)

	var prod mat.Dense
	prod.Mul(l, l.T())

	sym := mat.NewSymDense(2, nil)
	for i := 0; i < 2; i++ {
		for j := i; j < 2; j++ {
			sym.SetSym(i, j, 0.5*(prod.At(i, j)+prod.At(j, i)))
		}
	}
	var es mat.EigenSym
	require.True(t, es.Factorize(sym, false))
	for _, v := range es.Values(nil) {
		assert.GreaterOrEqual(t, v, DefaultEigenFloor-1e-12, "repaired factor must be positive semidefinite")
	}
}

// TestSymSlice_OffDiagSlice pins the block-extraction helpers on a known
// matrix.
func TestSymSlice_OffDiagSlice(t *testing.T) {
	m := mat.NewSymDense(3, []float64{
		1, 2, 3,
		2, 4, 5,
		3, 5, 6,
	})

	top := symSlice(m, 0, 2)
	assert.Equal(t, 2, top.SymmetricDim())
	assert.Equal(t, 4.0, top.At(1, 1))
	assert.Equal(t, 2.0, top.At(0, 1))

	bottom := symSlice(m, 2, 3)
	assert.Equal(t, 6.0, bottom.At(0, 0))

	off := offDiagSlice(m, 2)
	r, c := off.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 1, c)
	assert.Equal(t, 3.0, off.At(0, 0))
	assert.Equal(t, 5.0, off.At(1, 0))
}
