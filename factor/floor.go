// SPDX-License-Identifier: MIT

package factor

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// flooredCholesky computes a factor L with L·Lᵀ equal to m after
// eigenvalue flooring, via recursive 2×2 block splitting: the matrix is
// cut into four sub-blocks at h = ceil(d/2); the leading block and the
// Schur complement of the trailing block are factorized recursively, and
// leaves at or below cfg.LeafDim are repaired by clamping eigenvalues
// below cfg.EigenFloor before the factor is rebuilt. The returned count is
// the number of clamped eigenvalues.
//
// The result is a valid factor even when m is slightly indefinite; it is
// lower-block-triangular but not elementwise triangular (leaf factors are
// V·√Λ), which is all sampling needs.
func flooredCholesky(m *mat.SymDense, cfg Config) (*mat.Dense, int, error) {
	d := m.SymmetricDim()
	if d <= cfg.LeafDim {
		return flooredLeaf(m, cfg)
	}
	h := (d + 1) / 2

	m11 := symSlice(m, 0, h)
	m22 := symSlice(m, h, d)
	m12 := offDiagSlice(m, h)

	l11, floored11, err := flooredCholesky(m11, cfg)
	if err != nil {
		return nil, 0, err
	}

	// L21ᵀ = L11⁻¹·M12; the floor keeps leaf factors nonsingular, so a
	// solve failure here is a genuine numerical breakdown.
	var x mat.Dense
	if err = x.Solve(l11, m12); err != nil {
		return nil, 0, fmt.Errorf("factor: cross-block solve: %w", err)
	}
	var l21 mat.Dense
	l21.CloneFrom(x.T())

	// Schur complement: M22 − L21·L21ᵀ.
	var outer mat.Dense
	outer.Mul(&l21, l21.T())
	low := d - h
	schur := mat.NewSymDense(low, nil)
	for i := 0; i < low; i++ {
		for j := i; j < low; j++ {
			schur.SetSym(i, j, m22.At(i, j)-0.5*(outer.At(i, j)+outer.At(j, i)))
		}
	}

	l22, floored22, err := flooredCholesky(schur, cfg)
	if err != nil {
		return nil, 0, err
	}

	l := mat.NewDense(d, d, nil)
	l.Slice(0, h, 0, h).(*mat.Dense).Copy(l11)
	l.Slice(h, d, 0, h).(*mat.Dense).Copy(&l21)
	l.Slice(h, d, h, d).(*mat.Dense).Copy(l22)

	return l, floored11 + floored22, nil
}

// flooredLeaf eigendecomposes m, clamps eigenvalues below the floor, and
// returns the factor V·√Λ.
func flooredLeaf(m *mat.SymDense, cfg Config) (*mat.Dense, int, error) {
	var es mat.EigenSym
	if !es.Factorize(m, true) {
		return nil, 0, ErrEigenFailed
	}
	vals := es.Values(nil)
	d := len(vals)
	vecs := mat.NewDense(d, d, nil)
	es.VectorsTo(vecs)

	floored := 0
	for i := range vals {
		if vals[i] < cfg.EigenFloor {
			vals[i] = cfg.EigenFloor
			floored++
		}
		vals[i] = math.Sqrt(vals[i])
	}

	var l mat.Dense
	l.Mul(vecs, mat.NewDiagDense(d, vals))

	return &l, floored, nil
}

// symSlice copies the principal sub-block rows/cols [lo, hi) of m.
func symSlice(m *mat.SymDense, lo, hi int) *mat.SymDense {
	d := hi - lo
	out := mat.NewSymDense(d, nil)
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			out.SetSym(i, j, m.At(lo+i, lo+j))
		}
	}

	return out
}

// offDiagSlice copies the off-diagonal block rows [0, split) × cols
// [split, d) of m.
func offDiagSlice(m *mat.SymDense, split int) *mat.Dense {
	d := m.SymmetricDim()
	out := mat.NewDense(split, d-split, nil)
	for i := 0; i < split; i++ {
		for j := 0; j < d-split; j++ {
			out.Set(i, j, m.At(i, split+j))
		}
	}

	return out
}
