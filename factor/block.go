// SPDX-License-Identifier: MIT

package factor

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// blockFactor is the approximate factor: two corrected-block factors plus
// the shared low-rank cross-block term.
type blockFactor struct {
	dim, k int

	la, lb *mat.Dense // factors of the corrected diagonal blocks
	cross  *mat.Dense // d×rank scaled singular factor; nil when rank 0
	rank   int
}

// Block builds the block-approximate factor of corr under cfg.
//
// The correlation matrix is split at k = ceil(d/2). The off-diagonal
// block C (k × d−k) is SVD-truncated at cfg.RankTol into P = U√Σ and
// Q = V√Σ; the stacked [P; Q] is the cross factor. Each diagonal block
// minus its own cross contribution (A−PPᵀ, B−QQᵀ) is factorized by the
// eigenvalue-floored recursive block Cholesky. Stats reports the retained
// rank and how many eigenvalues were clamped.
func Block(corr *mat.SymDense, cfg Config) (Factor, Stats, error) {
	if corr == nil {
		return nil, Stats{}, ErrNilCorrelation
	}
	d := corr.SymmetricDim()
	if d < 2 {
		return nil, Stats{}, ErrTooFewDimensions
	}
	if err := cfg.validate(); err != nil {
		return nil, Stats{}, err
	}

	k := (d + 1) / 2
	low := d - k
	a := symSlice(corr, 0, k)
	b := symSlice(corr, k, d)
	c := offDiagSlice(corr, k)

	var svd mat.SVD
	if !svd.Factorize(c, mat.SVDThin) {
		return nil, Stats{}, ErrSVDFailed
	}
	vals := svd.Values(nil)
	rank := 0
	for rank < len(vals) && vals[rank] > cfg.RankTol {
		rank++
	}

	stats := Stats{Rank: rank}
	var cross *mat.Dense
	if rank > 0 {
		var u, v mat.Dense
		svd.UTo(&u)
		svd.VTo(&v)

		cross = mat.NewDense(d, rank, nil)
		for j := 0; j < rank; j++ {
			s := math.Sqrt(vals[j])
			for i := 0; i < k; i++ {
				cross.Set(i, j, u.At(i, j)*s)
			}
			for i := 0; i < low; i++ {
				cross.Set(k+i, j, v.At(i, j)*s)
			}
		}

		subtractCross(a, cross, 0)
		subtractCross(b, cross, k)
	}

	la, flooredA, err := flooredCholesky(a, cfg)
	if err != nil {
		return nil, Stats{}, err
	}
	lb, flooredB, err := flooredCholesky(b, cfg)
	if err != nil {
		return nil, Stats{}, err
	}
	stats.FlooredEigen = flooredA + flooredB

	return &blockFactor{dim: d, k: k, la: la, lb: lb, cross: cross, rank: rank}, stats, nil
}

// subtractCross removes the cross-block contribution from a diagonal
// block in place: block −= F·Fᵀ where F is cross rows [off, off+dim).
func subtractCross(block *mat.SymDense, cross *mat.Dense, off int) {
	d := block.SymmetricDim()
	_, r := cross.Dims()
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			dot := 0.0
			for q := 0; q < r; q++ {
				dot += cross.At(off+i, q) * cross.At(off+j, q)
			}
			block.SetSym(i, j, block.At(i, j)-dot)
		}
	}
}

func (f *blockFactor) Dim() int { return f.dim }

// SampleNormal draws the two blocks independently and adds the shared
// low-rank perturbation: Z = [E_A·L_Aᵀ | E_B·L_Bᵀ] + W·[P;Q]ᵀ, with one
// shared r-dimensional W per row. Row covariance is
// blockdiag(A−PPᵀ, B−QQᵀ) + [P;Q][P;Q]ᵀ ≈ corr.
func (f *blockFactor) SampleNormal(n int, rng *rand.Rand) *mat.Dense {
	out := mat.NewDense(n, f.dim, nil)

	var xa, xb mat.Dense
	xa.Mul(randNormal(n, f.k, rng), f.la.T())
	xb.Mul(randNormal(n, f.dim-f.k, rng), f.lb.T())
	out.Slice(0, n, 0, f.k).(*mat.Dense).Copy(&xa)
	out.Slice(0, n, f.k, f.dim).(*mat.Dense).Copy(&xb)

	if f.cross != nil {
		var pert mat.Dense
		pert.Mul(randNormal(n, f.rank, rng), f.cross.T())
		out.Add(out, &pert)
	}

	return out
}
