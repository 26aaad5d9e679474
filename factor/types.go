// SPDX-License-Identifier: MIT

package factor

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// Tuning defaults for block mode. These are the hand-tuned constants of
// the approximation, surfaced as configuration rather than buried in the
// implementation.
const (
	// DefaultRankTol keeps singular values of the off-diagonal block above
	// this magnitude in the low-rank cross factor.
	DefaultRankTol = 1e-3

	// DefaultEigenFloor clamps eigenvalues of corrected diagonal blocks up
	// to this value before a factor is rebuilt.
	DefaultEigenFloor = 1e-6

	// DefaultLeafDim is the dimension at or below which the recursive
	// block Cholesky stops splitting and applies eigenvalue flooring
	// directly.
	DefaultLeafDim = 64
)

// Config carries the tunable constants of block mode.
type Config struct {
	// RankTol is the singular-value retention threshold of the cross-block
	// SVD.
	RankTol float64

	// EigenFloor is the eigenvalue clamp applied at leaf granularity.
	EigenFloor float64

	// LeafDim bounds the recursion of the floored block Cholesky.
	LeafDim int
}

// DefaultConfig returns the documented default tuning.
func DefaultConfig() Config {
	return Config{
		RankTol:    DefaultRankTol,
		EigenFloor: DefaultEigenFloor,
		LeafDim:    DefaultLeafDim,
	}
}

// validate rejects nonsensical tuning values.
func (c Config) validate() error {
	if c.RankTol <= 0 || math.IsNaN(c.RankTol) {
		return fmt.Errorf("rank tolerance %g: %w", c.RankTol, ErrBadConfig)
	}
	if c.EigenFloor <= 0 || math.IsNaN(c.EigenFloor) {
		return fmt.Errorf("eigenvalue floor %g: %w", c.EigenFloor, ErrBadConfig)
	}
	if c.LeafDim < 2 {
		return fmt.Errorf("leaf dimension %d: %w", c.LeafDim, ErrBadConfig)
	}

	return nil
}

// Factor is a sampling-ready factorization of a d×d correlation matrix.
// Implementations are immutable and safe for concurrent SampleNormal calls
// as long as each caller supplies its own rng.
type Factor interface {
	// Dim is the dimension d of the factored correlation matrix.
	Dim() int

	// SampleNormal draws n correlated standard-normal vectors, returned as
	// the rows of an n×d matrix.
	SampleNormal(n int, rng *rand.Rand) *mat.Dense
}

// Stats reports what block mode did to the correlation matrix; exact mode
// reports zeros.
type Stats struct {
	// Rank is the retained rank of the cross-block factor.
	Rank int

	// FlooredEigen counts eigenvalues clamped up to the floor.
	FlooredEigen int
}

// randNormal fills an n×d matrix with iid standard-normal draws.
func randNormal(n, d int, rng *rand.Rand) *mat.Dense {
	data := make([]float64, n*d)
	for i := range data {
		data[i] = rng.NormFloat64()
	}

	return mat.NewDense(n, d, data)
}
