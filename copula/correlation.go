// SPDX-License-Identifier: MIT

package copula

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// DefaultRidge is the diagonal ridge added to every estimated correlation
// matrix before factorization.
const DefaultRidge = 1e-5

// Correlation estimates the dense pairwise Pearson correlation of the
// normal scores (cells × genes) and adds ridge to the diagonal.
func Correlation(scores *mat.Dense, ridge float64) (*mat.SymDense, error) {
	if err := validateScores(scores, ridge); err != nil {
		return nil, err
	}

	_, d := scores.Dims()
	corr := mat.NewSymDense(d, nil)
	stat.CorrelationMatrix(corr, scores, nil)
	scrubCorrelation(corr)
	addRidge(corr, ridge)

	return corr, nil
}

// SparseCorrelation estimates the correlation of the normal scores and
// hard-thresholds off-diagonal entries: |r| ≤ threshold becomes exactly
// zero. A threshold of zero selects the universal rate
// UniversalThreshold(d, n). The diagonal ridge is applied last, as in the
// dense path.
func SparseCorrelation(scores *mat.Dense, threshold, ridge float64) (*mat.SymDense, error) {
	if err := validateScores(scores, ridge); err != nil {
		return nil, err
	}
	if threshold < 0 || math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return nil, fmt.Errorf("threshold %g: %w", threshold, ErrBadThreshold)
	}

	n, d := scores.Dims()
	if threshold == 0 {
		threshold = UniversalThreshold(d, n)
	}

	corr := mat.NewSymDense(d, nil)
	stat.CorrelationMatrix(corr, scores, nil)
	scrubCorrelation(corr)
	for i := 0; i < d; i++ {
		for j := i + 1; j < d; j++ {
			if math.Abs(corr.At(i, j)) <= threshold {
				corr.SetSym(i, j, 0)
			}
		}
	}
	addRidge(corr, ridge)

	return corr, nil
}

// UniversalThreshold is the standard hard-thresholding rate
// sqrt(log d / n) for a d-variable correlation estimated from n
// observations.
func UniversalThreshold(d, n int) float64 {
	if d < 2 || n < 1 {
		return 0
	}

	return math.Sqrt(math.Log(float64(d)) / float64(n))
}

func validateScores(scores *mat.Dense, ridge float64) error {
	if scores == nil {
		return ErrNilScores
	}
	n, d := scores.Dims()
	if d < 2 {
		return ErrTooFewGenes
	}
	if n < 2 {
		return ErrTooFewCells
	}
	if ridge < 0 || math.IsNaN(ridge) || math.IsInf(ridge, 0) {
		return fmt.Errorf("ridge %g: %w", ridge, ErrBadRidge)
	}

	return nil
}

// scrubCorrelation replaces non-finite entries (a zero-variance score
// column yields NaN correlations) with zero off the diagonal and one on
// it, and clamps everything to [-1, 1].
func scrubCorrelation(corr *mat.SymDense) {
	d := corr.SymmetricDim()
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			v := corr.At(i, j)
			switch {
			case i == j:
				corr.SetSym(i, j, 1)
			case math.IsNaN(v) || math.IsInf(v, 0):
				corr.SetSym(i, j, 0)
			case v > 1:
				corr.SetSym(i, j, 1)
			case v < -1:
				corr.SetSym(i, j, -1)
			}
		}
	}
}

// addRidge adds ridge to every diagonal entry.
func addRidge(corr *mat.SymDense, ridge float64) {
	if ridge == 0 {
		return
	}
	d := corr.SymmetricDim()
	for i := 0; i < d; i++ {
		corr.SetSym(i, i, corr.At(i, i)+ridge)
	}
}
