// SPDX-License-Identifier: MIT

package copula

import (
	"sort"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/synthcell/nullgen/expr"
)

// NormalScores builds the cells × importantGenes matrix of Gaussian-copula
// scores: column j holds the normal scores of the gene at row
// importantIdx[j] of m. Ranks are averaged over ties (heavy ties are the
// norm for counts), pseudo-uniforms are rank/(n+1) so scores stay finite,
// and the inverse standard-normal CDF maps them to normal scores.
func NormalScores(m *expr.Matrix, importantIdx []int) (*mat.Dense, error) {
	if m == nil {
		return nil, expr.ErrNilMatrix
	}
	if len(importantIdx) < 2 {
		return nil, ErrTooFewGenes
	}
	_, cells := m.Dims()
	if cells < 2 {
		return nil, ErrTooFewCells
	}

	scores := mat.NewDense(cells, len(importantIdx), nil)
	row := make([]float64, cells)
	for j, gi := range importantIdx {
		row, err := m.Row(row, gi)
		if err != nil {
			return nil, err
		}
		ranks := averageRanks(row)
		denom := float64(cells + 1)
		for i, r := range ranks {
			scores.Set(i, j, distuv.UnitNormal.Quantile(r/denom))
		}
	}

	return scores, nil
}

// averageRanks assigns 1-based ranks to x, averaging the rank over tied
// values (the "average" tie policy of empirical pseudo-observations).
func averageRanks(x []float64) []float64 {
	n := len(x)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return x[idx[a]] < x[idx[b]] })

	ranks := make([]float64, n)
	for i := 0; i < n; {
		j := i
		for j+1 < n && x[idx[j+1]] == x[idx[i]] {
			j++
		}
		// positions i..j (0-based) share the mean rank of the tie run
		avg := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranks[idx[k]] = avg
		}
		i = j + 1
	}

	return ranks
}
