// SPDX-License-Identifier: MIT

package copula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synthcell/nullgen/expr"
)

// TestAverageRanks_Ties: tied values share the mean of the ranks the tie
// run occupies.
func TestAverageRanks_Ties(t *testing.T) {
	ranks := averageRanks([]float64{0, 0, 1, 2, 2, 2})
	assert.Equal(t, []float64{1.5, 1.5, 3, 5, 5, 5}, ranks)
}

// TestAverageRanks_Distinct degenerates to ordinary 1-based ranks.
func TestAverageRanks_Distinct(t *testing.T) {
	ranks := averageRanks([]float64{3, 1, 4, 2})
	assert.Equal(t, []float64{3, 1, 4, 2}, ranks)
}

// TestAverageRanks_AllTied: a constant vector ranks everyone in the middle.
func TestAverageRanks_AllTied(t *testing.T) {
	ranks := averageRanks([]float64{7, 7, 7})
	assert.Equal(t, []float64{2, 2, 2}, ranks)
}

// TestNormalScores_ShapeAndSymmetry builds scores for two monotone-related
// genes: dimensions are cells × selected genes, columns are centered, and
// rank-identical genes get identical scores.
func TestNormalScores_ShapeAndSymmetry(t *testing.T) {
	const cells = 20
	rows := make([][]float64, 3)
	for i := range rows {
		rows[i] = make([]float64, cells)
	}
	for j := 0; j < cells; j++ {
		rows[0][j] = float64((j * 3) % cells) // a permutation of 0..cells-1
		rows[1][j] = 2 * rows[0][j]           // same ranks as row 0
		rows[2][j] = float64(j % 4)
	}
	m, err := expr.NewFromRows([]string{"g1", "g2", "g3"}, expr.CanonicalCells(cells), expr.Dense, rows)
	require.NoError(t, err)

	scores, err := NormalScores(m, []int{0, 1, 2})
	require.NoError(t, err)

	n, d := scores.Dims()
	assert.Equal(t, cells, n)
	assert.Equal(t, 3, d)

	for j := 0; j < d; j++ {
		sum := 0.0
		for i := 0; i < n; i++ {
			sum += scores.At(i, j)
		}
		// Tie-averaged ranks are symmetric around (n+1)/2, so the normal
		// scores of each column sum to zero.
		assert.InDelta(t, 0, sum, 1e-9, "column %d", j)
	}
	for i := 0; i < n; i++ {
		assert.Equal(t, scores.At(i, 0), scores.At(i, 1), "rank-identical genes")
	}
}

// TestNormalScores_Validation covers nil input, too few genes and too few
// cells.
func TestNormalScores_Validation(t *testing.T) {
	_, err := NormalScores(nil, []int{0, 1})
	assert.ErrorIs(t, err, expr.ErrNilMatrix)

	m, err := expr.NewDense([]string{"g1", "g2"}, expr.CanonicalCells(4), []float64{1, 2, 3, 4, 4, 3, 2, 1})
	require.NoError(t, err)
	_, err = NormalScores(m, []int{0})
	assert.ErrorIs(t, err, ErrTooFewGenes)

	one, err := expr.NewDense([]string{"g1", "g2"}, expr.CanonicalCells(1), []float64{1, 2})
	require.NoError(t, err)
	_, err = NormalScores(one, []int{0, 1})
	assert.ErrorIs(t, err, ErrTooFewCells)
}
