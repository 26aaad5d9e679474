// SPDX-License-Identifier: MIT

package expr

// csr is a compressed-sparse-row layout: row i's non-zero entries live in
// val[rowPtr[i]:rowPtr[i+1]] with column indices colIdx[rowPtr[i]:rowPtr[i+1]]
// in strictly increasing order. Immutable once built.
type csr struct {
	rows, cols int
	rowPtr     []int
	colIdx     []int
	val        []float64
}

// newCSRFromDense packs row-major data into CSR form, dropping zeros.
func newCSRFromDense(rows, cols int, data []float64) *csr {
	nnz := 0
	for _, v := range data {
		if v != 0 {
			nnz++
		}
	}

	s := &csr{
		rows:   rows,
		cols:   cols,
		rowPtr: make([]int, rows+1),
		colIdx: make([]int, 0, nnz),
		val:    make([]float64, 0, nnz),
	}
	for i := 0; i < rows; i++ {
		base := i * cols
		for j := 0; j < cols; j++ {
			if v := data[base+j]; v != 0 {
				s.colIdx = append(s.colIdx, j)
				s.val = append(s.val, v)
			}
		}
		s.rowPtr[i+1] = len(s.val)
	}

	return s
}

// at returns the (i, j) entry; zero when not stored. Bounds are checked by
// the Matrix facade.
func (s *csr) at(i, j int) float64 {
	lo, hi := s.rowPtr[i], s.rowPtr[i+1]
	// binary search within the row
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case s.colIdx[mid] == j:
			return s.val[mid]
		case s.colIdx[mid] < j:
			lo = mid + 1
		default:
			hi = mid
		}
	}

	return 0
}

// row scatters row i into dst (len == cols), zero-filling first.
func (s *csr) row(dst []float64, i int) {
	for j := range dst {
		dst[j] = 0
	}
	for k := s.rowPtr[i]; k < s.rowPtr[i+1]; k++ {
		dst[s.colIdx[k]] = s.val[k]
	}
}

// nonZeroInRow counts stored entries of row i.
func (s *csr) nonZeroInRow(i int) int {
	return s.rowPtr[i+1] - s.rowPtr[i]
}
