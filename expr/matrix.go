// SPDX-License-Identifier: MIT

package expr

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Storage selects the backing layout of a Matrix.
type Storage int

const (
	// Dense stores every entry in a row-major gonum mat.Dense.
	Dense Storage = iota

	// Sparse stores only non-zero entries in CSR form.
	Sparse
)

// String returns a human-readable storage name.
func (s Storage) String() string {
	switch s {
	case Dense:
		return "dense"
	case Sparse:
		return "sparse"
	default:
		return fmt.Sprintf("Storage(%d)", int(s))
	}
}

// Matrix is a genes × cells expression count matrix. Rows are genes,
// columns are cells; both carry unique, non-empty identifiers. A Matrix is
// immutable after construction and safe for concurrent reads.
type Matrix struct {
	genes   []string
	cells   []string
	geneIdx map[string]int

	storage Storage
	dense   *mat.Dense // non-nil iff storage == Dense
	sparse  *csr       // non-nil iff storage == Sparse
}

// NewDense builds a dense Matrix from row-major data of length
// len(genes)*len(cells). The data slice is copied.
func NewDense(genes, cells []string, data []float64) (*Matrix, error) {
	m, err := newMatrix(genes, cells)
	if err != nil {
		return nil, err
	}
	g, c := len(genes), len(cells)
	if len(data) != g*c {
		return nil, fmt.Errorf("data length %d for %d×%d matrix: %w", len(data), g, c, ErrBadShape)
	}
	if err = validateValues(data); err != nil {
		return nil, err
	}
	buf := make([]float64, len(data))
	copy(buf, data)
	m.storage = Dense
	m.dense = mat.NewDense(g, c, buf)

	return m, nil
}

// NewSparse builds a CSR Matrix from row-major data of length
// len(genes)*len(cells); zero entries are not stored.
func NewSparse(genes, cells []string, data []float64) (*Matrix, error) {
	m, err := newMatrix(genes, cells)
	if err != nil {
		return nil, err
	}
	g, c := len(genes), len(cells)
	if len(data) != g*c {
		return nil, fmt.Errorf("data length %d for %d×%d matrix: %w", len(data), g, c, ErrBadShape)
	}
	if err = validateValues(data); err != nil {
		return nil, err
	}
	m.storage = Sparse
	m.sparse = newCSRFromDense(g, c, data)

	return m, nil
}

// NewFromRows builds a Matrix with the given storage from per-gene rows.
// rows[i] holds gene i's values across all cells and must have length
// len(cells). Used by the sampler to assemble synthetic replicates.
func NewFromRows(genes, cells []string, storage Storage, rows [][]float64) (*Matrix, error) {
	if len(rows) != len(genes) {
		return nil, fmt.Errorf("%d rows for %d genes: %w", len(rows), len(genes), ErrBadShape)
	}
	c := len(cells)
	data := make([]float64, 0, len(genes)*c)
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("row %d has length %d, want %d: %w", i, len(row), c, ErrBadShape)
		}
		data = append(data, row...)
	}
	if storage == Sparse {
		return NewSparse(genes, cells, data)
	}

	return NewDense(genes, cells, data)
}

// newMatrix validates identifiers and prepares the name index.
func newMatrix(genes, cells []string) (*Matrix, error) {
	if len(genes) == 0 || len(cells) == 0 {
		return nil, fmt.Errorf("%d genes × %d cells: %w", len(genes), len(cells), ErrBadShape)
	}
	if err := validateNames(genes); err != nil {
		return nil, fmt.Errorf("genes: %w", err)
	}
	if err := validateNames(cells); err != nil {
		return nil, fmt.Errorf("cells: %w", err)
	}

	m := &Matrix{
		genes:   append([]string(nil), genes...),
		cells:   append([]string(nil), cells...),
		geneIdx: make(map[string]int, len(genes)),
	}
	for i, gn := range m.genes {
		m.geneIdx[gn] = i
	}

	return m, nil
}

// validateNames rejects empty and duplicated identifiers.
func validateNames(names []string) error {
	seen := make(map[string]struct{}, len(names))
	for i, n := range names {
		if n == "" {
			return fmt.Errorf("index %d: %w", i, ErrEmptyName)
		}
		if _, dup := seen[n]; dup {
			return fmt.Errorf("%q: %w", n, ErrDuplicateName)
		}
		seen[n] = struct{}{}
	}

	return nil
}

// validateValues rejects negative and non-finite entries.
func validateValues(data []float64) error {
	for i, v := range data {
		if v != v || v > maxFinite || v < -maxFinite {
			return fmt.Errorf("entry %d: %w", i, ErrNotFinite)
		}
		if v < 0 {
			return fmt.Errorf("entry %d is %g: %w", i, v, ErrNegativeValue)
		}
	}

	return nil
}

// maxFinite bounds acceptable magnitudes; anything beyond is treated as Inf.
const maxFinite = 1.7976931348623157e308

// Dims returns (genes, cells).
func (m *Matrix) Dims() (genes, cells int) {
	if m == nil {
		return 0, 0
	}

	return len(m.genes), len(m.cells)
}

// Storage reports the backing layout.
func (m *Matrix) Storage() Storage { return m.storage }

// Genes returns a copy of the gene identifiers in row order.
func (m *Matrix) Genes() []string { return append([]string(nil), m.genes...) }

// Cells returns a copy of the cell identifiers in column order.
func (m *Matrix) Cells() []string { return append([]string(nil), m.cells...) }

// GeneIndex returns the row index of the named gene.
func (m *Matrix) GeneIndex(name string) (int, error) {
	i, ok := m.geneIdx[name]
	if !ok {
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownGene)
	}

	return i, nil
}

// At returns the entry at gene row i, cell column j.
func (m *Matrix) At(i, j int) (float64, error) {
	g, c := m.Dims()
	if i < 0 || i >= g || j < 0 || j >= c {
		return 0, fmt.Errorf("(%d,%d) in %d×%d: %w", i, j, g, c, ErrOutOfRange)
	}
	if m.storage == Dense {
		return m.dense.At(i, j), nil
	}

	return m.sparse.at(i, j), nil
}

// Row copies gene row i into dst and returns it. If dst is nil or too
// short a fresh slice is allocated. Follows the gonum mat.Row convention.
func (m *Matrix) Row(dst []float64, i int) ([]float64, error) {
	g, c := m.Dims()
	if i < 0 || i >= g {
		return nil, fmt.Errorf("row %d of %d: %w", i, g, ErrOutOfRange)
	}
	if cap(dst) < c {
		dst = make([]float64, c)
	}
	dst = dst[:c]
	if m.storage == Dense {
		copy(dst, m.dense.RawRowView(i))
		return dst, nil
	}
	m.sparse.row(dst, i)

	return dst, nil
}

// NonZeroInRow counts the non-zero entries of gene row i without
// materializing the row for sparse storage.
func (m *Matrix) NonZeroInRow(i int) (int, error) {
	g, _ := m.Dims()
	if i < 0 || i >= g {
		return 0, fmt.Errorf("row %d of %d: %w", i, g, ErrOutOfRange)
	}
	if m.storage == Sparse {
		return m.sparse.nonZeroInRow(i), nil
	}
	n := 0
	for _, v := range m.dense.RawRowView(i) {
		if v != 0 {
			n++
		}
	}

	return n, nil
}

// CanonicalCells returns the canonical synthetic cell identifiers
// cell1..cellN used for every synthetic replicate.
func CanonicalCells(n int) []string {
	names := make([]string, n)
	for j := range names {
		names[j] = fmt.Sprintf("cell%d", j+1)
	}

	return names
}
