package marginal

import (
	"fmt"

	"github.com/synthcell/nullgen/expr"
)

const (
	// FilteredMaxNonZero is the largest non-zero observation count for
	// which a gene is considered too sparse to fit. Such genes are always
	// written back as all-zero rows.
	FilteredMaxNonZero = 2

	// DefaultImportanceCutoff is the default non-zero-fraction threshold
	// above which a gene participates in correlation modeling.
	DefaultImportanceCutoff = 0.1
)

// GeneClass labels a gene's role in the simulation.
type GeneClass int

const (
	// ClassFiltered genes (≤ FilteredMaxNonZero non-zero observations)
	// are excluded from fitting and output as all-zero rows.
	ClassFiltered GeneClass = iota

	// ClassImportant genes exceed the importance cutoff and enter the
	// copula correlation model.
	ClassImportant

	// ClassUnimportant genes are fittable but sampled independently.
	ClassUnimportant
)

// String returns a human-readable class label.
func (c GeneClass) String() string {
	switch c {
	case ClassFiltered:
		return "filtered"
	case ClassImportant:
		return "important"
	case ClassUnimportant:
		return "unimportant"
	default:
		return fmt.Sprintf("GeneClass(%d)", int(c))
	}
}

// Partition records the filtered/important/unimportant split of a matrix's
// genes. Name slices preserve the input row order; ImportantIdx holds the
// matrix row indices of important genes in ascending order, fixing the
// variable order of the correlation model.
type Partition struct {
	Filtered    []string
	Important   []string
	Unimportant []string

	ImportantIdx []int

	class map[string]GeneClass
}

// Class returns the partition label of the named gene.
func (p *Partition) Class(gene string) (GeneClass, bool) {
	c, ok := p.class[gene]

	return c, ok
}

// ImportantFraction is the share of all genes that entered correlation
// modeling; a diagnostic figure.
func (p *Partition) ImportantFraction() float64 {
	total := len(p.Filtered) + len(p.Important) + len(p.Unimportant)
	if total == 0 {
		return 0
	}

	return float64(len(p.Important)) / float64(total)
}

// PartitionGenes classifies every gene of m by its non-zero observation
// count: at most FilteredMaxNonZero → filtered; non-zero fraction above
// cutoff → important; otherwise unimportant.
func PartitionGenes(m *expr.Matrix, cutoff float64) (*Partition, error) {
	if m == nil {
		return nil, expr.ErrNilMatrix
	}
	if cutoff < 0 || cutoff >= 1 {
		return nil, fmt.Errorf("cutoff %g: %w", cutoff, ErrBadCutoff)
	}

	genes, cells := m.Dims()
	part := &Partition{class: make(map[string]GeneClass, genes)}
	names := m.Genes()
	for i := 0; i < genes; i++ {
		nz, err := m.NonZeroInRow(i)
		if err != nil {
			return nil, err
		}
		switch {
		case nz <= FilteredMaxNonZero:
			part.Filtered = append(part.Filtered, names[i])
			part.class[names[i]] = ClassFiltered
		case float64(nz)/float64(cells) > cutoff:
			part.Important = append(part.Important, names[i])
			part.ImportantIdx = append(part.ImportantIdx, i)
			part.class[names[i]] = ClassImportant
		default:
			part.Unimportant = append(part.Unimportant, names[i])
			part.class[names[i]] = ClassUnimportant
		}
	}

	return part, nil
}
