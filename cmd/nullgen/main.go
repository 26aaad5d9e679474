// Command nullgen generates synthetic null expression matrices from a
// NumPy .npy count matrix (genes × cells, float64). Gene and cell
// identifiers come from optional one-name-per-line text files; without
// them, gene1..geneN / cell1..cellN are used. One .npy file is written per
// replicate.
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/kshedden/gonpy"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/synthcell/nullgen/expr"
	"github.com/synthcell/nullgen/marginal"
	"github.com/synthcell/nullgen/simulate"
)

type cliOptions struct {
	in, genesFile, cellsFile, out string
	family                        string
	replicates, workers           int
	seed                          uint64
	cutoff                        float64
	sparseCorr, approx            bool
	sparseStorage                 bool
	verbose                       bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var o cliOptions

	cmd := &cobra.Command{
		Use:           "nullgen",
		Short:         "Generate synthetic null single-cell count matrices",
		Long:          "nullgen fits per-gene count marginals and a Gaussian-copula correlation\nto a real genes × cells matrix, then samples synthetic matrices with the\nsame marginals and correlation but no latent cluster structure.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, &o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.in, "in", "", "input .npy matrix, genes × cells (required)")
	f.StringVar(&o.genesFile, "genes", "", "gene names, one per line")
	f.StringVar(&o.cellsFile, "cells", "", "cell names, one per line")
	f.StringVar(&o.out, "out", "null", "output path prefix; replicate r goes to <out>_rep<r>.npy")
	f.StringVar(&o.family, "family", "nb", "marginal family: nb, poisson or zip")
	f.IntVar(&o.replicates, "replicates", 1, "number of independent synthetic matrices")
	f.IntVar(&o.workers, "workers", 0, "gene worker pool size (0 = all CPUs)")
	f.Uint64Var(&o.seed, "seed", 0, "random seed (omit for time-seeded)")
	f.Float64Var(&o.cutoff, "cutoff", marginal.DefaultImportanceCutoff, "important-gene non-zero-fraction cutoff")
	f.BoolVar(&o.sparseCorr, "sparse-correlation", false, "use the sparse-thresholded correlation estimator")
	f.BoolVar(&o.approx, "approximate", false, "use the block-approximate factorization")
	f.BoolVar(&o.sparseStorage, "sparse-storage", false, "hold the matrix in CSR form")
	f.BoolVar(&o.verbose, "verbose", false, "debug-level diagnostics")

	cobra.CheckErr(cmd.MarkFlagRequired("in"))

	return cmd
}

func run(cmd *cobra.Command, o *cliOptions) error {
	logger, err := newLogger(o.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	family, err := marginal.ParseFamily(o.family)
	if err != nil {
		return err
	}

	m, err := readMatrix(o)
	if err != nil {
		return err
	}
	g, c := m.Dims()
	logger.Info("loaded matrix", zap.Int("genes", g), zap.Int("cells", c), zap.String("storage", m.Storage().String()))

	simOpts := []simulate.Option{
		simulate.WithWorkers(o.workers),
		simulate.WithLogger(logger),
		simulate.WithCorrelationCutoff(o.cutoff),
		simulate.WithSparseCorrelation(o.sparseCorr),
		simulate.WithApproximation(o.approx),
	}
	if cmd.Flags().Changed("seed") {
		simOpts = append(simOpts, simulate.WithSeed(o.seed))
	}

	outs, report, err := simulate.Run(m, family, o.replicates, simOpts...)
	if err != nil {
		return err
	}
	logger.Info("simulation finished",
		zap.Int("filtered", report.FilteredGenes),
		zap.Float64("important_fraction", report.ImportantFraction),
		zap.Int("fallbacks", len(report.FallbackGenes)),
	)

	for r, out := range outs {
		path := fmt.Sprintf("%s_rep%d.npy", o.out, r+1)
		if len(outs) == 1 {
			path = o.out + ".npy"
		}
		if err = writeMatrix(path, out); err != nil {
			return err
		}
		logger.Info("wrote replicate", zap.String("path", path))
	}

	return nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	}

	return cfg.Build()
}

// readMatrix loads the .npy matrix and its identifier files.
func readMatrix(o *cliOptions) (*expr.Matrix, error) {
	r, err := gonpy.NewFileReader(o.in)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", o.in, err)
	}
	if len(r.Shape) != 2 {
		return nil, fmt.Errorf("%s: expected a 2-dimensional matrix, got shape %v", o.in, r.Shape)
	}
	g, c := r.Shape[0], r.Shape[1]

	data, err := r.GetFloat64()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", o.in, err)
	}
	if r.ColumnMajor {
		data = toRowMajor(data, g, c)
	}

	genes, err := readNames(o.genesFile, "gene", g)
	if err != nil {
		return nil, err
	}
	cells, err := readNames(o.cellsFile, "cell", c)
	if err != nil {
		return nil, err
	}

	if o.sparseStorage {
		return expr.NewSparse(genes, cells, data)
	}

	return expr.NewDense(genes, cells, data)
}

// readNames loads one identifier per line, or synthesizes prefix1..prefixN
// when no file is given.
func readNames(path, prefix string, n int) ([]string, error) {
	if path == "" {
		names := make([]string, n)
		for i := range names {
			names[i] = fmt.Sprintf("%s%d", prefix, i+1)
		}

		return names, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var names []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			names = append(names, line)
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, err
	}
	if len(names) != n {
		return nil, fmt.Errorf("%s: %d %s names for %d rows/columns", path, len(names), prefix, n)
	}

	return names, nil
}

// writeMatrix stores m as a row-major float64 .npy file.
func writeMatrix(path string, m *expr.Matrix) error {
	g, c := m.Dims()
	data := make([]float64, 0, g*c)
	row := make([]float64, c)
	for i := 0; i < g; i++ {
		row, err := m.Row(row, i)
		if err != nil {
			return err
		}
		data = append(data, row...)
	}

	w, err := gonpy.NewFileWriter(path)
	if err != nil {
		return err
	}
	w.Shape = []int{g, c}

	return w.WriteFloat64(data)
}

// toRowMajor reorders a column-major flat matrix.
func toRowMajor(data []float64, rows, cols int) []float64 {
	out := make([]float64, len(data))
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out[i*cols+j] = data[j*rows+i]
		}
	}

	return out
}
