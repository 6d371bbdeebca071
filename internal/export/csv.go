package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/waveforge/histwin/internal/histogram"
)

// CSVConfig configures the CSV file writer.
type CSVConfig struct {
	// Enabled enables CSV output.
	Enabled bool `yaml:"enabled"`

	// Dir is the output directory. Defaults to the current directory.
	Dir string `yaml:"dir"`

	// Prefix is the output file name prefix. Defaults to "histwin".
	Prefix string `yaml:"prefix"`

	// LocusBase is the indexing base for window loci in the loci file,
	// 0 or 1. Defaults to 1, matching the numeric-environment tooling
	// these files are usually fed into. The conversion is applied only
	// here, at the output boundary.
	LocusBase *int `yaml:"locus_base"`
}

// CSVWriter writes a computation result to local CSV files:
// <prefix>_hist.csv (one row per bin, one column per window),
// <prefix>_loci.csv and <prefix>_edges.csv (single rows).
type CSVWriter struct {
	log logrus.FieldLogger
	cfg CSVConfig
}

// NewCSVWriter creates a new CSV writer.
func NewCSVWriter(log logrus.FieldLogger, cfg CSVConfig) *CSVWriter {
	if cfg.Dir == "" {
		cfg.Dir = "."
	}

	if cfg.Prefix == "" {
		cfg.Prefix = "histwin"
	}

	return &CSVWriter{
		log: log.WithField("exporter", "csv"),
		cfg: cfg,
	}
}

// LocusBase returns the configured locus indexing base.
func (w *CSVWriter) LocusBase() int {
	if w.cfg.LocusBase == nil {
		return 1
	}

	return *w.cfg.LocusBase
}

// Write writes the result files.
func (w *CSVWriter) Write(res *histogram.Result) error {
	histPath := w.path("hist")
	if err := w.writeFile(histPath, matrixRecords(res.Matrix)); err != nil {
		return err
	}

	lociPath := w.path("loci")
	if err := w.writeFile(lociPath, [][]string{lociRecord(res.Loci, w.LocusBase())}); err != nil {
		return err
	}

	edgesPath := w.path("edges")
	if err := w.writeFile(edgesPath, [][]string{floatRecord(res.Edges)}); err != nil {
		return err
	}

	w.log.WithFields(logrus.Fields{
		"hist":  histPath,
		"loci":  lociPath,
		"edges": edgesPath,
	}).Info("Wrote result files")

	return nil
}

func (w *CSVWriter) path(kind string) string {
	return filepath.Join(w.cfg.Dir, w.cfg.Prefix+"_"+kind+".csv")
}

func (w *CSVWriter) writeFile(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	return nil
}

// matrixRecords lays the matrix out as it is stored: one row per bin,
// one column per window.
func matrixRecords(m *histogram.Matrix) [][]string {
	records := make([][]string, m.Bins)
	for b := range records {
		row := make([]string, m.Windows)
		for w := range row {
			row[w] = strconv.FormatUint(m.At(b, w), 10)
		}

		records[b] = row
	}

	return records
}

func lociRecord(loci []int, base int) []string {
	record := make([]string, len(loci))
	for i, locus := range loci {
		record[i] = strconv.Itoa(locus + base)
	}

	return record
}

func floatRecord(values []float64) []string {
	record := make([]string, len(values))
	for i, v := range values {
		record[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}

	return record
}
