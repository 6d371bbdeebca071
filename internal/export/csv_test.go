package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waveforge/histwin/internal/histogram"
)

func computeResult(t *testing.T) (*histogram.Result, histogram.Options) {
	t.Helper()

	opts := histogram.Options{Bins: 4, WinLen: 4, Stride: 2}

	res, err := histogram.Compute(
		[]float64{0.0, 0.1, 0.25, 0.4, 0.55, 0.7, 0.85, 0.95},
		opts,
	)
	require.NoError(t, err)

	return res, opts
}

func TestCSVWriter_Write(t *testing.T) {
	res, _ := computeResult(t)

	dir := t.TempDir()
	w := NewCSVWriter(testLog(), CSVConfig{Dir: dir, Prefix: "out"})

	require.NoError(t, w.Write(res))

	hist, err := os.ReadFile(filepath.Join(dir, "out_hist.csv"))
	require.NoError(t, err)

	// One row per bin, one column per window.
	assert.Equal(t, "2,0,0\n2,2,0\n0,2,2\n0,0,2\n", string(hist))

	loci, err := os.ReadFile(filepath.Join(dir, "out_loci.csv"))
	require.NoError(t, err)

	// Default locus base is 1.
	assert.Equal(t, "1,3,5\n", string(loci))

	edges, err := os.ReadFile(filepath.Join(dir, "out_edges.csv"))
	require.NoError(t, err)
	assert.Equal(t, "0,0.25,0.5,0.75,1\n", string(edges))
}

func TestCSVWriter_ZeroLocusBase(t *testing.T) {
	res, _ := computeResult(t)

	dir := t.TempDir()
	base := 0
	w := NewCSVWriter(testLog(), CSVConfig{Dir: dir, LocusBase: &base})

	require.NoError(t, w.Write(res))

	loci, err := os.ReadFile(filepath.Join(dir, "histwin_loci.csv"))
	require.NoError(t, err)
	assert.Equal(t, "0,2,4\n", string(loci))
}

func TestRows(t *testing.T) {
	res, opts := computeResult(t)

	rows := Rows(res, opts, Meta{RunID: "run-1", Source: "signal.csv"})
	require.Len(t, rows, 3)

	assert.Equal(t, uint32(0), rows[0].Window)
	assert.Equal(t, []uint64{2, 2, 0, 0}, rows[0].Counts)
	assert.Equal(t, uint32(2), rows[1].Locus)
	assert.Equal(t, []uint64{0, 0, 2, 2}, rows[2].Counts)

	for _, row := range rows {
		assert.Equal(t, "run-1", row.RunID)
		assert.Equal(t, "signal.csv", row.Source)
		assert.Equal(t, uint32(4), row.WinLen)
		assert.Equal(t, uint32(2), row.Stride)
		assert.Equal(t, uint32(4), row.Bins)
		assert.Equal(t, res.Edges, row.Edges)
	}

	// Rows own their counts; mutating the matrix must not leak through.
	res.Matrix.Column(0)[0] = 99
	assert.Equal(t, uint64(2), rows[0].Counts[0])
}
