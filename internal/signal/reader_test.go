package signal

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	return path
}

func TestRead_CSV(t *testing.T) {
	path := writeFile(t, "signal.csv", []byte("0.1,0.2,0.3\n0.4\n0.5, 0.6\n"))

	values, err := Read(path, FormatAuto)
	require.NoError(t, err)

	assert.Equal(t, []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}, values)
}

func TestRead_CSVBadValue(t *testing.T) {
	path := writeFile(t, "signal.csv", []byte("0.1,abc\n"))

	_, err := Read(path, FormatAuto)
	assert.Error(t, err)
}

func TestRead_F64(t *testing.T) {
	want := []float64{1.5, -2.25, 0.0, 123.456}

	data := make([]byte, len(want)*8)
	for i, v := range want {
		binary.LittleEndian.PutUint64(data[i*8:], math.Float64bits(v))
	}

	path := writeFile(t, "signal.f64", data)

	values, err := Read(path, FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, want, values)
}

func TestRead_F64Truncated(t *testing.T) {
	path := writeFile(t, "signal.f64", []byte{1, 2, 3})

	_, err := Read(path, FormatAuto)
	assert.Error(t, err)
}

func TestRead_JSON(t *testing.T) {
	path := writeFile(t, "signal.json", []byte("[0.25, 0.5, 0.75]"))

	values, err := Read(path, FormatAuto)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, 0.5, 0.75}, values)
}

func TestRead_FormatOverride(t *testing.T) {
	// Extension says nothing, explicit format wins.
	path := writeFile(t, "signal.dat", []byte("[1.0, 2.0]"))

	values, err := Read(path, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, []float64{1.0, 2.0}, values)
}

func TestRead_UnknownExtension(t *testing.T) {
	path := writeFile(t, "signal.dat", []byte("1.0"))

	_, err := Read(path, FormatAuto)
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{0.5, -1.0, 2.0, 0.5})

	assert.Equal(t, 4, s.Count)
	assert.Equal(t, -1.0, s.Min)
	assert.Equal(t, 2.0, s.Max)
	assert.InDelta(t, 0.5, s.Mean, 1e-12)
	assert.Equal(t, 0, s.NonFinite)
}

func TestSummarize_NonFinite(t *testing.T) {
	s := Summarize([]float64{1.0, math.NaN(), math.Inf(1), 3.0})

	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 2, s.NonFinite)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 3.0, s.Max)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)

	assert.Equal(t, 0, s.Count)
	assert.Equal(t, 0.0, s.Mean)
}
