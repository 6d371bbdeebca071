package job

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJob_Run(t *testing.T) {
	dir := t.TempDir()

	signalPath := filepath.Join(dir, "signal.csv")
	require.NoError(t, os.WriteFile(
		signalPath,
		[]byte("0.0,0.1,0.25,0.4,0.55,0.7,0.85,0.95\n"),
		0o644,
	))

	cfg := DefaultConfig()
	cfg.Input.Path = signalPath
	cfg.Histogram.Bins = 4
	cfg.Histogram.WinLen = 4
	cfg.Histogram.Stride = 2
	cfg.CSV.Dir = dir
	require.NoError(t, cfg.Validate())

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	j := New(log, cfg)
	require.NoError(t, j.Run(context.Background()))

	hist, err := os.ReadFile(filepath.Join(dir, "histwin_hist.csv"))
	require.NoError(t, err)
	assert.Equal(t, "2,0,0\n2,2,0\n0,2,2\n0,0,2\n", string(hist))

	loci, err := os.ReadFile(filepath.Join(dir, "histwin_loci.csv"))
	require.NoError(t, err)
	assert.Equal(t, "1,3,5\n", string(loci))
}

func TestJob_RunMissingInput(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Input.Path = filepath.Join(t.TempDir(), "missing.csv")
	cfg.Histogram.Bins = 4
	cfg.Histogram.WinLen = 4
	cfg.Histogram.Stride = 2

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	j := New(log, cfg)
	assert.Error(t, j.Run(context.Background()))
}

func TestJob_RunInvalidParameters(t *testing.T) {
	dir := t.TempDir()

	signalPath := filepath.Join(dir, "signal.csv")
	require.NoError(t, os.WriteFile(signalPath, []byte("0.1,0.2\n"), 0o644))

	cfg := DefaultConfig()
	cfg.Input.Path = signalPath
	cfg.Histogram.Bins = 4
	cfg.Histogram.WinLen = 8 // longer than the signal
	cfg.Histogram.Stride = 2
	cfg.CSV.Dir = dir

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	j := New(log, cfg)
	assert.ErrorContains(t, j.Run(context.Background()), "computing sliding histogram")
}
