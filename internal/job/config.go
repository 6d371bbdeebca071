// Package job wires input loading, the sliding histogram computation
// and result export into one batch run.
package job

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/waveforge/histwin/internal/export"
	httpexport "github.com/waveforge/histwin/internal/export/http"
	"github.com/waveforge/histwin/internal/histogram"
	"github.com/waveforge/histwin/internal/signal"
)

// Config is the top-level configuration for a histwin run.
type Config struct {
	// LogLevel sets the logging verbosity (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	// RunID identifies this run in exported rows. Defaults to a
	// timestamp-derived identifier.
	RunID string `yaml:"run_id"`

	// Input configures the signal source.
	Input InputConfig `yaml:"input"`

	// Histogram configures the sliding histogram computation.
	Histogram HistogramConfig `yaml:"histogram"`

	// CSV configures local file output. Enabled by default.
	CSV export.CSVConfig `yaml:"csv"`

	// ClickHouse configures the ClickHouse exporter.
	ClickHouse export.ClickHouseConfig `yaml:"clickhouse"`

	// HTTP configures the HTTP exporter.
	HTTP httpexport.Config `yaml:"http"`

	// Health configures the Prometheus metrics server.
	Health export.HealthConfig `yaml:"health"`
}

// InputConfig configures the signal source.
type InputConfig struct {
	// Path is the signal file to read.
	Path string `yaml:"path"`

	// Format overrides extension-based format detection
	// (csv, f64, json).
	Format signal.Format `yaml:"format"`
}

// HistogramConfig configures the computation parameters.
type HistogramConfig struct {
	// Bins is the number of histogram bins. Must be greater than 2.
	Bins int `yaml:"bins"`

	// WinLen is the sliding window length in samples.
	WinLen int `yaml:"win_len"`

	// Stride is the offset between consecutive windows.
	// Defaults to 1; must be less than win_len.
	Stride int `yaml:"stride"`

	// NormalizeFromRange normalizes input by its observed min/max
	// before binning. When false, input is assumed to lie in [0, 1].
	NormalizeFromRange bool `yaml:"normalize_from_range"`

	// Workers computes the window range in that many parallel chunks.
	Workers int `yaml:"workers"`
}

// Options converts the configuration to computation options.
func (h HistogramConfig) Options() histogram.Options {
	return histogram.Options{
		Bins:               h.Bins,
		WinLen:             h.WinLen,
		Stride:             h.Stride,
		NormalizeFromRange: h.NormalizeFromRange,
		Workers:            h.Workers,
	}
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Histogram: HistogramConfig{
			Stride: 1,
		},
		CSV: export.CSVConfig{
			Enabled: true,
		},
		Health: export.HealthConfig{
			Addr: ":9090",
		},
	}
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := DefaultConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for required fields and
// consistency. The numeric constraints on the computation itself are
// enforced again by the engine before any work starts.
func (c *Config) Validate() error {
	if c.Input.Path == "" {
		return fmt.Errorf("input.path is required")
	}

	if c.Histogram.Bins <= 2 {
		return fmt.Errorf("histogram.bins must be greater than 2")
	}

	if c.Histogram.WinLen <= 0 {
		return fmt.Errorf("histogram.win_len must be positive")
	}

	if c.Histogram.Stride <= 0 || c.Histogram.Stride >= c.Histogram.WinLen {
		return fmt.Errorf("histogram.stride must be positive and less than win_len")
	}

	if c.ClickHouse.Enabled && c.ClickHouse.Endpoint == "" {
		return fmt.Errorf("clickhouse.endpoint is required when enabled")
	}

	if err := c.HTTP.Validate(); err != nil {
		return fmt.Errorf("http: %w", err)
	}

	if !c.CSV.Enabled && !c.ClickHouse.Enabled && !c.HTTP.Enabled {
		return fmt.Errorf("at least one of csv, clickhouse or http output must be enabled")
	}

	return nil
}
