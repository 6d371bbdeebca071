package http

import (
	"errors"
	"time"
)

// Config configures the HTTP exporter.
type Config struct {
	// Enabled enables the HTTP exporter.
	Enabled bool `yaml:"enabled"`

	// Address is the HTTP endpoint to send window rows to.
	Address string `yaml:"address"`

	// Headers are additional HTTP headers to include in requests.
	Headers map[string]string `yaml:"headers"`

	// Compression specifies the payload compression algorithm.
	// Valid values: none, gzip, zstd, snappy. Defaults to gzip.
	Compression string `yaml:"compression"`

	// BatchSize is the maximum number of rows per batch.
	// Defaults to 512.
	BatchSize int `yaml:"batch_size"`

	// BatchTimeout is the maximum wait before sending a partial batch.
	// Defaults to 5s.
	BatchTimeout time.Duration `yaml:"batch_timeout"`

	// ExportTimeout is the maximum duration of one export request.
	// Defaults to 30s.
	ExportTimeout time.Duration `yaml:"export_timeout"`

	// MaxQueueSize is the maximum number of rows to queue.
	// Defaults to 51200.
	MaxQueueSize int `yaml:"max_queue_size"`

	// Workers is the number of concurrent export workers.
	// Defaults to 1.
	Workers int `yaml:"workers"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Compression:   CompressionGzip,
		BatchSize:     512,
		BatchTimeout:  5 * time.Second,
		ExportTimeout: 30 * time.Second,
		MaxQueueSize:  51200,
		Workers:       1,
	}
}

// ApplyDefaults applies default values to unset fields.
func (c *Config) ApplyDefaults() {
	defaults := DefaultConfig()

	if c.Compression == "" {
		c.Compression = defaults.Compression
	}

	if c.BatchSize <= 0 {
		c.BatchSize = defaults.BatchSize
	}

	if c.BatchTimeout <= 0 {
		c.BatchTimeout = defaults.BatchTimeout
	}

	if c.ExportTimeout <= 0 {
		c.ExportTimeout = defaults.ExportTimeout
	}

	if c.MaxQueueSize <= 0 {
		c.MaxQueueSize = defaults.MaxQueueSize
	}

	if c.Workers <= 0 {
		c.Workers = defaults.Workers
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.Address == "" {
		return errors.New("http address is required when enabled")
	}

	if c.BatchSize > c.MaxQueueSize {
		return errors.New("batch_size cannot be greater than max_queue_size")
	}

	switch c.Compression {
	case "", CompressionNone, CompressionGzip, CompressionZstd, CompressionSnappy:
	default:
		return errors.New("invalid compression type: " + c.Compression)
	}

	return nil
}
