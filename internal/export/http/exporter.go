// Package http ships window histogram rows to an HTTP collector (for
// example Vector) as compressed NDJSON, batched through a background
// processor.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	processor "github.com/ethpandaops/go-batch-processor"
	"github.com/sirupsen/logrus"

	"github.com/waveforge/histwin/internal/export"
)

// Exporter posts batches of window rows to the configured endpoint.
type Exporter struct {
	cfg        Config
	client     *http.Client
	compressor *Compressor
	log        logrus.FieldLogger
}

var _ processor.ItemExporter[export.WindowRow] = (*Exporter)(nil)

// NewExporter creates a new HTTP exporter.
func NewExporter(log logrus.FieldLogger, cfg Config) (*Exporter, error) {
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	compressor, err := NewCompressor(cfg.Compression)
	if err != nil {
		return nil, fmt.Errorf("creating compressor: %w", err)
	}

	transport := &http.Transport{
		MaxIdleConns:        cfg.Workers * 2,
		MaxIdleConnsPerHost: cfg.Workers * 2,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Exporter{
		cfg: cfg,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.ExportTimeout,
		},
		compressor: compressor,
		log:        log.WithField("exporter", "http"),
	}, nil
}

// ExportItems posts a batch of window rows as NDJSON.
func (e *Exporter) ExportItems(ctx context.Context, rows []*export.WindowRow) error {
	if len(rows) == 0 {
		return nil
	}

	var buf bytes.Buffer
	buf.Grow(len(rows) * 512)

	encoder := json.NewEncoder(&buf)

	for _, row := range rows {
		if row == nil {
			continue
		}

		if err := encoder.Encode(row); err != nil {
			return fmt.Errorf("encoding row: %w", err)
		}
	}

	data := buf.Bytes()

	compressed, err := e.compressor.Compress(data)
	if err != nil {
		return fmt.Errorf("compressing data: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, e.cfg.Address, bytes.NewReader(compressed),
	)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-ndjson")

	if encoding := e.compressor.ContentEncoding(); encoding != "" {
		req.Header.Set("Content-Encoding", encoding)
	}

	for k, v := range e.cfg.Headers {
		req.Header.Set(k, v)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}

	defer resp.Body.Close()

	// Drain the body so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	e.log.WithFields(logrus.Fields{
		"rows":       len(rows),
		"bytes":      len(data),
		"compressed": len(compressed),
	}).Debug("Exported batch via HTTP")

	return nil
}

// Shutdown releases exporter resources.
func (e *Exporter) Shutdown(_ context.Context) error {
	if e.compressor != nil {
		return e.compressor.Close()
	}

	return nil
}

// NewProcessor creates a batch processor backed by this exporter.
func NewProcessor(
	log logrus.FieldLogger,
	cfg Config,
	name string,
) (*processor.BatchItemProcessor[export.WindowRow], error) {
	cfg.ApplyDefaults()

	exporter, err := NewExporter(log, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating exporter: %w", err)
	}

	proc, err := processor.NewBatchItemProcessor[export.WindowRow](
		exporter,
		name,
		log,
		processor.WithMaxQueueSize(cfg.MaxQueueSize),
		processor.WithBatchTimeout(cfg.BatchTimeout),
		processor.WithExportTimeout(cfg.ExportTimeout),
		processor.WithMaxExportBatchSize(cfg.BatchSize),
		processor.WithWorkers(cfg.Workers),
	)
	if err != nil {
		return nil, fmt.Errorf("creating processor: %w", err)
	}

	return proc, nil
}
