package job

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/waveforge/histwin/internal/export"
	httpexport "github.com/waveforge/histwin/internal/export/http"
	"github.com/waveforge/histwin/internal/histogram"
	"github.com/waveforge/histwin/internal/signal"
)

// Job runs one sliding histogram computation end to end: read the
// signal, compute, export.
type Job struct {
	log    logrus.FieldLogger
	cfg    *Config
	health *export.HealthMetrics
}

// New creates a new Job.
func New(log logrus.FieldLogger, cfg *Config) *Job {
	return &Job{
		log:    log.WithField("component", "job"),
		cfg:    cfg,
		health: export.NewHealthMetrics(log, cfg.Health),
	}
}

// Run executes the job. It returns once all configured exports have
// completed.
func (j *Job) Run(ctx context.Context) error {
	if j.cfg.Health.Enabled {
		if err := j.health.Start(ctx); err != nil {
			return fmt.Errorf("starting health metrics: %w", err)
		}
		defer j.health.Stop()
	}

	values, err := signal.Read(j.cfg.Input.Path, j.cfg.Input.Format)
	if err != nil {
		return fmt.Errorf("loading input: %w", err)
	}

	summary := signal.Summarize(values)
	j.health.SamplesRead.Add(float64(summary.Count))

	j.log.WithFields(logrus.Fields{
		"path":       j.cfg.Input.Path,
		"samples":    summary.Count,
		"min":        summary.Min,
		"max":        summary.Max,
		"mean":       summary.Mean,
		"non_finite": summary.NonFinite,
	}).Info("Loaded input signal")

	start := time.Now()

	res, err := histogram.Compute(values, j.cfg.Histogram.Options())
	if err != nil {
		return fmt.Errorf("computing sliding histogram: %w", err)
	}

	elapsed := time.Since(start)
	j.health.ComputeDuration.Observe(elapsed.Seconds())
	j.health.WindowsComputed.Add(float64(res.Matrix.Windows))
	j.health.DroppedCounts.Add(float64(res.Dropped))

	j.log.WithFields(logrus.Fields{
		"windows":  res.Matrix.Windows,
		"bins":     res.Matrix.Bins,
		"duration": elapsed,
	}).Info("Computation finished")

	if res.Dropped > 0 {
		j.log.WithField("dropped", res.Dropped).
			Warn("Some contributions fell outside the bin range; affected columns sum short of win_len")
	}

	return j.export(ctx, res)
}

func (j *Job) export(ctx context.Context, res *histogram.Result) error {
	if j.cfg.CSV.Enabled {
		if err := j.exportCSV(res); err != nil {
			j.health.ExportErrors.WithLabelValues("csv").Inc()
			return fmt.Errorf("csv export: %w", err)
		}
	}

	if !j.cfg.ClickHouse.Enabled && !j.cfg.HTTP.Enabled {
		return nil
	}

	meta := export.Meta{
		RunID:  j.runID(),
		Source: j.cfg.Input.Path,
	}

	rows := export.Rows(res, j.cfg.Histogram.Options(), meta)

	if j.cfg.ClickHouse.Enabled {
		if err := j.exportClickHouse(ctx, rows); err != nil {
			j.health.ExportErrors.WithLabelValues("clickhouse").Inc()
			return fmt.Errorf("clickhouse export: %w", err)
		}
	}

	if j.cfg.HTTP.Enabled {
		if err := j.exportHTTP(ctx, rows); err != nil {
			j.health.ExportErrors.WithLabelValues("http").Inc()
			return fmt.Errorf("http export: %w", err)
		}
	}

	return nil
}

func (j *Job) exportCSV(res *histogram.Result) error {
	start := time.Now()

	writer := export.NewCSVWriter(j.log, j.cfg.CSV)
	if err := writer.Write(res); err != nil {
		return err
	}

	j.health.ExportDuration.WithLabelValues("csv").Observe(time.Since(start).Seconds())
	j.health.RowsExported.WithLabelValues("csv").Add(float64(res.Matrix.Windows))

	return nil
}

func (j *Job) exportClickHouse(ctx context.Context, rows []*export.WindowRow) error {
	start := time.Now()

	writer := export.NewClickHouseWriter(j.log, j.cfg.ClickHouse)
	if err := writer.Start(ctx); err != nil {
		return err
	}
	defer writer.Stop()

	if err := writer.InsertRows(ctx, rows); err != nil {
		return err
	}

	j.health.ExportDuration.WithLabelValues("clickhouse").Observe(time.Since(start).Seconds())
	j.health.RowsExported.WithLabelValues("clickhouse").Add(float64(len(rows)))

	return nil
}

func (j *Job) exportHTTP(ctx context.Context, rows []*export.WindowRow) error {
	start := time.Now()

	proc, err := httpexport.NewProcessor(j.log, j.cfg.HTTP, "window_histograms")
	if err != nil {
		return err
	}

	proc.Start(ctx)

	if err := proc.Write(ctx, rows); err != nil {
		return err
	}

	// Shutdown drains any queued batches before returning.
	if err := proc.Shutdown(ctx); err != nil {
		return err
	}

	j.health.ExportDuration.WithLabelValues("http").Observe(time.Since(start).Seconds())
	j.health.RowsExported.WithLabelValues("http").Add(float64(len(rows)))

	return nil
}

func (j *Job) runID() string {
	if j.cfg.RunID != "" {
		return j.cfg.RunID
	}

	return "run-" + time.Now().UTC().Format("20060102T150405Z")
}
