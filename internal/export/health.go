package export

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/pprof"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// HealthConfig configures the Prometheus health metrics server.
type HealthConfig struct {
	// Enabled enables the metrics server. Off by default: histwin is
	// usually a one-shot batch run, but long batch jobs and scheduled
	// runs benefit from scraping.
	Enabled bool `yaml:"enabled"`

	// Addr is the listen address. Defaults to ":9090".
	Addr string `yaml:"addr"`
}

// HealthMetrics exposes Prometheus metrics for computation and export
// health, plus pprof endpoints.
type HealthMetrics struct {
	log      logrus.FieldLogger
	addr     string
	server   *http.Server
	listener net.Listener
	registry *prometheus.Registry

	SamplesRead     prometheus.Counter
	WindowsComputed prometheus.Counter
	DroppedCounts   prometheus.Counter
	ComputeDuration prometheus.Histogram
	ExportDuration  *prometheus.HistogramVec
	ExportErrors    *prometheus.CounterVec
	RowsExported    *prometheus.CounterVec

	running atomic.Bool
}

// NewHealthMetrics creates a new health metrics server.
func NewHealthMetrics(
	log logrus.FieldLogger,
	cfg HealthConfig,
) *HealthMetrics {
	reg := prometheus.NewRegistry()

	h := &HealthMetrics{
		log:      log.WithField("component", "health"),
		addr:     cfg.Addr,
		registry: reg,

		SamplesRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "histwin",
			Name:      "samples_read_total",
			Help:      "Total input samples read.",
		}),
		WindowsComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "histwin",
			Name:      "windows_computed_total",
			Help:      "Total histogram windows computed.",
		}),
		DroppedCounts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "histwin",
			Name:      "dropped_contributions_total",
			Help:      "Total histogram contributions dropped as out of range.",
		}),
		ComputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "histwin",
			Name:      "compute_duration_seconds",
			Help:      "Time to run the sliding histogram computation.",
			Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30},
		}),
		ExportDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "histwin",
				Name:      "export_duration_seconds",
				Help:      "Time to export results by exporter.",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30},
			},
			[]string{"exporter"},
		),
		ExportErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "histwin",
				Name:      "export_errors_total",
				Help:      "Total export errors by exporter.",
			},
			[]string{"exporter"},
		),
		RowsExported: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "histwin",
				Name:      "rows_exported_total",
				Help:      "Total window rows exported by exporter.",
			},
			[]string{"exporter"},
		),
	}

	reg.MustRegister(
		h.SamplesRead,
		h.WindowsComputed,
		h.DroppedCounts,
		h.ComputeDuration,
		h.ExportDuration,
		h.ExportErrors,
		h.RowsExported,
	)

	return h
}

// Start begins serving metrics on the configured address.
func (h *HealthMetrics) Start(_ context.Context) error {
	if h.addr == "" {
		h.addr = ":9090"
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(
		h.registry,
		promhttp.HandlerOpts{},
	))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, "ok")
	})

	// pprof endpoints for CPU/memory profiling.
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)

	ln, err := net.Listen("tcp", h.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", h.addr, err)
	}

	h.listener = ln

	h.server = &http.Server{
		Handler: mux,
	}

	h.running.Store(true)

	go func() {
		h.log.WithField("addr", ln.Addr().String()).
			Info("Health metrics server started")

		if err := h.server.Serve(ln); err != nil &&
			err != http.ErrServerClosed {
			h.log.WithError(err).
				Error("Health metrics server error")
		}

		h.running.Store(false)
	}()

	return nil
}

// Addr returns the actual listen address.
func (h *HealthMetrics) Addr() string {
	if h.listener != nil {
		return h.listener.Addr().String()
	}

	return h.addr
}

// Stop shuts the metrics server down.
func (h *HealthMetrics) Stop() error {
	if h.server == nil {
		return nil
	}

	return h.server.Close()
}
