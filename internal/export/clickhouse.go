package export

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/sirupsen/logrus"
)

// ClickHouseConfig configures the ClickHouse writer.
type ClickHouseConfig struct {
	// Enabled enables the ClickHouse exporter.
	Enabled bool `yaml:"enabled"`

	// Endpoint is the ClickHouse native protocol address.
	Endpoint string `yaml:"endpoint"`

	// Database is the target database name. Defaults to "default".
	Database string `yaml:"database"`

	// Table is the target table name. Defaults to "window_histograms".
	Table string `yaml:"table"`

	// Username for ClickHouse authentication.
	Username string `yaml:"username"`

	// Password for ClickHouse authentication.
	Password string `yaml:"password"`
}

// ApplyDefaults applies default values to unset fields.
func (c *ClickHouseConfig) ApplyDefaults() {
	if c.Database == "" {
		c.Database = "default"
	}

	if c.Table == "" {
		c.Table = "window_histograms"
	}
}

// DSN returns the connection string used by schema migrations.
func (c *ClickHouseConfig) DSN() string {
	return fmt.Sprintf("clickhouse://%s/%s", c.Endpoint, c.Database)
}

// ClickHouseWriter writes window histogram rows to ClickHouse.
type ClickHouseWriter struct {
	log  logrus.FieldLogger
	cfg  ClickHouseConfig
	conn clickhouse.Conn
}

// NewClickHouseWriter creates a new ClickHouse writer.
func NewClickHouseWriter(
	log logrus.FieldLogger,
	cfg ClickHouseConfig,
) *ClickHouseWriter {
	cfg.ApplyDefaults()

	return &ClickHouseWriter{
		log: log.WithField("exporter", "clickhouse"),
		cfg: cfg,
	}
}

// Start opens the ClickHouse connection.
func (w *ClickHouseWriter) Start(ctx context.Context) error {
	opts := &clickhouse.Options{
		Addr: []string{w.cfg.Endpoint},
		Auth: clickhouse.Auth{
			Database: w.cfg.Database,
			Username: w.cfg.Username,
			Password: w.cfg.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 60,
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
		MaxOpenConns: 5,
		MaxIdleConns: 2,
	}

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return fmt.Errorf("opening ClickHouse connection: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		return fmt.Errorf("pinging ClickHouse: %w", err)
	}

	w.conn = conn

	w.log.WithField("endpoint", w.cfg.Endpoint).
		Info("ClickHouse writer connected")

	return nil
}

// InsertRows writes window rows in a single batch insert.
func (w *ClickHouseWriter) InsertRows(ctx context.Context, rows []*WindowRow) error {
	if len(rows) == 0 {
		return nil
	}

	batch, err := w.conn.PrepareBatch(ctx, "INSERT INTO "+w.cfg.Table)
	if err != nil {
		return fmt.Errorf("preparing batch: %w", err)
	}

	for _, r := range rows {
		err := batch.Append(
			r.UpdatedDateTime,
			r.RunID,
			r.Source,
			r.Window,
			r.Locus,
			r.WinLen,
			r.Stride,
			r.Bins,
			r.Counts,
			r.Edges,
		)
		if err != nil {
			return fmt.Errorf("appending row: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("sending batch: %w", err)
	}

	w.log.WithField("rows", len(rows)).Debug("Inserted window rows")

	return nil
}

// Stop closes the ClickHouse connection.
func (w *ClickHouseWriter) Stop() error {
	if w.conn != nil {
		return w.conn.Close()
	}

	return nil
}
