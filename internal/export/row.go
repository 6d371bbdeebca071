// Package export delivers sliding histogram results to their
// destinations: local CSV files, ClickHouse, or an HTTP collector.
package export

import (
	"time"

	"github.com/waveforge/histwin/internal/histogram"
)

// Meta identifies the run that produced a set of window rows.
type Meta struct {
	// RunID uniquely identifies one computation run.
	RunID string

	// Source names the input signal, typically the file path.
	Source string
}

// WindowRow is one window's histogram flattened for row-oriented
// export. Loci are 0-based here; base conversion is a property of the
// individual exporter boundary, not of the row.
type WindowRow struct {
	UpdatedDateTime time.Time `json:"updated_date_time"`
	RunID           string    `json:"run_id"`
	Source          string    `json:"source"`
	Window          uint32    `json:"window"`
	Locus           uint32    `json:"locus"`
	WinLen          uint32    `json:"win_len"`
	Stride          uint32    `json:"stride"`
	Bins            uint32    `json:"bins"`
	Counts          []uint64  `json:"counts"`
	Edges           []float64 `json:"edges"`
}

// Rows flattens a computation result into one row per window.
func Rows(res *histogram.Result, opts histogram.Options, meta Meta) []*WindowRow {
	now := time.Now()

	rows := make([]*WindowRow, res.Matrix.Windows)
	for w := range rows {
		counts := make([]uint64, res.Matrix.Bins)
		copy(counts, res.Matrix.Column(w))

		rows[w] = &WindowRow{
			UpdatedDateTime: now,
			RunID:           meta.RunID,
			Source:          meta.Source,
			Window:          uint32(w),
			Locus:           uint32(res.Loci[w]),
			WinLen:          uint32(opts.WinLen),
			Stride:          uint32(opts.Stride),
			Bins:            uint32(opts.Bins),
			Counts:          counts,
			Edges:           res.Edges,
		}
	}

	return rows
}
