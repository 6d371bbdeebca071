package export

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLog() logrus.FieldLogger {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	return log
}

func startHealth(t *testing.T) *HealthMetrics {
	t.Helper()

	h := NewHealthMetrics(testLog(), HealthConfig{
		Addr: "127.0.0.1:0",
	})

	require.NoError(t, h.Start(context.Background()))

	t.Cleanup(func() {
		h.Stop()
	})

	// Give the server a moment to start serving.
	time.Sleep(50 * time.Millisecond)

	return h
}

func TestHealthMetrics_StartStop(t *testing.T) {
	h := startHealth(t)

	assert.True(t, h.running.Load())
	assert.NotEmpty(t, h.Addr())
}

func TestHealthMetrics_Healthz(t *testing.T) {
	h := startHealth(t)

	resp, err := http.Get(fmt.Sprintf("http://%s/healthz", h.Addr()))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealthMetrics_MetricsEndpoint(t *testing.T) {
	h := startHealth(t)

	h.WindowsComputed.Add(3)
	h.DroppedCounts.Inc()
	h.RowsExported.WithLabelValues("csv").Add(3)

	resp, err := http.Get(fmt.Sprintf("http://%s/metrics", h.Addr()))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "histwin_windows_computed_total 3")
	assert.Contains(t, string(body), "histwin_dropped_contributions_total 1")
	assert.Contains(t, string(body), `histwin_rows_exported_total{exporter="csv"} 3`)
}
