package testutil

import (
	"context"
	"sync/atomic"

	"github.com/preston-bernstein/nhl-penalty-service/internal/metrics"
)

// MetricsHarness pairs an in-memory recorder with a shutdown func that
// counts its calls, standing in for metrics.Setup's return values.
type MetricsHarness struct {
	Recorder  *metrics.Recorder
	Shutdowns atomic.Int32
	// ShutdownErr is returned from every Shutdown call.
	ShutdownErr error
}

// NewMetricsHarness returns a harness with a fresh recorder.
func NewMetricsHarness() *MetricsHarness {
	return &MetricsHarness{Recorder: metrics.NewRecorder()}
}

// Shutdown matches the shutdown func returned by metrics.Setup.
func (h *MetricsHarness) Shutdown(context.Context) error {
	h.Shutdowns.Add(1)
	return h.ShutdownErr
}
