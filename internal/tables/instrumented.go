package tables

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/preston-bernstein/nhl-penalty-service/internal/logging"
	"github.com/preston-bernstein/nhl-penalty-service/internal/metrics"
)

// instrumentedSource logs and records metrics for every table load.
type instrumentedSource struct {
	inner   Source
	name    string
	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time
}

// Instrument wraps a Source with load logging and metrics under name.
func Instrument(inner Source, name string, logger *slog.Logger, recorder *metrics.Recorder) Source {
	return &instrumentedSource{
		inner:   inner,
		name:    name,
		logger:  logger,
		metrics: recorder,
		now:     time.Now,
	}
}

func (s *instrumentedSource) SeasonTable(ctx context.Context, season string) (SeasonTable, error) {
	start := s.now()
	table, err := s.inner.SeasonTable(ctx, season)
	s.observe(ctx, KindSeason, start, err, slog.String(logging.FieldSeason, season))
	return table, err
}

func (s *instrumentedSource) LeagueTotals(ctx context.Context) (LeagueTotals, error) {
	start := s.now()
	totals, err := s.inner.LeagueTotals(ctx)
	s.observe(ctx, KindLeague, start, err)
	return totals, err
}

func (s *instrumentedSource) observe(ctx context.Context, kind string, start time.Time, err error, args ...any) {
	duration := s.now().Sub(start)
	s.metrics.RecordTableLoad(s.name, kind, duration, err)

	logger := logging.FromContext(ctx, s.logger)
	if logger == nil {
		return
	}
	args = append(args,
		slog.String(logging.FieldSource, s.name),
		slog.String("table", kind),
		slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
	)
	switch {
	case err == nil:
		logger.Log(ctx, slog.LevelDebug, "table loaded", args...)
	case errors.Is(err, ErrNotFound):
		logger.Log(ctx, slog.LevelInfo, "table not found", append(args, "error", err)...)
	default:
		logger.Log(ctx, slog.LevelWarn, "table load failed", append(args, "error", err)...)
	}
}
