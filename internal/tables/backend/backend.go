// Package backend opens the table store selected by configuration. The server
// and penaltyctl share it so both read tables the same way.
package backend

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/preston-bernstein/nhl-penalty-service/internal/config"
	"github.com/preston-bernstein/nhl-penalty-service/internal/metrics"
	"github.com/preston-bernstein/nhl-penalty-service/internal/tables"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open opens the configured table backend. Every load attempt is logged and
// recorded under the backend name, and transient failures are retried per
// cfg.RetryAttempts. The returned closer releases the backend.
func Open(ctx context.Context, cfg config.DataConfig, logger *slog.Logger, recorder *metrics.Recorder) (tables.Source, io.Closer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	var (
		inner  tables.Source
		closer io.Closer = nopCloser{}
	)
	switch cfg.Backend {
	case config.BackendSQLite:
		store, err := tables.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open sqlite backend: %w", err)
		}
		inner, closer = store, store
	default:
		inner = tables.NewCSVStore(cfg.Dir)
	}

	if logger != nil {
		logger.Info("table source ready",
			slog.String("backend", cfg.Backend),
			slog.String("dir", cfg.Dir),
			slog.String("sqlite_path", cfg.SQLitePath),
			slog.Int("retry_attempts", cfg.RetryAttempts),
		)
	}
	instrumented := tables.Instrument(inner, cfg.Backend, logger, recorder)
	return tables.Retry(instrumented, logger, cfg.RetryAttempts, cfg.RetryBackoff), closer, nil
}
