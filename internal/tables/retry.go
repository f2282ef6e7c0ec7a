package tables

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/preston-bernstein/nhl-penalty-service/internal/logging"
)

const (
	defaultRetryAttempts = 3
	defaultRetryBackoff  = 50 * time.Millisecond
)

type backoffFunc func(attempt int) time.Duration

// retryingSource retries table loads that failed with a transient error.
type retryingSource struct {
	inner       Source
	logger      *slog.Logger
	maxAttempts int
	backoffFn   backoffFunc
}

// Retry wraps inner so transient failures (a locked SQLite database, a
// temporary I/O error) are retried with linear backoff. Missing tables,
// malformed files and context errors fail at once. Non-positive arguments
// select the defaults.
func Retry(inner Source, logger *slog.Logger, maxAttempts int, backoff time.Duration) Source {
	if maxAttempts <= 0 {
		maxAttempts = defaultRetryAttempts
	}
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}
	return &retryingSource{
		inner:       inner,
		logger:      logger,
		maxAttempts: maxAttempts,
		backoffFn: func(attempt int) time.Duration {
			return time.Duration(attempt) * backoff
		},
	}
}

func (r *retryingSource) SeasonTable(ctx context.Context, season string) (SeasonTable, error) {
	var table SeasonTable
	err := r.do(ctx, KindSeason, func() error {
		var err error
		table, err = r.inner.SeasonTable(ctx, season)
		return err
	})
	return table, err
}

func (r *retryingSource) LeagueTotals(ctx context.Context) (LeagueTotals, error) {
	var totals LeagueTotals
	err := r.do(ctx, KindLeague, func() error {
		var err error
		totals, err = r.inner.LeagueTotals(ctx)
		return err
	})
	return totals, err
}

func (r *retryingSource) do(ctx context.Context, kind string, load func() error) error {
	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		lastErr = load()
		if lastErr == nil || !IsTransient(lastErr) {
			return lastErr
		}
		if attempt == r.maxAttempts {
			break
		}

		logger := logging.FromContext(ctx, r.logger)
		logging.Warn(logger, "table load retry", "table", kind, "attempt", attempt, "max_attempts", r.maxAttempts, "err", lastErr)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.backoffFn(attempt)):
		}
	}
	return lastErr
}

// IsTransient reports whether a load error may succeed when retried.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, ErrNotFound) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() & 0xff {
		case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
			return true
		}
		return false
	}
	var temp interface{ Temporary() bool }
	return errors.As(err, &temp) && temp.Temporary()
}
