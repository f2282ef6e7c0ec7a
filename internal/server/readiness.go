package server

import (
	"context"

	"github.com/preston-bernstein/nhl-penalty-service/internal/tables"
)

// readiness reports ready once the league totals table can be loaded.
func readiness(source tables.Source) func(context.Context) error {
	return func(ctx context.Context) error {
		_, err := source.LeagueTotals(ctx)
		return err
	}
}
