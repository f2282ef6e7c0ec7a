package tables

import "context"

// Source is read access to penalty tables. Missing tables return an error
// wrapping ErrNotFound.
type Source interface {
	SeasonTable(ctx context.Context, season string) (SeasonTable, error)
	LeagueTotals(ctx context.Context) (LeagueTotals, error)
}
