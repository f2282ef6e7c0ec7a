package tables

import "errors"

// ErrNotFound marks a season table, league table or season row that does not exist.
var ErrNotFound = errors.New("table not found")

// Table kinds used in logs and metrics.
const (
	KindSeason = "season"
	KindLeague = "league"
)

// TeamRow holds one team's counts keyed by column.
type TeamRow struct {
	Team   string
	Counts map[string]int
}

// Count returns the value of a column, zero when absent.
func (r TeamRow) Count(column string) int {
	return r.Counts[column]
}

// SeasonTable is a per-season penalty table: one row per team abbreviation,
// one column per penalty type plus the precomputed total column.
type SeasonTable struct {
	Season string
	// Columns keeps the source column order, which is the chart category order.
	Columns []string
	Rows    []TeamRow
}

// Row looks up a team's row by exact abbreviation.
func (t SeasonTable) Row(team string) (TeamRow, bool) {
	for _, row := range t.Rows {
		if row.Team == team {
			return row, true
		}
	}
	return TeamRow{}, false
}

// Clone returns a deep copy.
func (t SeasonTable) Clone() SeasonTable {
	out := SeasonTable{
		Season:  t.Season,
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]TeamRow, 0, len(t.Rows)),
	}
	for _, row := range t.Rows {
		counts := make(map[string]int, len(row.Counts))
		for k, v := range row.Counts {
			counts[k] = v
		}
		out.Rows = append(out.Rows, TeamRow{Team: row.Team, Counts: counts})
	}
	return out
}

// LeagueTotals holds league-wide counts per season, already summed across teams.
type LeagueTotals struct {
	Columns []string
	// Seasons maps a season id to counts aligned with Columns.
	Seasons map[string][]int
}

// Season returns the counts for a season id.
func (l LeagueTotals) Season(id string) ([]int, bool) {
	counts, ok := l.Seasons[id]
	return counts, ok
}

// Clone returns a deep copy.
func (l LeagueTotals) Clone() LeagueTotals {
	out := LeagueTotals{
		Columns: append([]string(nil), l.Columns...),
		Seasons: make(map[string][]int, len(l.Seasons)),
	}
	for id, counts := range l.Seasons {
		out.Seasons[id] = append([]int(nil), counts...)
	}
	return out
}
