package testutil

import (
	"github.com/preston-bernstein/nhl-penalty-service/internal/tables"
)

// PenaltyColumns is the column order of the fixture season tables.
var PenaltyColumns = []string{"slashing", "hooking", "tripping", "sticking", "interference", "roughing", "fighting", "total"}

// SeasonTable builds a season table from per-team counts aligned with
// PenaltyColumns minus the total column, which is computed.
func SeasonTable(season string, counts map[string][7]int) tables.SeasonTable {
	table := tables.SeasonTable{
		Season:  season,
		Columns: append([]string(nil), PenaltyColumns...),
	}
	for team, values := range counts {
		row := tables.TeamRow{Team: team, Counts: make(map[string]int, len(PenaltyColumns))}
		total := 0
		for i, v := range values {
			row.Counts[PenaltyColumns[i]] = v
			total += v
		}
		row.Counts["total"] = total
		table.Rows = append(table.Rows, row)
	}
	return table
}

// LeagueTotals builds league totals keyed by season with the seven penalty columns.
func LeagueTotals(seasons map[string][7]int) tables.LeagueTotals {
	totals := tables.LeagueTotals{
		Columns: append([]string(nil), PenaltyColumns[:7]...),
		Seasons: make(map[string][]int, len(seasons)),
	}
	for id, values := range seasons {
		totals.Seasons[id] = append([]int(nil), values[:]...)
	}
	return totals
}

// PenaltyStore returns a memory store with three seasons (2013, 2015, 2016)
// and league totals for each.
func PenaltyStore() *tables.MemoryStore {
	store := tables.NewMemoryStore()
	store.SetSeasonTable(SeasonTable("2013", map[string][7]int{
		"BOS": {10, 8, 6, 4, 3, 12, 9},
		"TOR": {7, 5, 9, 2, 4, 10, 6},
	}))
	store.SetSeasonTable(SeasonTable("2015", map[string][7]int{
		"BOS": {20, 15, 11, 9, 8, 25, 12},
		"TOR": {18, 17, 14, 10, 9, 21, 7},
		"MTL": {16, 12, 13, 8, 6, 19, 12},
		"ARI": {11, 9, 10, 6, 5, 14, 0},
	}))
	store.SetSeasonTable(SeasonTable("2016", map[string][7]int{
		"BOS": {22, 13, 12, 8, 7, 24, 5},
		"TOR": {19, 16, 15, 11, 10, 20, 3},
		"MTL": {14, 10, 12, 9, 4, 18, 8},
	}))
	store.SetLeagueTotals(LeagueTotals(map[string][7]int{
		"2013": {400, 300, 250, 150, 120, 500, 280},
		"2015": {700, 520, 480, 300, 260, 900, 340},
		"2016": {690, 510, 470, 310, 250, 880, 300},
	}))
	return store
}
