package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"testing"

	"github.com/preston-bernstein/nhl-penalty-service/internal/tables"
)

// WriteSeasonCSV writes table in the two-row header export layout to
// dir/team_penalties_<season>.csv. Each team column holds a single data row.
func WriteSeasonCSV(t *testing.T, dir string, table tables.SeasonTable) string {
	t.Helper()
	teamsRow := []string{""}
	columnsRow := []string{""}
	dataRow := []string{"0"}
	for _, row := range sortedRows(table.Rows) {
		for _, col := range table.Columns {
			teamsRow = append(teamsRow, row.Team)
			columnsRow = append(columnsRow, col)
			dataRow = append(dataRow, strconv.Itoa(row.Count(col)))
		}
	}
	path := filepath.Join(dir, "team_penalties_"+table.Season+".csv")
	writeLines(t, path, teamsRow, columnsRow, dataRow)
	return path
}

// WriteLeagueCSV writes totals to dir/yearly_penalty_totals.csv.
func WriteLeagueCSV(t *testing.T, dir string, totals tables.LeagueTotals) string {
	t.Helper()
	lines := [][]string{append([]string{"Year"}, totals.Columns...)}
	ids := make([]string, 0, len(totals.Seasons))
	for id := range totals.Seasons {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		line := []string{id}
		for _, n := range totals.Seasons[id] {
			line = append(line, strconv.Itoa(n))
		}
		lines = append(lines, line)
	}
	path := filepath.Join(dir, "yearly_penalty_totals.csv")
	writeLines(t, path, lines...)
	return path
}

// WriteFixtureCSVs writes every table in PenaltyStore to dir.
func WriteFixtureCSVs(t *testing.T, dir string) {
	t.Helper()
	store := PenaltyStore()
	for _, season := range []string{"2013", "2015", "2016"} {
		table, err := store.SeasonTable(t.Context(), season)
		if err != nil {
			t.Fatalf("fixture season %s: %v", season, err)
		}
		WriteSeasonCSV(t, dir, table)
	}
	totals, err := store.LeagueTotals(t.Context())
	if err != nil {
		t.Fatalf("fixture league totals: %v", err)
	}
	WriteLeagueCSV(t, dir, totals)
}

func sortedRows(rows []tables.TeamRow) []tables.TeamRow {
	out := append([]tables.TeamRow(nil), rows...)
	sort.Slice(out, func(i, j int) bool { return out[i].Team < out[j].Team })
	return out
}

func writeLines(t *testing.T, path string, lines ...[]string) {
	t.Helper()
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(strings.Join(line, ","))
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
