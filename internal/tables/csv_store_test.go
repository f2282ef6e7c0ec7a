package tables

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const seasonCSV = `,ANA,ANA,ANA,TOR,TOR,TOR
,slashing,sticking,total,slashing,sticking,total
0,2,1.0,3,4,0,4
1,1,,1,0,3,3
`

const leagueCSV = `Year,slashing,hooking,sticking
2013,120.0,80,55
2015,300,210,140
`

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestCSVStoreSeasonTableSumsTeamColumns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "team_penalties_2015", seasonCSV)

	table, err := NewCSVStore(dir).SeasonTable(context.Background(), "2015")
	if err != nil {
		t.Fatalf("failed to load season table: %v", err)
	}
	if table.Season != "2015" {
		t.Fatalf("unexpected season %s", table.Season)
	}
	if diff := cmp.Diff([]string{"slashing", "sticking", "total"}, table.Columns); diff != "" {
		t.Fatalf("unexpected columns (-want +got):\n%s", diff)
	}

	ana, ok := table.Row("ANA")
	if !ok {
		t.Fatalf("expected ANA row")
	}
	if ana.Count("slashing") != 3 || ana.Count("sticking") != 1 || ana.Count("total") != 4 {
		t.Fatalf("unexpected ANA counts %+v", ana.Counts)
	}
	tor, _ := table.Row("TOR")
	if tor.Count("slashing") != 4 || tor.Count("sticking") != 3 || tor.Count("total") != 7 {
		t.Fatalf("unexpected TOR counts %+v", tor.Counts)
	}
	if _, ok := table.Row("tor"); ok {
		t.Fatalf("expected case-sensitive team lookup")
	}
}

func TestCSVStoreAcceptsCSVSuffixAndUnnamedIndex(t *testing.T) {
	dir := t.TempDir()
	body := "Unnamed: 0_level_0,BOS,BOS\nUnnamed: 0_level_1,fighting,total\n0,5,5\n"
	writeFile(t, dir, "team_penalties_2017.csv", body)

	table, err := NewCSVStore(dir).SeasonTable(context.Background(), "2017")
	if err != nil {
		t.Fatalf("failed to load season table: %v", err)
	}
	if len(table.Rows) != 1 || table.Rows[0].Team != "BOS" {
		t.Fatalf("expected only BOS row, got %+v", table.Rows)
	}
	if table.Rows[0].Count("fighting") != 5 {
		t.Fatalf("unexpected counts %+v", table.Rows[0].Counts)
	}
}

func TestCSVStoreSeasonTableMissing(t *testing.T) {
	store := NewCSVStore(t.TempDir())
	if _, err := store.SeasonTable(context.Background(), "2016"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.SeasonTable(context.Background(), "../x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for malformed season, got %v", err)
	}
	var nilStore *CSVStore
	if _, err := nilStore.SeasonTable(context.Background(), "2016"); err == nil {
		t.Fatalf("expected error for nil store")
	}
}

func TestCSVStoreSeasonTableRejectsBadCounts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "team_penalties_2015", ",ANA\n,slashing\n0,lots\n")

	_, err := NewCSVStore(dir).SeasonTable(context.Background(), "2015")
	if err == nil || !strings.Contains(err.Error(), "invalid count") {
		t.Fatalf("expected invalid count error, got %v", err)
	}
}

func TestCSVStoreHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewCSVStore(t.TempDir()).SeasonTable(ctx, "2015"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context canceled, got %v", err)
	}
}

func TestCSVStoreLeagueTotals(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "yearly_penalty_totals", leagueCSV)

	totals, err := NewCSVStore(dir).LeagueTotals(context.Background())
	if err != nil {
		t.Fatalf("failed to load league totals: %v", err)
	}
	if diff := cmp.Diff([]string{"slashing", "hooking", "sticking"}, totals.Columns); diff != "" {
		t.Fatalf("unexpected columns (-want +got):\n%s", diff)
	}
	got, ok := totals.Season("2013")
	if !ok {
		t.Fatalf("expected 2013 row")
	}
	if diff := cmp.Diff([]int{120, 80, 55}, got); diff != "" {
		t.Fatalf("unexpected 2013 counts (-want +got):\n%s", diff)
	}
	if _, ok := totals.Season("2014"); ok {
		t.Fatalf("expected no 2014 row")
	}
}

func TestCSVStoreLeagueTotalsErrors(t *testing.T) {
	dir := t.TempDir()
	store := NewCSVStore(dir)
	if _, err := store.LeagueTotals(context.Background()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	writeFile(t, dir, "yearly_penalty_totals", "slashing,hooking\n1,2\n")
	if _, err := store.LeagueTotals(context.Background()); err == nil {
		t.Fatalf("expected missing Year column error")
	}
}

func TestParseCount(t *testing.T) {
	cases := map[string]int{"": 0, "7": 7, "7.0": 7, " 3 ": 3, "nan": 0}
	for raw, want := range cases {
		got, err := parseCount(raw)
		if err != nil || got != want {
			t.Fatalf("parseCount(%q) = %d, %v; want %d", raw, got, err, want)
		}
	}
	if _, err := parseCount("x"); err == nil {
		t.Fatalf("expected error for non-numeric count")
	}
}

func TestParseCountRejectsOutOfRangeValues(t *testing.T) {
	for _, raw := range []string{"inf", "-Inf", "+Infinity", "1e300", "1e19", "-1e19", "NaN1"} {
		if got, err := parseCount(raw); err == nil {
			t.Fatalf("parseCount(%q) = %d, expected out of range error", raw, got)
		}
	}
}
