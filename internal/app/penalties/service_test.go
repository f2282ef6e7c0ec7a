package penalties

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/preston-bernstein/nhl-penalty-service/internal/chart"
	"github.com/preston-bernstein/nhl-penalty-service/internal/domain/seasons"
	"github.com/preston-bernstein/nhl-penalty-service/internal/metrics"
	"github.com/preston-bernstein/nhl-penalty-service/internal/tables"
	"github.com/preston-bernstein/nhl-penalty-service/internal/testutil"
)

type errSource struct {
	err error
}

func (s errSource) SeasonTable(context.Context, string) (tables.SeasonTable, error) {
	return tables.SeasonTable{}, s.err
}

func (s errSource) LeagueTotals(context.Context) (tables.LeagueTotals, error) {
	return tables.LeagueTotals{}, s.err
}

func newTestService() (*Service, *metrics.Recorder) {
	rec := metrics.NewRecorder()
	return NewService(testutil.PenaltyStore(), nil, rec), rec
}

func TestAggregateByPenaltyTypeTeam(t *testing.T) {
	svc, _ := newTestService()

	got, err := svc.AggregateByPenaltyType(context.Background(), "TOR", []string{"2016", "2015"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []chart.Series{
		{Name: "2015", Points: []chart.Point{
			{Category: "slashing", Count: 18},
			{Category: "hooking", Count: 17},
			{Category: "tripping", Count: 14},
			{Category: "highsticking", Count: 10},
			{Category: "interference", Count: 9},
			{Category: "roughing", Count: 21},
			{Category: "fighting", Count: 7},
		}},
		{Name: "2016", Points: []chart.Point{
			{Category: "slashing", Count: 19},
			{Category: "hooking", Count: 16},
			{Category: "tripping", Count: 15},
			{Category: "highsticking", Count: 11},
			{Category: "interference", Count: 10},
			{Category: "roughing", Count: 20},
			{Category: "fighting", Count: 3},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected series (-want +got):\n%s", diff)
	}
}

func TestAggregateByPenaltyTypeAcceptsFullName(t *testing.T) {
	svc, _ := newTestService()

	byName, err := svc.AggregateByPenaltyType(context.Background(), "Toronto Maple Leafs", []string{"2015"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	byAbbr, _ := svc.AggregateByPenaltyType(context.Background(), "TOR", []string{"2015"})
	if diff := cmp.Diff(byAbbr, byName); diff != "" {
		t.Fatalf("full name and abbreviation differ:\n%s", diff)
	}
}

func TestAggregateByPenaltyTypeAbsentTeamIsZero(t *testing.T) {
	svc, _ := newTestService()

	got, err := svc.AggregateByPenaltyType(context.Background(), "ARI", []string{"2016"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || len(got[0].Points) != 7 {
		t.Fatalf("expected one series with 7 categories, got %+v", got)
	}
	for _, p := range got[0].Points {
		if p.Count != 0 {
			t.Fatalf("expected zero counts for absent team, got %+v", p)
		}
	}
}

func TestAggregateByPenaltyTypeLeagueLockout(t *testing.T) {
	svc, _ := newTestService()

	got, err := svc.AggregateByPenaltyType(context.Background(), "NHL", []string{"2013"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "2013 - Lockout" {
		t.Fatalf("expected lockout series, got %+v", got)
	}
	want := []int{400, 300, 250, 150, 120, 500, 280}
	if diff := cmp.Diff(want, got[0].Counts()); diff != "" {
		t.Fatalf("unexpected league counts (-want +got):\n%s", diff)
	}
	if got[0].Points[3].Category != "highsticking" {
		t.Fatalf("expected relabeled category, got %s", got[0].Points[3].Category)
	}
}

func TestAggregateByPenaltyTypeLeagueIgnoresTeamTables(t *testing.T) {
	store := testutil.PenaltyStore()
	store.SetSeasonTable(testutil.SeasonTable("2015", map[string][7]int{
		"BOS": {9999, 9999, 9999, 9999, 9999, 9999, 9999},
	}))
	svc := NewService(store, nil, nil)

	league, err := svc.AggregateByPenaltyType(context.Background(), "NHL", []string{"2015"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]int{700, 520, 480, 300, 260, 900, 340}, league[0].Counts()); diff != "" {
		t.Fatalf("league totals must come from the league table (-want +got):\n%s", diff)
	}

	team, _ := svc.AggregateByPenaltyType(context.Background(), "BOS", []string{"2015"})
	if cmp.Equal(team[0].Counts(), league[0].Counts()) {
		t.Fatalf("expected team and league counts to differ")
	}
}

func TestAggregateByPenaltyTypeErrors(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.AggregateByPenaltyType(ctx, "TOR", nil); !IsEmptySelection(err) {
		t.Fatalf("expected empty selection, got %v", err)
	}
	if _, err := svc.AggregateByPenaltyType(ctx, "TOR", []string{" ", ""}); !IsEmptySelection(err) {
		t.Fatalf("expected empty selection for blank ids, got %v", err)
	}
	if _, err := svc.AggregateByPenaltyType(ctx, "XYZ", []string{"2015"}); !IsUnknownTeam(err) {
		t.Fatalf("expected unknown team, got %v", err)
	}

	_, err := svc.AggregateByPenaltyType(ctx, "TOR", []string{"2015", "2018"})
	md, ok := AsMissingData(err)
	if !ok || md.Season != "2018" || md.Table != tableSeason {
		t.Fatalf("expected missing 2018 season table, got %v", err)
	}

	_, err = svc.AggregateByPenaltyType(ctx, "NHL", []string{"2017"})
	md, ok = AsMissingData(err)
	if !ok || md.Season != "2017" || md.Table != tableLeague {
		t.Fatalf("expected missing league row, got %v", err)
	}

	_, err = svc.AggregateByPenaltyType(ctx, "TOR", []string{"15"})
	if _, ok := AsMissingData(err); !ok || !errors.Is(err, seasons.ErrInvalid) {
		t.Fatalf("expected invalid season to be missing data, got %v", err)
	}
}

func TestAggregateByPenaltyTypeMissingLeagueTable(t *testing.T) {
	store := tables.NewMemoryStore()
	svc := NewService(store, nil, nil)

	_, err := svc.AggregateByPenaltyType(context.Background(), "NHL", []string{"2016", "2015"})
	md, ok := AsMissingData(err)
	if !ok || md.Season != "2015" || md.Table != tableLeague {
		t.Fatalf("expected missing league table, got %v", err)
	}
}

func TestAggregateStorageFailureIsNotMissingData(t *testing.T) {
	boom := errors.New("disk on fire")
	svc := NewService(errSource{err: boom}, nil, nil)

	_, err := svc.AggregateByTeam(context.Background(), "fighting", []string{"2015"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected storage error to be wrapped, got %v", err)
	}
	if _, ok := AsMissingData(err); ok {
		t.Fatalf("storage failure must not be reported as missing data")
	}
}

func TestAggregateByTeamSingleSeasonRanksDescending(t *testing.T) {
	svc, _ := newTestService()

	got, err := svc.AggregateByTeam(context.Background(), "fighting", []string{"2015"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []chart.Series{{Name: "2015", Points: []chart.Point{
		{Category: "BOS", Count: 12},
		{Category: "MTL", Count: 12},
		{Category: "TOR", Count: 7},
	}}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected series (-want +got):\n%s", diff)
	}
}

func TestAggregateByTeamMultiSeasonKeepsAlphabeticalOrder(t *testing.T) {
	svc, _ := newTestService()

	got, err := svc.AggregateByTeam(context.Background(), "fighting", []string{"2016", "2015"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Name != "2015" || got[1].Name != "2016" {
		t.Fatalf("expected ascending seasons, got %+v", got)
	}
	for _, s := range got {
		if diff := cmp.Diff([]string{"BOS", "MTL", "TOR"}, s.Categories()); diff != "" {
			t.Fatalf("season %s not alphabetical (-want +got):\n%s", s.Name, diff)
		}
	}
	if diff := cmp.Diff([]int{5, 8, 3}, got[1].Counts()); diff != "" {
		t.Fatalf("unexpected 2016 counts (-want +got):\n%s", diff)
	}
}

func TestAggregateByTeamFiltersZeroCountsPerSeason(t *testing.T) {
	store := tables.NewMemoryStore()
	store.SetSeasonTable(testutil.SeasonTable("2015", map[string][7]int{
		"BOS": {20, 15, 11, 9, 8, 25, 12},
		"TOR": {18, 17, 14, 10, 9, 21, 7},
		"ARI": {11, 9, 10, 6, 5, 14, 0},
	}))
	store.SetSeasonTable(testutil.SeasonTable("2016", map[string][7]int{
		"BOS": {22, 13, 12, 8, 7, 24, 0},
		"TOR": {19, 16, 15, 11, 10, 20, 3},
		"ARI": {12, 8, 9, 7, 6, 15, 4},
	}))
	svc := NewService(store, nil, nil)

	got, err := svc.AggregateByTeam(context.Background(), "fighting", []string{"2015", "2016"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []chart.Series{
		{Name: "2015", Points: []chart.Point{{Category: "BOS", Count: 12}, {Category: "TOR", Count: 7}}},
		{Name: "2016", Points: []chart.Point{{Category: "ARI", Count: 4}, {Category: "TOR", Count: 3}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected series (-want +got):\n%s", diff)
	}

	spec, err := svc.PenaltyChart(context.Background(), "fighting", []string{"2015", "2016"})
	if err != nil {
		t.Fatalf("unexpected chart error: %v", err)
	}
	if diff := cmp.Diff([]string{"BOS", "TOR"}, spec.Data[0].X); diff != "" {
		t.Fatalf("unexpected 2015 trace categories (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"ARI", "TOR"}, spec.Data[1].X); diff != "" {
		t.Fatalf("unexpected 2016 trace categories (-want +got):\n%s", diff)
	}
}

func TestAggregateByTeamAcceptsDisplayName(t *testing.T) {
	svc, _ := newTestService()

	got, err := svc.AggregateByTeam(context.Background(), "highsticking", []string{"2013"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Name != "2013 - Lockout" {
		t.Fatalf("expected lockout series name, got %s", got[0].Name)
	}
	if diff := cmp.Diff([]string{"BOS", "TOR"}, got[0].Categories()); diff != "" {
		t.Fatalf("unexpected categories (-want +got):\n%s", diff)
	}
}

func TestAggregateByTeamErrors(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.AggregateByTeam(ctx, "boarding", []string{"2015"}); !IsUnknownPenalty(err) {
		t.Fatalf("expected unknown penalty, got %v", err)
	}
	if _, err := svc.AggregateByTeam(ctx, "total", []string{"2015"}); !IsUnknownPenalty(err) {
		t.Fatalf("expected total to be rejected, got %v", err)
	}
	if _, err := svc.AggregateByTeam(ctx, "fighting", []string{}); !IsEmptySelection(err) {
		t.Fatalf("expected empty selection, got %v", err)
	}
	if _, err := svc.AggregateByTeam(ctx, "fighting", []string{"2009"}); err == nil {
		t.Fatalf("expected missing season error")
	}
}

func TestAggregationIsIdempotent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first, err := svc.AggregateByTeam(ctx, "roughing", []string{"2015", "2016"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, _ := svc.AggregateByTeam(ctx, "roughing", []string{"2016", "2015", "2016"})
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("expected identical results (-first +second):\n%s", diff)
	}
}

func TestChartsBuildSpecs(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	team, err := svc.TeamChart(ctx, "NHL", []string{"2015", "2016"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if team.Layout.Title != "Penalty Calls - NHL" || len(team.Data) != 2 {
		t.Fatalf("unexpected team chart %+v", team.Layout)
	}
	if team.Data[0].TextPosition != "auto" || team.Data[0].HoverInfo != "none" {
		t.Fatalf("expected value labels on team chart, got %+v", team.Data[0])
	}
	if team.Layout.XAxis.Title != chart.AxisPenalty {
		t.Fatalf("unexpected x axis %q", team.Layout.XAxis.Title)
	}

	penalty, err := svc.PenaltyChart(ctx, "sticking", []string{"2015"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if penalty.Layout.Title != "Highsticking Calls per Team" {
		t.Fatalf("unexpected penalty chart title %q", penalty.Layout.Title)
	}
	if penalty.Data[0].Text != nil || penalty.Layout.XAxis.Title != chart.AxisTeam {
		t.Fatalf("unexpected penalty chart %+v", penalty)
	}

	if _, err := svc.TeamChart(ctx, "XYZ", []string{"2015"}); !IsUnknownTeam(err) {
		t.Fatalf("expected unknown team, got %v", err)
	}
	if _, err := svc.PenaltyChart(ctx, "fighting", nil); !IsEmptySelection(err) {
		t.Fatalf("expected empty selection, got %v", err)
	}
}

func TestAggregationRecordsMetrics(t *testing.T) {
	svc, rec := newTestService()
	ctx := context.Background()

	_, _ = svc.AggregateByTeam(ctx, "fighting", []string{"2015"})
	_, _ = svc.AggregateByTeam(ctx, "boarding", []string{"2015"})
	svc.now = testutil.StepClock(time.Date(2016, 4, 10, 0, 0, 0, 0, time.UTC), 40*time.Millisecond)
	_, _ = svc.AggregateByPenaltyType(ctx, "TOR", []string{"2015"})

	byTeam := rec.Aggregations(KindByTeam)
	if byTeam.Calls != 2 || byTeam.Errors != 1 {
		t.Fatalf("unexpected by-team stats %+v", byTeam)
	}
	if got := rec.Aggregations(KindByPenaltyType); got.Calls != 1 || got.Errors != 0 || got.LastLatency != 40*time.Millisecond {
		t.Fatalf("unexpected by-penalty-type stats %+v", got)
	}
}
