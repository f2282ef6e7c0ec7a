package penalties

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/nhl-penalty-service/internal/chart"
	domainpenalties "github.com/preston-bernstein/nhl-penalty-service/internal/domain/penalties"
	"github.com/preston-bernstein/nhl-penalty-service/internal/domain/seasons"
	"github.com/preston-bernstein/nhl-penalty-service/internal/domain/teams"
	"github.com/preston-bernstein/nhl-penalty-service/internal/logging"
	"github.com/preston-bernstein/nhl-penalty-service/internal/metrics"
	"github.com/preston-bernstein/nhl-penalty-service/internal/tables"
)

// Aggregation kinds used in logs and metrics.
const (
	KindByPenaltyType = "by_penalty_type"
	KindByTeam        = "by_team"
)

const (
	tableSeason = "team penalties"
	tableLeague = "league totals"

	maxConcurrentLoads = 4
)

// Service aggregates penalty counts from a tables.Source into chart series.
// It holds no per-request state.
type Service struct {
	source  tables.Source
	logger  *slog.Logger
	metrics *metrics.Recorder
	now     func() time.Time
}

// NewService constructs a Service reading from source.
func NewService(source tables.Source, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	return &Service{
		source:  source,
		logger:  logger,
		metrics: recorder,
		now:     time.Now,
	}
}

// AggregateByPenaltyType returns one series per season with a team's (or
// the league's) count for every penalty column, in the table's column order.
func (s *Service) AggregateByPenaltyType(ctx context.Context, teamSelector string, seasonIDs []string) (series []chart.Series, err error) {
	defer s.observe(ctx, KindByPenaltyType, s.now(), &err,
		slog.String(logging.FieldTeam, teamSelector),
		slog.Any(logging.FieldSeasons, seasonIDs))

	ids, err := normalizeSeasons(seasonIDs)
	if err != nil {
		return nil, err
	}
	sel, ok := teams.Resolve(teamSelector)
	if !ok {
		return nil, &UnknownTeamError{Selector: teamSelector}
	}
	if sel.League {
		return s.leagueBreakdown(ctx, ids)
	}

	seasonTables, err := s.loadSeasons(ctx, ids)
	if err != nil {
		return nil, err
	}
	series = make([]chart.Series, 0, len(ids))
	for i, id := range ids {
		series = append(series, teamBreakdown(seasonTables[i], id, sel.Abbreviation))
	}
	return series, nil
}

// teamBreakdown reads a team's row. A team absent from the season's table
// (not yet founded, relocated) yields zero counts for every column.
func teamBreakdown(table tables.SeasonTable, season, team string) chart.Series {
	row, _ := table.Row(team)
	points := make([]chart.Point, 0, len(table.Columns))
	for _, col := range table.Columns {
		if col == domainpenalties.TotalColumn {
			continue
		}
		points = append(points, chart.Point{
			Category: domainpenalties.DisplayName(col),
			Count:    row.Count(col),
		})
	}
	return chart.Series{Name: seasons.SeriesName(season), Points: points}
}

// leagueBreakdown reads pre-aggregated league totals; team tables are never summed.
func (s *Service) leagueBreakdown(ctx context.Context, ids []string) ([]chart.Series, error) {
	totals, err := s.source.LeagueTotals(ctx)
	if err != nil {
		return nil, loadError(ids[0], tableLeague, err)
	}

	series := make([]chart.Series, 0, len(ids))
	for _, id := range ids {
		counts, ok := totals.Season(id)
		if !ok {
			return nil, &MissingDataError{Season: id, Table: tableLeague, Err: tables.ErrNotFound}
		}
		points := make([]chart.Point, 0, len(totals.Columns))
		for i, col := range totals.Columns {
			if col == domainpenalties.TotalColumn {
				continue
			}
			n := 0
			if i < len(counts) {
				n = counts[i]
			}
			points = append(points, chart.Point{Category: domainpenalties.DisplayName(col), Count: n})
		}
		series = append(series, chart.Series{Name: seasons.SeriesName(id), Points: points})
	}
	return series, nil
}

// AggregateByTeam returns one series per season with every team's count for
// a penalty type. Teams with zero calls are dropped.
//
// Category order depends on how many seasons are selected. A single season
// is a ranking, so teams are sorted by count descending. Several seasons are
// compared side by side, so every series keeps the catalog's alphabetical
// order and a team occupies the same slot in each.
func (s *Service) AggregateByTeam(ctx context.Context, penalty string, seasonIDs []string) (series []chart.Series, err error) {
	defer s.observe(ctx, KindByTeam, s.now(), &err,
		slog.String(logging.FieldPenalty, penalty),
		slog.Any(logging.FieldSeasons, seasonIDs))

	ids, err := normalizeSeasons(seasonIDs)
	if err != nil {
		return nil, err
	}
	pt, ok := domainpenalties.Parse(penalty)
	if !ok {
		return nil, &UnknownPenaltyError{Penalty: penalty}
	}

	seasonTables, err := s.loadSeasons(ctx, ids)
	if err != nil {
		return nil, err
	}

	abbrs := teams.Abbreviations()
	rankBySeason := len(ids) == 1
	series = make([]chart.Series, 0, len(ids))
	for i, id := range ids {
		points := make([]chart.Point, 0, len(abbrs))
		for _, abbr := range abbrs {
			row, _ := seasonTables[i].Row(abbr)
			n := row.Count(string(pt))
			if n == 0 {
				continue
			}
			points = append(points, chart.Point{Category: abbr, Count: n})
		}
		if rankBySeason {
			sort.SliceStable(points, func(a, b int) bool { return points[a].Count > points[b].Count })
		}
		series = append(series, chart.Series{Name: seasons.SeriesName(id), Points: points})
	}
	return series, nil
}

// TeamChart aggregates by penalty type and builds the labeled team chart.
func (s *Service) TeamChart(ctx context.Context, teamSelector string, seasonIDs []string) (chart.Spec, error) {
	series, err := s.AggregateByPenaltyType(ctx, teamSelector, seasonIDs)
	if err != nil {
		return chart.Spec{}, err
	}
	sel, _ := teams.Resolve(teamSelector)
	title := "Penalty Calls - " + sel.Abbreviation
	return chart.BuildGroupedBarChart(series, title, chart.AxisPenalty, chart.AxisCalls, chart.WithValueLabels()), nil
}

// PenaltyChart aggregates by team and builds the per-team chart without value labels.
func (s *Service) PenaltyChart(ctx context.Context, penalty string, seasonIDs []string) (chart.Spec, error) {
	series, err := s.AggregateByTeam(ctx, penalty, seasonIDs)
	if err != nil {
		return chart.Spec{}, err
	}
	pt, _ := domainpenalties.Parse(penalty)
	title := pt.Title() + " Calls per Team"
	return chart.BuildGroupedBarChart(series, title, chart.AxisTeam, chart.AxisCalls), nil
}

// loadSeasons fetches the season tables concurrently and returns them in ids
// order. The first failure cancels the remaining loads.
func (s *Service) loadSeasons(ctx context.Context, ids []string) ([]tables.SeasonTable, error) {
	out := make([]tables.SeasonTable, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)
	for i, id := range ids {
		g.Go(func() error {
			table, err := s.source.SeasonTable(gctx, id)
			if err != nil {
				return loadError(id, tableSeason, err)
			}
			out[i] = table
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func normalizeSeasons(ids []string) ([]string, error) {
	normalized, err := seasons.Normalize(ids)
	if err != nil {
		return nil, &MissingDataError{Season: strings.Join(ids, ","), Table: tableSeason, Err: err}
	}
	if len(normalized) == 0 {
		return nil, &EmptySelectionError{Field: "seasons"}
	}
	return normalized, nil
}

func loadError(season, table string, err error) error {
	if errors.Is(err, tables.ErrNotFound) {
		return &MissingDataError{Season: season, Table: table, Err: err}
	}
	return fmt.Errorf("load %s for season %s: %w", table, season, err)
}

func (s *Service) observe(ctx context.Context, kind string, start time.Time, errp *error, args ...any) {
	err := *errp
	duration := s.now().Sub(start)
	s.metrics.RecordAggregation(kind, duration, err)

	logger := logging.FromContext(ctx, s.logger)
	args = append(args,
		slog.String("kind", kind),
		slog.Int64(logging.FieldDurationMS, duration.Milliseconds()),
	)
	if err != nil {
		logging.Debug(logger, "aggregation rejected", append(args, "error", err)...)
		return
	}
	logging.Debug(logger, "aggregation complete", args...)
}
