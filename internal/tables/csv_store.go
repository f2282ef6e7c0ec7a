package tables

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/preston-bernstein/nhl-penalty-service/internal/domain/seasons"
)

const (
	seasonFilePrefix = "team_penalties_"
	leagueFileName   = "yearly_penalty_totals"
	yearColumn       = "year"
)

// CSVStore reads penalty tables from a directory of CSV exports:
// team_penalties_<season> and yearly_penalty_totals, each with or without a
// .csv suffix.
type CSVStore struct {
	dir string
}

// NewCSVStore constructs a store rooted at dir.
func NewCSVStore(dir string) *CSVStore {
	return &CSVStore{dir: dir}
}

// SeasonTable loads and sums the per-team columns of one season file.
func (s *CSVStore) SeasonTable(ctx context.Context, season string) (SeasonTable, error) {
	if s == nil {
		return SeasonTable{}, errors.New("csv store not configured")
	}
	if err := ctx.Err(); err != nil {
		return SeasonTable{}, err
	}
	if !seasons.Valid(season) {
		return SeasonTable{}, fmt.Errorf("%w: season %q", ErrNotFound, season)
	}

	f, err := s.open(seasonFilePrefix + season)
	if err != nil {
		return SeasonTable{}, err
	}
	defer f.Close()

	table, err := parseSeasonTable(season, f)
	if err != nil {
		return SeasonTable{}, fmt.Errorf("parse %s: %w", f.Name(), err)
	}
	return table, nil
}

// LeagueTotals loads the league-wide yearly totals file.
func (s *CSVStore) LeagueTotals(ctx context.Context) (LeagueTotals, error) {
	if s == nil {
		return LeagueTotals{}, errors.New("csv store not configured")
	}
	if err := ctx.Err(); err != nil {
		return LeagueTotals{}, err
	}

	f, err := s.open(leagueFileName)
	if err != nil {
		return LeagueTotals{}, err
	}
	defer f.Close()

	totals, err := parseLeagueTotals(f)
	if err != nil {
		return LeagueTotals{}, fmt.Errorf("parse %s: %w", f.Name(), err)
	}
	return totals, nil
}

func (s *CSVStore) open(name string) (*os.File, error) {
	for _, candidate := range []string{name, name + ".csv"} {
		f, err := os.Open(filepath.Join(s.dir, candidate))
		if err == nil {
			return f, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, filepath.Join(s.dir, name))
}

// parseSeasonTable reads the two-row header layout: row one names the team,
// row two the column. A leading index column is ignored and every team
// column is summed over the data rows.
func parseSeasonTable(season string, r io.Reader) (SeasonTable, error) {
	records, err := readRecords(r)
	if err != nil {
		return SeasonTable{}, err
	}
	if len(records) < 2 {
		return SeasonTable{}, errors.New("missing header rows")
	}

	type column struct {
		team string
		name string
	}
	top, sub := records[0], records[1]
	cols := make([]column, len(sub))
	current := ""
	for i := range sub {
		team := ""
		if i < len(top) {
			team = strings.TrimSpace(top[i])
		}
		if team == "" && i > 0 && current != "" {
			team = current
		}
		if isIndexHeader(team) {
			current = ""
			continue
		}
		current = team
		cols[i] = column{team: team, name: strings.TrimSpace(sub[i])}
	}

	table := SeasonTable{Season: season}
	rowIndex := make(map[string]int)
	for _, c := range cols {
		if c.team == "" || c.name == "" {
			continue
		}
		idx, ok := rowIndex[c.team]
		if !ok {
			idx = len(table.Rows)
			rowIndex[c.team] = idx
			table.Rows = append(table.Rows, TeamRow{Team: c.team, Counts: make(map[string]int)})
		}
		if idx == 0 {
			table.Columns = append(table.Columns, c.name)
		}
		table.Rows[idx].Counts[c.name] = 0
	}
	if len(table.Rows) == 0 {
		return SeasonTable{}, errors.New("no team columns")
	}

	for line, record := range records[2:] {
		for i, cell := range record {
			if i >= len(cols) || cols[i].team == "" || cols[i].name == "" {
				continue
			}
			n, err := parseCount(cell)
			if err != nil {
				return SeasonTable{}, fmt.Errorf("row %d column %s/%s: %w", line+3, cols[i].team, cols[i].name, err)
			}
			table.Rows[rowIndex[cols[i].team]].Counts[cols[i].name] += n
		}
	}
	return table, nil
}

// parseLeagueTotals reads a Year column plus one column per penalty type.
func parseLeagueTotals(r io.Reader) (LeagueTotals, error) {
	records, err := readRecords(r)
	if err != nil {
		return LeagueTotals{}, err
	}
	if len(records) == 0 {
		return LeagueTotals{}, errors.New("missing header row")
	}

	header := records[0]
	yearIdx := -1
	var valueIdx []int
	totals := LeagueTotals{Seasons: make(map[string][]int)}
	for i, raw := range header {
		name := strings.TrimSpace(raw)
		switch {
		case strings.EqualFold(name, yearColumn):
			yearIdx = i
		case isIndexHeader(name):
		default:
			valueIdx = append(valueIdx, i)
			totals.Columns = append(totals.Columns, name)
		}
	}
	if yearIdx < 0 {
		return LeagueTotals{}, errors.New("missing Year column")
	}

	for line, record := range records[1:] {
		if yearIdx >= len(record) {
			continue
		}
		year, err := parseCount(record[yearIdx])
		if err != nil || year == 0 {
			return LeagueTotals{}, fmt.Errorf("row %d: invalid year %q", line+2, record[yearIdx])
		}
		counts := make([]int, len(valueIdx))
		for j, idx := range valueIdx {
			if idx >= len(record) {
				continue
			}
			n, err := parseCount(record[idx])
			if err != nil {
				return LeagueTotals{}, fmt.Errorf("row %d column %s: %w", line+2, totals.Columns[j], err)
			}
			counts[j] = n
		}
		totals.Seasons[strconv.Itoa(year)] = counts
	}
	return totals, nil
}

func readRecords(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader.ReadAll()
}

// isIndexHeader matches the blank or "Unnamed: N" headers dataframe exports
// write for their index column.
func isIndexHeader(name string) bool {
	return name == "" || strings.HasPrefix(name, "Unnamed")
}

// parseCount accepts integers and integral floats ("3.0"); blanks and NaN
// count as zero. Infinite or out-of-range values are rejected.
func parseCount(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid count %q", raw)
	}
	if math.IsNaN(f) {
		return 0, nil
	}
	if math.IsInf(f, 0) || f >= float64(math.MaxInt) || f < float64(math.MinInt) {
		return 0, fmt.Errorf("count %q out of range", raw)
	}
	return int(math.Round(f)), nil
}
