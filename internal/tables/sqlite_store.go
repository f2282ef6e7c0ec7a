package tables

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver (pure Go)
)

// schema describes the tables SQLiteStore reads. position keeps the natural
// column order of the original exports.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS team_penalties (
		season   TEXT    NOT NULL,
		team     TEXT    NOT NULL,
		penalty  TEXT    NOT NULL,
		count    INTEGER NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (season, team, penalty)
	)`,
	`CREATE TABLE IF NOT EXISTS yearly_penalty_totals (
		season   TEXT    NOT NULL,
		penalty  TEXT    NOT NULL,
		count    INTEGER NOT NULL,
		position INTEGER NOT NULL,
		PRIMARY KEY (season, penalty)
	)`,
}

// SQLiteStore reads penalty tables from a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens the database at path and verifies the connection.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}
	return &SQLiteStore{db: db}, nil
}

// NewSQLiteStore wraps an existing connection.
func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// CreateSchema creates the penalty tables when missing.
func (s *SQLiteStore) CreateSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// Close releases the underlying connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SeasonTable loads every team row stored for a season.
func (s *SQLiteStore) SeasonTable(ctx context.Context, season string) (SeasonTable, error) {
	if s == nil || s.db == nil {
		return SeasonTable{}, errors.New("sqlite store not configured")
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT team, penalty, count FROM team_penalties WHERE season = ? ORDER BY team, position`,
		season)
	if err != nil {
		return SeasonTable{}, fmt.Errorf("query season %s: %w", season, err)
	}
	defer func() { _ = rows.Close() }()

	table := SeasonTable{Season: season}
	rowIndex := make(map[string]int)
	for rows.Next() {
		var team, penalty string
		var count int
		if err := rows.Scan(&team, &penalty, &count); err != nil {
			return SeasonTable{}, fmt.Errorf("scan season %s: %w", season, err)
		}
		idx, ok := rowIndex[team]
		if !ok {
			idx = len(table.Rows)
			rowIndex[team] = idx
			table.Rows = append(table.Rows, TeamRow{Team: team, Counts: make(map[string]int)})
		}
		if idx == 0 {
			table.Columns = append(table.Columns, penalty)
		}
		table.Rows[idx].Counts[penalty] = count
	}
	if err := rows.Err(); err != nil {
		return SeasonTable{}, fmt.Errorf("read season %s: %w", season, err)
	}
	if len(table.Rows) == 0 {
		return SeasonTable{}, fmt.Errorf("%w: season %s", ErrNotFound, season)
	}
	return table, nil
}

// LeagueTotals loads the yearly league totals.
func (s *SQLiteStore) LeagueTotals(ctx context.Context) (LeagueTotals, error) {
	if s == nil || s.db == nil {
		return LeagueTotals{}, errors.New("sqlite store not configured")
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT season, penalty, count FROM yearly_penalty_totals ORDER BY season, position`)
	if err != nil {
		return LeagueTotals{}, fmt.Errorf("query league totals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	// Counts are keyed by penalty name so a season missing a row cannot shift
	// its values against Columns; the missing cell reads as zero, like a blank
	// CSV cell.
	var order []string
	bySeason := make(map[string]map[string]int)
	known := make(map[string]bool)
	for rows.Next() {
		var season, penalty string
		var count int
		if err := rows.Scan(&season, &penalty, &count); err != nil {
			return LeagueTotals{}, fmt.Errorf("scan league totals: %w", err)
		}
		if !known[penalty] {
			known[penalty] = true
			order = append(order, penalty)
		}
		if bySeason[season] == nil {
			bySeason[season] = make(map[string]int)
		}
		bySeason[season][penalty] = count
	}
	if err := rows.Err(); err != nil {
		return LeagueTotals{}, fmt.Errorf("read league totals: %w", err)
	}
	if len(bySeason) == 0 {
		return LeagueTotals{}, fmt.Errorf("%w: league totals", ErrNotFound)
	}

	totals := LeagueTotals{Columns: order, Seasons: make(map[string][]int, len(bySeason))}
	for season, counts := range bySeason {
		aligned := make([]int, len(order))
		for i, penalty := range order {
			aligned[i] = counts[penalty]
		}
		totals.Seasons[season] = aligned
	}
	return totals, nil
}
