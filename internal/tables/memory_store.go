package tables

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore keeps penalty tables in memory. Reads return copies, so
// callers never share state with the store.
type MemoryStore struct {
	mu      sync.RWMutex
	seasons map[string]SeasonTable
	league  *LeagueTotals
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		seasons: make(map[string]SeasonTable),
	}
}

// SeasonTable returns a copy of the stored table for season.
func (s *MemoryStore) SeasonTable(ctx context.Context, season string) (SeasonTable, error) {
	if err := ctx.Err(); err != nil {
		return SeasonTable{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.seasons[season]
	if !ok {
		return SeasonTable{}, fmt.Errorf("%w: season %s", ErrNotFound, season)
	}
	return t.Clone(), nil
}

// LeagueTotals returns a copy of the stored league totals.
func (s *MemoryStore) LeagueTotals(ctx context.Context) (LeagueTotals, error) {
	if err := ctx.Err(); err != nil {
		return LeagueTotals{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.league == nil {
		return LeagueTotals{}, fmt.Errorf("%w: league totals", ErrNotFound)
	}
	return s.league.Clone(), nil
}

// SetSeasonTable stores a copy of table under its season id.
func (s *MemoryStore) SetSeasonTable(table SeasonTable) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seasons[table.Season] = table.Clone()
}

// SetLeagueTotals stores a copy of the league totals.
func (s *MemoryStore) SetLeagueTotals(totals LeagueTotals) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := totals.Clone()
	s.league = &clone
}
