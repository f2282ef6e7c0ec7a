package seasons

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Lockout is the labor-shortened 2012/2013 season.
const Lockout = "2013"

const (
	firstSeason = 2008
	lastSeason  = 2018
)

// ErrInvalid marks a season id that is not a four digit year.
var ErrInvalid = errors.New("invalid season id")

// Season is a selectable NHL season keyed by its ending calendar year.
type Season struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// seriesNameOverrides patches chart series names for seasons that need context.
var seriesNameOverrides = map[string]string{
	Lockout: Lockout + " - Lockout",
}

var catalog = buildCatalog()

func buildCatalog() []Season {
	out := make([]Season, 0, lastSeason-firstSeason+1)
	for year := firstSeason; year <= lastSeason; year++ {
		id := strconv.Itoa(year)
		out = append(out, Season{ID: id, Label: Label(id)})
	}
	return out
}

// All returns the selectable seasons in ascending order.
func All() []Season {
	out := make([]Season, len(catalog))
	copy(out, catalog)
	return out
}

// Label returns the dropdown label, e.g. "2014/2015" for "2015".
func Label(id string) string {
	year, err := strconv.Atoi(id)
	if err != nil || !Valid(id) {
		return id
	}
	return fmt.Sprintf("%d/%d", year-1, year)
}

// SeriesName is the chart series name for a season id.
func SeriesName(id string) string {
	if name, ok := seriesNameOverrides[id]; ok {
		return name
	}
	return id
}

// Valid reports whether id is a four digit year.
func Valid(id string) bool {
	if len(id) != 4 {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Normalize trims, de-duplicates and sorts season ids ascending.
// Blank entries are skipped; malformed ids fail with ErrInvalid.
func Normalize(ids []string) ([]string, error) {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		if !Valid(id) {
			return nil, fmt.Errorf("%w: %q", ErrInvalid, id)
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}
