package penalties

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Type is a tracked penalty category keyed by its source column name.
type Type string

const (
	Slashing     Type = "slashing"
	Hooking      Type = "hooking"
	Tripping     Type = "tripping"
	HighSticking Type = "sticking"
	Interference Type = "interference"
	Roughing     Type = "roughing"
	Fighting     Type = "fighting"
)

// TotalColumn is the precomputed per-team total column found in season tables.
const TotalColumn = "total"

var all = []Type{Slashing, Hooking, Tripping, HighSticking, Interference, Roughing, Fighting}

// displayOverrides relabels source columns that were collected under the wrong name.
// Lookups always use the source key; only the rendered label changes.
var displayOverrides = map[string]string{
	string(HighSticking): "highsticking",
}

// All returns every tracked penalty type in dropdown order.
func All() []Type {
	out := make([]Type, len(all))
	copy(out, all)
	return out
}

// DisplayName returns the label shown for a source column key.
func DisplayName(key string) string {
	if label, ok := displayOverrides[key]; ok {
		return label
	}
	return key
}

// Title returns the capitalized display label, e.g. "Highsticking".
// A cases.Caser keeps state, so each call builds its own.
func (t Type) Title() string {
	return cases.Title(language.English).String(DisplayName(string(t)))
}

// Parse accepts either the source key or the display label of a penalty type.
func Parse(raw string) (Type, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	for _, t := range all {
		if key == string(t) || key == DisplayName(string(t)) {
			return t, true
		}
	}
	return "", false
}

// Option is a dropdown entry for a penalty type.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Options lists the penalty dropdown entries.
func Options() []Option {
	out := make([]Option, 0, len(all))
	for _, t := range all {
		out = append(out, Option{Value: string(t), Label: t.Title()})
	}
	return out
}
