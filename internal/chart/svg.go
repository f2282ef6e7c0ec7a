package chart

import (
	"io"
	"sort"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/preston-bernstein/nhl-penalty-service/internal/domain/teams"
)

const (
	svgHeight     = 480
	svgMinWidth   = 800
	svgBarWidth   = 18
	svgBarSpacing = 6
	svgPadding    = 140
)

// palette mirrors Plotly's default trace colours.
var palette = []drawing.Color{
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("2ca02c"),
	drawing.ColorFromHex("d62728"),
	drawing.ColorFromHex("9467bd"),
	drawing.ColorFromHex("8c564b"),
	drawing.ColorFromHex("e377c2"),
	drawing.ColorFromHex("7f7f7f"),
	drawing.ColorFromHex("bcbd22"),
	drawing.ColorFromHex("17becf"),
}

// bar is one drawn bar of a grouped layout.
type bar struct {
	label string
	trace int
	value int
}

// groupBars lays bars out category by category, one bar per trace, in
// first-seen category order. When several traces share team categories the
// groups follow catalog order instead, since first-seen order depends on which
// teams the first season happened to include. A trace without a category gets
// a zero bar so every group keeps the same slots. Only the first bar of a
// group is labeled.
func groupBars(spec Spec) []bar {
	var categories []string
	seen := make(map[string]bool)
	values := make([]map[string]int, len(spec.Data))
	for i, tr := range spec.Data {
		values[i] = make(map[string]int, len(tr.X))
		for j, cat := range tr.X {
			if j < len(tr.Y) {
				values[i][cat] = tr.Y[j]
			}
			if !seen[cat] {
				seen[cat] = true
				categories = append(categories, cat)
			}
		}
	}

	if len(spec.Data) > 1 {
		orderByTeam(categories)
	}

	out := make([]bar, 0, len(categories)*len(spec.Data))
	for _, cat := range categories {
		for i := range spec.Data {
			label := ""
			if i == 0 {
				label = cat
			}
			out = append(out, bar{label: label, trace: i, value: values[i][cat]})
		}
	}
	return out
}

// orderByTeam sorts categories by catalog position when every one of them is
// a team abbreviation, and leaves them untouched otherwise.
func orderByTeam(categories []string) {
	rank := make(map[string]int)
	for i, abbr := range teams.Abbreviations() {
		rank[abbr] = i
	}
	for _, cat := range categories {
		if _, ok := rank[cat]; !ok {
			return
		}
	}
	sort.SliceStable(categories, func(a, b int) bool { return rank[categories[a]] < rank[categories[b]] })
}

// RenderSVG draws spec as an SVG bar chart.
func RenderSVG(w io.Writer, spec Spec) error {
	bars := groupBars(spec)
	if len(bars) == 0 {
		bars = []bar{{}}
	}

	maxValue := 0
	values := make([]gochart.Value, 0, len(bars))
	for _, b := range bars {
		if b.value > maxValue {
			maxValue = b.value
		}
		color := palette[b.trace%len(palette)]
		values = append(values, gochart.Value{
			Label: b.label,
			Value: float64(b.value),
			Style: gochart.Style{FillColor: color, StrokeColor: color},
		})
	}

	top := float64(maxValue) * 1.1
	if top < 1 {
		top = 1
	}
	width := svgPadding + len(values)*(svgBarWidth+svgBarSpacing)
	if width < svgMinWidth {
		width = svgMinWidth
	}

	bc := gochart.BarChart{
		Title:      svgTitle(spec),
		Width:      width,
		Height:     svgHeight,
		BarWidth:   svgBarWidth,
		BarSpacing: svgBarSpacing,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		YAxis: gochart.YAxis{
			Name:  spec.Layout.YAxis.Title,
			Range: &gochart.ContinuousRange{Min: 0, Max: top},
		},
		Bars: values,
	}
	return bc.Render(gochart.SVG, w)
}

// svgTitle appends series names since bar charts carry no legend.
func svgTitle(spec Spec) string {
	names := make([]string, 0, len(spec.Data))
	for _, tr := range spec.Data {
		if tr.Name != "" {
			names = append(names, tr.Name)
		}
	}
	if len(names) == 0 {
		return spec.Layout.Title
	}
	return spec.Layout.Title + " (" + strings.Join(names, ", ") + ")"
}
