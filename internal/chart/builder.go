package chart

import "strconv"

const traceTypeBar = "bar"

type options struct {
	valueLabels bool
}

// Option customizes BuildGroupedBarChart.
type Option func(*options)

// WithValueLabels prints each bar's count on the bar and disables hover text.
func WithValueLabels() Option {
	return func(o *options) { o.valueLabels = true }
}

// BuildGroupedBarChart turns series into a grouped bar chart, one trace per series.
func BuildGroupedBarChart(series []Series, title, xAxisTitle, yAxisTitle string, opts ...Option) Spec {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	traces := make([]Trace, 0, len(series))
	for _, s := range series {
		trace := Trace{
			Type: traceTypeBar,
			Name: s.Name,
			X:    s.Categories(),
			Y:    s.Counts(),
		}
		if o.valueLabels {
			trace.Text = make([]string, 0, len(s.Points))
			for _, p := range s.Points {
				trace.Text = append(trace.Text, strconv.Itoa(p.Count))
			}
			trace.TextPosition = "auto"
			trace.HoverInfo = "none"
		}
		traces = append(traces, trace)
	}

	return Spec{
		Data: traces,
		Layout: Layout{
			Title:   title,
			BarMode: BarModeGroup,
			XAxis:   styledAxis(xAxisTitle),
			YAxis:   styledAxis(yAxisTitle),
		},
	}
}

// styledAxis applies the dashboard's fixed axis look: gridlines and a
// mirrored 2px black border.
func styledAxis(title string) Axis {
	return Axis{
		Title:     title,
		ShowGrid:  true,
		LineColor: "black",
		LineWidth: 2,
		Mirror:    true,
	}
}
