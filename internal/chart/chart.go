// Package chart builds declarative grouped bar chart descriptions. The JSON
// shape follows Plotly's figure layout so a browser can render it directly.
package chart

// Point is one bar: a category and its count.
type Point struct {
	Category string `json:"category" yaml:"category"`
	Count    int    `json:"count" yaml:"count"`
}

// Series is one bar series, typically one season.
type Series struct {
	Name   string  `json:"name" yaml:"name"`
	Points []Point `json:"points" yaml:"points"`
}

// Categories returns the category labels in series order.
func (s Series) Categories() []string {
	out := make([]string, 0, len(s.Points))
	for _, p := range s.Points {
		out = append(out, p.Category)
	}
	return out
}

// Counts returns the counts in series order.
func (s Series) Counts() []int {
	out := make([]int, 0, len(s.Points))
	for _, p := range s.Points {
		out = append(out, p.Count)
	}
	return out
}

// BarMode controls how multiple traces share a category.
type BarMode string

// BarModeGroup places bars side by side rather than stacked.
const BarModeGroup BarMode = "group"

// Axis is a chart axis with its fixed styling.
type Axis struct {
	Title     string `json:"title" yaml:"title"`
	ShowGrid  bool   `json:"showgrid" yaml:"showgrid"`
	LineColor string `json:"linecolor" yaml:"linecolor"`
	LineWidth int    `json:"linewidth" yaml:"linewidth"`
	Mirror    bool   `json:"mirror" yaml:"mirror"`
}

// Trace is one rendered bar series.
type Trace struct {
	Type         string   `json:"type" yaml:"type"`
	Name         string   `json:"name,omitempty" yaml:"name,omitempty"`
	X            []string `json:"x" yaml:"x"`
	Y            []int    `json:"y" yaml:"y"`
	Text         []string `json:"text,omitempty" yaml:"text,omitempty"`
	TextPosition string   `json:"textposition,omitempty" yaml:"textposition,omitempty"`
	HoverInfo    string   `json:"hoverinfo,omitempty" yaml:"hoverinfo,omitempty"`
}

// Layout holds the chart title, grouping mode and axes.
type Layout struct {
	Title   string  `json:"title" yaml:"title"`
	BarMode BarMode `json:"barmode,omitempty" yaml:"barmode,omitempty"`
	XAxis   Axis    `json:"xaxis" yaml:"xaxis"`
	YAxis   Axis    `json:"yaxis" yaml:"yaxis"`
}

// Spec is a complete chart description.
type Spec struct {
	Data   []Trace `json:"data" yaml:"data"`
	Layout Layout  `json:"layout" yaml:"layout"`
}
