// Package views renders the HTML dashboard. The markup lives in
// dashboard.templ; run `templ generate` after editing it.
package views

import "net/url"

// Option is one <option> of a dropdown.
type Option struct {
	Value string
	Label string
}

// Dropdown is a named select element and its current selection.
type Dropdown struct {
	Name     string
	Label    string
	Multiple bool
	Options  []Option
	Selected []string
}

func (d Dropdown) isSelected(value string) bool {
	for _, s := range d.Selected {
		if s == value {
			return true
		}
	}
	return false
}

// Panel is one rendered chart.
type Panel struct {
	Heading string
	// ChartURL points at the SVG endpoint for the current selection.
	ChartURL string
}

// DashboardData is everything the page needs.
type DashboardData struct {
	Title     string
	Intro     string
	Action    string
	Dropdowns []Dropdown
	Panels    []Panel
}

// ChartURL builds an SVG URL from a path and its query values.
func ChartURL(path string, values url.Values) string {
	if len(values) == 0 {
		return path
	}
	return path + "?" + values.Encode()
}
