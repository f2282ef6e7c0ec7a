package chart

import (
	"github.com/preston-bernstein/nhl-penalty-service/internal/domain/penalties"
	"github.com/preston-bernstein/nhl-penalty-service/internal/domain/teams"
)

// Axis and placeholder titles shared by the dashboard charts.
const (
	AxisPenalty = "Penalty"
	AxisTeam    = "Team"
	AxisCalls   = "Number of Calls"

	placeholderTeamTitle    = "Penalty Calls per Team"
	placeholderPenaltyTitle = "Penalty Calls Each Season"
)

// PlaceholderTeamChart is shown before a team and seasons are selected:
// one zero bar per penalty type.
func PlaceholderTeamChart() Spec {
	categories := make([]string, 0, len(penalties.All()))
	for _, p := range penalties.All() {
		categories = append(categories, penalties.DisplayName(string(p)))
	}
	return placeholder(categories, placeholderTeamTitle, AxisPenalty)
}

// PlaceholderPenaltyChart is shown before a penalty and seasons are
// selected: one zero bar per team.
func PlaceholderPenaltyChart() Spec {
	return placeholder(teams.Abbreviations(), placeholderPenaltyTitle, AxisTeam)
}

func placeholder(categories []string, title, xAxisTitle string) Spec {
	return Spec{
		Data: []Trace{{
			Type: traceTypeBar,
			X:    categories,
			Y:    make([]int, len(categories)),
		}},
		Layout: Layout{
			Title: title,
			XAxis: styledAxis(xAxisTitle),
			YAxis: styledAxis(AxisCalls),
		},
	}
}
