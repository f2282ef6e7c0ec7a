package handlers

import (
	nethttp "net/http"
	"net/url"

	"github.com/a-h/templ"

	domainpenalties "github.com/preston-bernstein/nhl-penalty-service/internal/domain/penalties"
	"github.com/preston-bernstein/nhl-penalty-service/internal/domain/seasons"
	"github.com/preston-bernstein/nhl-penalty-service/internal/domain/teams"
	"github.com/preston-bernstein/nhl-penalty-service/internal/http/views"
)

const dashboardIntro = "Penalty calls by team, season and penalty type. " +
	"Pick a team (or the whole league) to compare penalty types, or a penalty type to compare teams."

// Dashboard serves the HTML page. One form drives both charts, so a link
// reproduces the whole view.
func (h *Handler) Dashboard(w nethttp.ResponseWriter, r *nethttp.Request) {
	selected := seasonsFromQuery(r)
	team := trimmedParam(r, paramTeam)
	penalty := trimmedParam(r, paramPenalty)

	data := views.DashboardData{
		Title:  "NHL Penalty Calls",
		Intro:  dashboardIntro,
		Action: "/",
		Dropdowns: []views.Dropdown{
			{Name: paramTeam, Label: "Team", Options: teamOptions(), Selected: []string{team}},
			{Name: paramPenalty, Label: "Penalty", Options: penaltyOptions(), Selected: []string{penalty}},
			{Name: paramSeason, Label: "Seasons", Multiple: true, Options: seasonOptions(), Selected: selected},
		},
		Panels: []views.Panel{
			{
				Heading:  "Penalty calls by type",
				ChartURL: views.ChartURL("/charts/teams.svg", chartQuery(paramTeam, team, selected)),
			},
			{
				Heading:  "Penalty calls per team",
				ChartURL: views.ChartURL("/charts/penalties.svg", chartQuery(paramPenalty, penalty, selected)),
			},
		},
	}

	templ.Handler(views.Dashboard(data)).ServeHTTP(w, r)
}

func chartQuery(key, value string, selected []string) url.Values {
	values := url.Values{}
	if value != "" {
		values.Set(key, value)
	}
	for _, s := range selected {
		values.Add(paramSeason, s)
	}
	return values
}

func teamOptions() []views.Option {
	opts := teams.Options()
	out := make([]views.Option, 0, len(opts))
	for _, o := range opts {
		out = append(out, views.Option{Value: o.Value, Label: o.Label})
	}
	return out
}

func seasonOptions() []views.Option {
	all := seasons.All()
	out := make([]views.Option, 0, len(all))
	for _, s := range all {
		out = append(out, views.Option{Value: s.ID, Label: s.Label})
	}
	return out
}

func penaltyOptions() []views.Option {
	opts := domainpenalties.Options()
	out := make([]views.Option, 0, len(opts))
	for _, o := range opts {
		out = append(out, views.Option{Value: o.Value, Label: o.Label})
	}
	return out
}
