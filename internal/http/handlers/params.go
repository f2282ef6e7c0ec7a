package handlers

import (
	"net/http"
	"strings"
)

const (
	paramTeam    = "team"
	paramPenalty = "penalty"
	paramSeason  = "season"
	paramSeasons = "seasons"
)

// seasonsFromQuery collects repeated season params and comma-separated seasons params.
func seasonsFromQuery(r *http.Request) []string {
	q := r.URL.Query()
	out := append([]string(nil), q[paramSeason]...)
	for _, raw := range q[paramSeasons] {
		out = append(out, strings.Split(raw, ",")...)
	}
	return out
}

func trimmedParam(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}
