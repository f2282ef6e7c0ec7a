package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/preston-bernstein/nhl-penalty-service/internal/http/handlers"
	"github.com/preston-bernstein/nhl-penalty-service/internal/http/middleware"
	"github.com/preston-bernstein/nhl-penalty-service/internal/metrics"
)

// NewRouter registers HTTP routes on a chi router. Only GET and HEAD are served.
func NewRouter(handler *handlers.Handler, logger *slog.Logger, recorder *metrics.Recorder) nethttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Middleware(logger, recorder))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.GetHead)

	r.Get("/health", handler.Health)
	r.Get("/ready", handler.Ready)
	r.Get("/", handler.Dashboard)

	r.Route("/api", func(r chi.Router) {
		r.Get("/options", handler.Options)
		r.Get("/charts/teams", handler.TeamChart)
		r.Get("/charts/penalties", handler.PenaltyChart)
	})
	r.Get("/charts/teams.svg", handler.TeamChartSVG)
	r.Get("/charts/penalties.svg", handler.PenaltyChartSVG)

	return r
}
