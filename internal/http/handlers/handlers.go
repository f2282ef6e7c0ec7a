package handlers

import (
	"context"
	"errors"
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/preston-bernstein/nhl-penalty-service/internal/app/penalties"
	"github.com/preston-bernstein/nhl-penalty-service/internal/chart"
	domainpenalties "github.com/preston-bernstein/nhl-penalty-service/internal/domain/penalties"
	"github.com/preston-bernstein/nhl-penalty-service/internal/domain/seasons"
	"github.com/preston-bernstein/nhl-penalty-service/internal/domain/teams"
	"github.com/preston-bernstein/nhl-penalty-service/internal/logging"
)

// ChartService builds chart specs for the two dashboard panels.
type ChartService interface {
	TeamChart(ctx context.Context, teamSelector string, seasonIDs []string) (chart.Spec, error)
	PenaltyChart(ctx context.Context, penalty string, seasonIDs []string) (chart.Spec, error)
}

// ReadinessFunc reports whether the backing data can serve requests.
type ReadinessFunc func(ctx context.Context) error

// Handler wires HTTP routes to the chart service.
type Handler struct {
	svc         ChartService
	logger      *slog.Logger
	ready       ReadinessFunc
	loadTimeout time.Duration
}

// NewHandler constructs a Handler. A nil ready func always reports ready;
// a zero loadTimeout leaves request contexts untouched.
func NewHandler(svc ChartService, logger *slog.Logger, ready ReadinessFunc, loadTimeout time.Duration) *Handler {
	return &Handler{
		svc:         svc,
		logger:      logger,
		ready:       ready,
		loadTimeout: loadTimeout,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.ready == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	ctx, cancel := h.requestContext(r)
	defer cancel()
	if err := h.ready(ctx); err != nil {
		logging.Warn(loggerFromContext(r, h.logger), "readiness check failed", "err", err)
		writeError(w, r, nethttp.StatusServiceUnavailable, "not ready", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
}

// OptionsResponse lists every dropdown's entries.
type OptionsResponse struct {
	Teams     []teams.Option           `json:"teams"`
	Seasons   []seasons.Season         `json:"seasons"`
	Penalties []domainpenalties.Option `json:"penalties"`
}

// Options returns the dropdown catalogs.
func (h *Handler) Options(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, OptionsResponse{
		Teams:     teams.Options(),
		Seasons:   seasons.All(),
		Penalties: domainpenalties.Options(),
	}, h.logger)
}

// TeamChart returns the per-penalty-type chart for a team or the league.
func (h *Handler) TeamChart(w nethttp.ResponseWriter, r *nethttp.Request) {
	spec, status, msg := h.teamChart(r)
	if msg != "" {
		writeError(w, r, status, msg, h.logger)
		return
	}
	writeJSON(w, status, spec, h.logger)
}

// PenaltyChart returns the per-team chart for one penalty type.
func (h *Handler) PenaltyChart(w nethttp.ResponseWriter, r *nethttp.Request) {
	spec, status, msg := h.penaltyChart(r)
	if msg != "" {
		writeError(w, r, status, msg, h.logger)
		return
	}
	writeJSON(w, status, spec, h.logger)
}

// TeamChartSVG renders the team chart as SVG.
func (h *Handler) TeamChartSVG(w nethttp.ResponseWriter, r *nethttp.Request) {
	spec, status, msg := h.teamChart(r)
	if msg != "" {
		writeError(w, r, status, msg, h.logger)
		return
	}
	writeSVG(w, r, status, spec, h.logger)
}

// PenaltyChartSVG renders the penalty chart as SVG.
func (h *Handler) PenaltyChartSVG(w nethttp.ResponseWriter, r *nethttp.Request) {
	spec, status, msg := h.penaltyChart(r)
	if msg != "" {
		writeError(w, r, status, msg, h.logger)
		return
	}
	writeSVG(w, r, status, spec, h.logger)
}

func (h *Handler) teamChart(r *nethttp.Request) (chart.Spec, int, string) {
	team := trimmedParam(r, paramTeam)
	if team == "" {
		return chart.PlaceholderTeamChart(), nethttp.StatusOK, ""
	}
	ctx, cancel := h.requestContext(r)
	defer cancel()
	spec, err := h.svc.TeamChart(ctx, team, seasonsFromQuery(r))
	if err != nil {
		return h.chartError(r, err, chart.PlaceholderTeamChart())
	}
	return spec, nethttp.StatusOK, ""
}

func (h *Handler) penaltyChart(r *nethttp.Request) (chart.Spec, int, string) {
	penalty := trimmedParam(r, paramPenalty)
	if penalty == "" {
		return chart.PlaceholderPenaltyChart(), nethttp.StatusOK, ""
	}
	ctx, cancel := h.requestContext(r)
	defer cancel()
	spec, err := h.svc.PenaltyChart(ctx, penalty, seasonsFromQuery(r))
	if err != nil {
		return h.chartError(r, err, chart.PlaceholderPenaltyChart())
	}
	return spec, nethttp.StatusOK, ""
}

// chartError maps service errors to a response. An empty selection is not an
// error for the dashboard: it shows the placeholder chart.
func (h *Handler) chartError(r *nethttp.Request, err error, placeholder chart.Spec) (chart.Spec, int, string) {
	logger := loggerFromContext(r, h.logger)
	switch {
	case penalties.IsEmptySelection(err):
		return placeholder, nethttp.StatusOK, ""
	case penalties.IsUnknownTeam(err), penalties.IsUnknownPenalty(err), errors.Is(err, seasons.ErrInvalid):
		return chart.Spec{}, nethttp.StatusBadRequest, err.Error()
	}
	if md, ok := penalties.AsMissingData(err); ok {
		logging.Info(logger, "chart data missing", logging.FieldSeason, md.Season, "err", err)
		return chart.Spec{}, nethttp.StatusNotFound, md.Error()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		logging.Warn(logger, "chart request timed out", "err", err)
		return chart.Spec{}, nethttp.StatusGatewayTimeout, "chart data load timed out"
	}
	logging.Error(logger, "chart request failed", err)
	return chart.Spec{}, nethttp.StatusInternalServerError, "internal error"
}

func (h *Handler) requestContext(r *nethttp.Request) (context.Context, context.CancelFunc) {
	if h.loadTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.loadTimeout)
}
