package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/nhl-penalty-service/internal/chart"
	"github.com/preston-bernstein/nhl-penalty-service/internal/http/middleware"
	"github.com/preston-bernstein/nhl-penalty-service/internal/http/requestutil"
	"github.com/preston-bernstein/nhl-penalty-service/internal/logging"
)

const contentTypeSVG = "image/svg+xml"

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Error("failed to encode response", "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get(requestutil.HeaderRequestID)
	}
	body := map[string]string{"error": message}
	if reqID != "" {
		body["requestId"] = reqID
	}
	writeJSON(w, status, body, logger)
}

// writeSVG renders into a buffer first so a render failure can still become a JSON error.
func writeSVG(w http.ResponseWriter, r *http.Request, status int, spec chart.Spec, logger *slog.Logger) {
	var buf bytes.Buffer
	if err := chart.RenderSVG(&buf, spec); err != nil {
		logging.Error(logger, "failed to render svg", err)
		writeError(w, r, http.StatusInternalServerError, "failed to render chart", logger)
		return
	}
	w.Header().Set("Content-Type", contentTypeSVG)
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logging.Warn(logger, "failed to write svg", "err", err)
	}
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
