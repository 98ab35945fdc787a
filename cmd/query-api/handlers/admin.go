package handlers

import (
	"net/http"

	"github.com/fplchat/query-engine/internal/observability"
	"github.com/fplchat/query-engine/internal/snapshot"
	"github.com/fplchat/query-engine/pkg/engine"
)

// AdminHandler serves health and dataset-refresh endpoints.
type AdminHandler struct {
	engine    *engine.Engine
	refresher *snapshot.Refresher
	logger    *observability.Logger
}

// NewAdminHandler creates an AdminHandler.
func NewAdminHandler(eng *engine.Engine, refresher *snapshot.Refresher, logger *observability.Logger) *AdminHandler {
	return &AdminHandler{engine: eng, refresher: refresher, logger: logger}
}

// Health handles GET /health.
func (h *AdminHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready handles GET /ready: healthy only once a snapshot is loaded.
func (h *AdminHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if !h.engine.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "loading"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// Refresh handles POST /api/v1/refresh: reload the dataset snapshot now.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.refresher.RefreshNow(r.Context()); err != nil {
		h.logger.WithContext(r.Context()).Error().Err(err).Msg("manual refresh failed")
		writeError(w, http.StatusInternalServerError, "refresh failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
