package handler

import (
	"log/slog"
	"net/http"

	"garden/internal/httputil"
	"garden/internal/viewers"
)

// ViewersHandler exposes the viewer capability registry
type ViewersHandler struct {
	registry *viewers.Registry
	logger   *slog.Logger
}

// NewViewersHandler creates a new viewers handler
func NewViewersHandler(registry *viewers.Registry, logger *slog.Logger) *ViewersHandler {
	return &ViewersHandler{
		registry: registry,
		logger:   logger,
	}
}

// ListViewers returns viewer capabilities for every content type
// GET /api/viewers
func (h *ViewersHandler) ListViewers(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"viewers": h.registry.List(),
	})
}
