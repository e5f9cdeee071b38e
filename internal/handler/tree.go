package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	contentSvc "garden/internal/domain/services/content"
	"garden/internal/httputil"
)

// TreeHandler handles HTTP requests for tree operations
type TreeHandler struct {
	treeService contentSvc.TreeService
	logger      *slog.Logger
}

// NewTreeHandler creates a new tree handler
func NewTreeHandler(treeService contentSvc.TreeService, logger *slog.Logger) *TreeHandler {
	return &TreeHandler{
		treeService: treeService,
		logger:      logger,
	}
}

// GetTree returns the assembled content forest for the authenticated owner
// GET /api/content/tree?includeDeleted=&maxDepth=
func (h *TreeHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	ownerID := httputil.GetUserID(r)
	if ownerID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	includeDeleted := false
	if v := r.URL.Query().Get("includeDeleted"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "includeDeleted must be a boolean")
			return
		}
		includeDeleted = parsed
	}

	// maxDepth is accepted for client compatibility but does not truncate
	// assembly: the full tree is always computed and returned.
	if v := r.URL.Query().Get("maxDepth"); v != "" {
		if _, err := strconv.Atoi(v); err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "maxDepth must be an integer")
			return
		}
		h.logger.Debug("maxDepth parameter ignored", "max_depth", v)
	}

	tree, err := h.treeService.GetTree(r.Context(), ownerID, includeDeleted)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tree)
}

// HealthCheck is a simple health check endpoint
// GET /health
func (h *TreeHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now(),
	})
}
