package handler

import (
	"log/slog"
	"net/http"

	contentSvc "garden/internal/domain/services/content"
	"garden/internal/httputil"
)

// NodeHandler handles content node HTTP requests
type NodeHandler struct {
	nodeService contentSvc.NodeService
	logger      *slog.Logger
}

// NewNodeHandler creates a new node handler
func NewNodeHandler(nodeService contentSvc.NodeService, logger *slog.Logger) *NodeHandler {
	return &NodeHandler{
		nodeService: nodeService,
		logger:      logger,
	}
}

// CreateNode creates a new content node (folder or node with payload)
// POST /api/content
func (h *NodeHandler) CreateNode(w http.ResponseWriter, r *http.Request) {
	ownerID := httputil.GetUserID(r)
	if ownerID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	var req contentSvc.CreateNodeRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.OwnerID = ownerID

	node, err := h.nodeService.CreateNode(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, node)
}

// GetNode retrieves a node by ID with its payload summary
// GET /api/content/{id}
func (h *NodeHandler) GetNode(w http.ResponseWriter, r *http.Request) {
	ownerID := httputil.GetUserID(r)
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "node ID is required")
		return
	}

	node, err := h.nodeService.GetNode(r.Context(), ownerID, id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, node)
}

// UpdateNode renames, reorders and/or moves a node
// PATCH /api/content/{id}
func (h *NodeHandler) UpdateNode(w http.ResponseWriter, r *http.Request) {
	ownerID := httputil.GetUserID(r)
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "node ID is required")
		return
	}

	var req contentSvc.UpdateNodeRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	node, err := h.nodeService.UpdateNode(r.Context(), ownerID, id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, node)
}

// DeleteNode soft-deletes a node and its descendants
// DELETE /api/content/{id}
func (h *NodeHandler) DeleteNode(w http.ResponseWriter, r *http.Request) {
	ownerID := httputil.GetUserID(r)
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "node ID is required")
		return
	}

	if err := h.nodeService.DeleteNode(r.Context(), ownerID, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// RestoreNode clears the soft-delete stamp on a node
// POST /api/content/{id}/restore
func (h *NodeHandler) RestoreNode(w http.ResponseWriter, r *http.Request) {
	ownerID := httputil.GetUserID(r)
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "node ID is required")
		return
	}

	if err := h.nodeService.RestoreNode(r.Context(), ownerID, id); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// batchRequest is the shared shape of batch operations over a selection
type batchRequest struct {
	IDs []string `json:"ids"`
}

// BatchDelete soft-deletes every resolvable id in the selection
// POST /api/content/batch/delete
func (h *NodeHandler) BatchDelete(w http.ResponseWriter, r *http.Request) {
	ownerID := httputil.GetUserID(r)

	var req batchRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.IDs) == 0 {
		httputil.RespondError(w, http.StatusBadRequest, "ids must not be empty")
		return
	}

	result, err := h.nodeService.BatchDelete(r.Context(), ownerID, req.IDs)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// BatchDuplicate shallow-copies every resolvable id in the selection
// POST /api/content/batch/duplicate
func (h *NodeHandler) BatchDuplicate(w http.ResponseWriter, r *http.Request) {
	ownerID := httputil.GetUserID(r)

	var req batchRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.IDs) == 0 {
		httputil.RespondError(w, http.StatusBadRequest, "ids must not be empty")
		return
	}

	result, err := h.nodeService.BatchDuplicate(r.Context(), ownerID, req.IDs)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}
