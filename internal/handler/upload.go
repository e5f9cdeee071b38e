package handler

import (
	"log/slog"
	"net/http"

	contentSvc "garden/internal/domain/services/content"
	"garden/internal/httputil"
)

// UploadHandler handles the two-phase file upload flow
type UploadHandler struct {
	uploadService contentSvc.UploadService
	logger        *slog.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService contentSvc.UploadService, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		logger:        logger,
	}
}

// InitiateUpload creates a node with a pending file payload
// POST /api/files/initiate
func (h *UploadHandler) InitiateUpload(w http.ResponseWriter, r *http.Request) {
	ownerID := httputil.GetUserID(r)
	if ownerID == "" {
		httputil.RespondError(w, http.StatusUnauthorized, "missing user identity")
		return
	}

	var req contentSvc.InitiateUploadRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.OwnerID = ownerID

	node, err := h.uploadService.InitiateUpload(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, node)
}

// FinalizeUpload flips a pending upload to ready
// POST /api/files/{id}/finalize
func (h *UploadHandler) FinalizeUpload(w http.ResponseWriter, r *http.Request) {
	ownerID := httputil.GetUserID(r)
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "node ID is required")
		return
	}

	var req contentSvc.FinalizeUploadRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	node, err := h.uploadService.FinalizeUpload(r.Context(), ownerID, id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, node)
}
