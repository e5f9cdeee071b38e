package content

import (
	"context"

	"garden/internal/domain/models/content"
	"garden/internal/httputil"
)

// NodeService handles content node business logic: create, rename,
// reorder, move (with cycle prevention), soft delete/restore and batch
// operations over the tree selection.
type NodeService interface {
	// CreateNode creates a node with at most one payload, atomically
	CreateNode(ctx context.Context, req *CreateNodeRequest) (*content.Node, error)

	// GetNode retrieves a single node with its payload summary
	GetNode(ctx context.Context, ownerID, id string) (*content.Node, error)

	// UpdateNode renames, reorders and/or moves a node
	UpdateNode(ctx context.Context, ownerID, id string, req *UpdateNodeRequest) (*content.Node, error)

	// DeleteNode soft-deletes a node and all of its descendants
	DeleteNode(ctx context.Context, ownerID, id string) error

	// RestoreNode clears the soft-delete stamp on a node
	RestoreNode(ctx context.Context, ownerID, id string) error

	// BatchDelete soft-deletes every resolvable id in the selection
	BatchDelete(ctx context.Context, ownerID string, ids []string) (*BatchResult, error)

	// BatchDuplicate shallow-copies every resolvable id in the selection
	BatchDuplicate(ctx context.Context, ownerID string, ids []string) (*BatchResult, error)
}

// CreateNodeRequest represents a node creation request. At most one
// payload input may be set; none at all creates a folder.
type CreateNodeRequest struct {
	OwnerID       string                     `json:"-"`
	Title         string                     `json:"title"`
	ParentID      *string                    `json:"parent_id,omitempty"` // nil = root
	DisplayOrder  int                        `json:"display_order"`
	Note          *NotePayloadInput          `json:"note,omitempty"`
	HTML          *HTMLPayloadInput          `json:"html,omitempty"`
	Code          *CodePayloadInput          `json:"code,omitempty"`
	External      *ExternalPayloadInput      `json:"external,omitempty"`
	Chat          *ChatPayloadInput          `json:"chat,omitempty"`
	Visualization *VisualizationPayloadInput `json:"visualization,omitempty"`
}

// NotePayloadInput carries the markdown body of a new note.
type NotePayloadInput struct {
	Content string `json:"content"`
}

// HTMLPayloadInput carries raw HTML to be sanitized on ingest.
type HTMLPayloadInput struct {
	HTML       string `json:"html"`
	IsTemplate bool   `json:"is_template"`
}

// CodePayloadInput carries a code snippet.
type CodePayloadInput struct {
	Language string `json:"language"`
	Source   string `json:"source"`
}

// ExternalPayloadInput carries an external link.
type ExternalPayloadInput struct {
	URL string `json:"url"`
}

// ChatPayloadInput carries a saved chat transcript reference.
type ChatPayloadInput struct {
	Model        string `json:"model"`
	MessageCount int    `json:"message_count"`
}

// VisualizationPayloadInput carries a visualization spec.
type VisualizationPayloadInput struct {
	Kind string                 `json:"kind"`
	Spec map[string]interface{} `json:"spec,omitempty"`
}

// UpdateNodeRequest represents a node update (rename, reorder, move).
// ParentID is tri-state: absent = unchanged, null = move to root,
// value = move under that folder.
type UpdateNodeRequest struct {
	Title        *string                 `json:"title,omitempty"`
	DisplayOrder *int                    `json:"display_order,omitempty"`
	ParentID     httputil.OptionalString `json:"parent_id,omitempty"`
}

// BatchResult reports which ids of a batch operation were applied and
// which no longer resolved (stale selection after a refetch).
type BatchResult struct {
	Processed []string `json:"processed"`
	Skipped   []string `json:"skipped"`
}

// UploadService implements the two-phase file upload flow.
type UploadService interface {
	// InitiateUpload creates a node with a pending file payload
	InitiateUpload(ctx context.Context, req *InitiateUploadRequest) (*content.Node, error)

	// FinalizeUpload flips the payload from pending to ready once the
	// bytes are in place, guarded by the stored upload status
	FinalizeUpload(ctx context.Context, ownerID, nodeID string, req *FinalizeUploadRequest) (*content.Node, error)
}

// InitiateUploadRequest starts a two-phase upload.
type InitiateUploadRequest struct {
	OwnerID  string  `json:"-"`
	Title    string  `json:"title"`
	ParentID *string `json:"parent_id,omitempty"`
	FileName string  `json:"file_name"`
	MimeType string  `json:"mime_type"`
}

// FinalizeUploadRequest completes a two-phase upload.
type FinalizeUploadRequest struct {
	FileSize int64 `json:"file_size"`
}
