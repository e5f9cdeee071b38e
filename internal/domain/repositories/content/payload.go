package content

import (
	"context"

	"garden/internal/domain/models/content"
)

// PayloadRepository defines data access for the per-type payload tables.
// Payload rows are lifecycle-bound to their node: created in the same
// transaction as the node row and removed with it.
type PayloadRepository interface {
	CreateNote(ctx context.Context, nodeID string, body string, summary *content.NoteSummary) error
	CreateFile(ctx context.Context, nodeID string, summary *content.FileSummary) error
	CreateHTML(ctx context.Context, nodeID string, sanitizedHTML, markdown string, summary *content.HTMLSummary) error
	CreateCode(ctx context.Context, nodeID string, source string, summary *content.CodeSummary) error
	CreateExternal(ctx context.Context, nodeID string, summary *content.ExternalSummary) error
	CreateChat(ctx context.Context, nodeID string, summary *content.ChatSummary) error
	CreateVisualization(ctx context.Context, nodeID string, spec map[string]interface{}, summary *content.VisualizationSummary) error

	// CopyPayloads duplicates whichever payload rows exist for srcNodeID
	// onto dstNodeID (used by batch duplicate)
	CopyPayloads(ctx context.Context, srcNodeID, dstNodeID string) error

	// FinalizeUpload transitions a file payload from pending to ready and
	// records the verified size. The update is guarded by the status
	// column: finalizing an already-ready or unknown upload affects zero
	// rows and returns domain.ErrConflict / domain.ErrNotFound.
	FinalizeUpload(ctx context.Context, nodeID, ownerID string, fileSize int64) error
}
