package content

import (
	"context"
	"time"

	"garden/internal/domain/models/content"
)

// NodeRepository defines data access operations for content nodes.
// Every operation is scoped to one owner; cross-owner reads are not
// expressible through this interface.
type NodeRepository interface {
	// Create inserts a new content node row (payload rows are created
	// separately through PayloadRepository, inside the same transaction)
	Create(ctx context.Context, node *content.Node) error

	// GetByID retrieves a non-deleted node with its payload summary
	GetByID(ctx context.Context, id, ownerID string) (*content.Node, error)

	// GetByIDIncludeDeleted retrieves a node regardless of soft-delete state
	GetByIDIncludeDeleted(ctx context.Context, id, ownerID string) (*content.Node, error)

	// Update persists title, slug, parent and display order changes
	Update(ctx context.Context, node *content.Node) error

	// SoftDelete stamps deleted_at on a single node
	SoftDelete(ctx context.Context, id, ownerID string, at time.Time) error

	// Restore clears deleted_at on a single node
	Restore(ctx context.Context, id, ownerID string) error

	// ListChildren lists immediate, non-deleted children of a node
	// (nil parentID lists root-level nodes)
	ListChildren(ctx context.Context, parentID *string, ownerID string) ([]content.Node, error)

	// ListByOwner retrieves the owner's entire flat node set with payload
	// summaries resolved, ready for tree assembly. includeDeleted controls
	// whether soft-deleted rows are part of the result.
	ListByOwner(ctx context.Context, ownerID string, includeDeleted bool) ([]content.Node, error)
}
