package content

import (
	"context"

	"garden/internal/domain/models/content"
)

// TreeService builds the ordered content forest for an owner.
type TreeService interface {
	// GetTree fetches the owner's flat node set and assembles it into an
	// ordered forest with aggregate stats. includeDeleted controls whether
	// soft-deleted nodes are part of the fetch.
	GetTree(ctx context.Context, ownerID string, includeDeleted bool) (*content.Tree, error)
}
