package content

import (
	"context"
	"fmt"

	"garden/internal/domain"
	"garden/internal/domain/models/content"
	contentRepo "garden/internal/domain/repositories/content"
)

// ParentValidator validates drop/attach targets before a node is created
// under or moved under another node.
type ParentValidator struct {
	nodeRepo contentRepo.NodeRepository
}

// NewParentValidator creates a new parent validator
func NewParentValidator(nodeRepo contentRepo.NodeRepository) *ParentValidator {
	return &ParentValidator{nodeRepo: nodeRepo}
}

// ValidateParent ensures a prospective parent exists, is not soft-deleted
// and derives to a folder. A nil parentID (root) is always valid; only
// pure containers accept children.
func (v *ParentValidator) ValidateParent(ctx context.Context, parentID *string, ownerID string) error {
	if parentID == nil || *parentID == "" {
		return nil // root is always a legal target
	}

	parent, err := v.nodeRepo.GetByID(ctx, *parentID, ownerID)
	if err != nil {
		return fmt.Errorf("invalid parent: %w", err)
	}

	if ct := DeriveContentType(parent); ct != content.TypeFolder {
		return fmt.Errorf("%w: node %q is a %s, only folders accept children", domain.ErrValidation, parent.Title, ct)
	}

	return nil
}
