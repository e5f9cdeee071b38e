package content

import (
	"context"
	"log/slog"

	"garden/internal/domain/models/content"
	contentRepo "garden/internal/domain/repositories/content"
	contentSvc "garden/internal/domain/services/content"
)

// treeService implements the TreeService interface
type treeService struct {
	nodeRepo contentRepo.NodeRepository
	logger   *slog.Logger
}

// NewTreeService creates a new tree service
func NewTreeService(nodeRepo contentRepo.NodeRepository, logger *slog.Logger) contentSvc.TreeService {
	return &treeService{
		nodeRepo: nodeRepo,
		logger:   logger,
	}
}

// GetTree fetches the owner's flat node set in a single query and
// assembles it into an ordered forest. Payload integrity is checked per
// node as a defensive read-path measure: a violation is logged and the
// node is still served via first-match derivation.
func (s *treeService) GetTree(ctx context.Context, ownerID string, includeDeleted bool) (*content.Tree, error) {
	nodes, err := s.nodeRepo.ListByOwner(ctx, ownerID, includeDeleted)
	if err != nil {
		return nil, err
	}

	for i := range nodes {
		if err := ValidatePayloads(&nodes[i]); err != nil {
			s.logger.Error("payload integrity violation",
				"node_id", nodes[i].ID,
				"owner_id", ownerID,
				"error", err,
			)
		}
	}

	tree := BuildTree(nodes)

	s.logger.Info("content tree built",
		"owner_id", ownerID,
		"total_nodes", tree.Stats.TotalNodes,
		"root_nodes", tree.Stats.RootNodes,
		"max_depth", tree.Stats.MaxDepth,
		"include_deleted", includeDeleted,
	)

	return tree, nil
}
