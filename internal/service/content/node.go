package content

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"garden/internal/config"
	"garden/internal/domain"
	"garden/internal/domain/models/content"
	"garden/internal/domain/repositories"
	contentRepo "garden/internal/domain/repositories/content"
	contentSvc "garden/internal/domain/services/content"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type nodeService struct {
	nodeRepo    contentRepo.NodeRepository
	payloadRepo contentRepo.PayloadRepository
	txManager   repositories.TransactionManager
	analyzer    contentSvc.ContentAnalyzer
	ingestor    contentSvc.HTMLIngestor
	validator   *ParentValidator
	logger      *slog.Logger
}

// NewNodeService creates a new node service
func NewNodeService(
	nodeRepo contentRepo.NodeRepository,
	payloadRepo contentRepo.PayloadRepository,
	txManager repositories.TransactionManager,
	analyzer contentSvc.ContentAnalyzer,
	ingestor contentSvc.HTMLIngestor,
	validator *ParentValidator,
	logger *slog.Logger,
) contentSvc.NodeService {
	return &nodeService{
		nodeRepo:    nodeRepo,
		payloadRepo: payloadRepo,
		txManager:   txManager,
		analyzer:    analyzer,
		ingestor:    ingestor,
		validator:   validator,
		logger:      logger,
	}
}

// CreateNode creates a node and, when a payload input is present, its
// payload row in the same transaction. Payload rows are lifecycle-bound
// to the node; they are never created or left behind on their own.
func (s *nodeService) CreateNode(ctx context.Context, req *contentSvc.CreateNodeRequest) (*content.Node, error) {
	// Normalize empty string to nil for root-level nodes
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}
	req.Title = strings.TrimSpace(req.Title)

	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.validator.ValidateParent(ctx, req.ParentID, req.OwnerID); err != nil {
		return nil, err
	}

	now := time.Now()
	node := &content.Node{
		ID:           uuid.NewString(),
		OwnerID:      req.OwnerID,
		ParentID:     req.ParentID,
		Title:        req.Title,
		Slug:         Slugify(req.Title),
		DisplayOrder: req.DisplayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.nodeRepo.Create(txCtx, node); err != nil {
			return err
		}
		return s.createPayload(txCtx, node, req)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("node created",
		"id", node.ID,
		"title", node.Title,
		"owner_id", node.OwnerID,
		"parent_id", node.ParentID,
		"content_type", DeriveContentType(node),
	)

	return node, nil
}

// createPayload inserts the payload row for whichever input is set and
// fills the matching summary on the node.
func (s *nodeService) createPayload(ctx context.Context, node *content.Node, req *contentSvc.CreateNodeRequest) error {
	switch {
	case req.Note != nil:
		node.Note = &content.NoteSummary{
			WordCount: s.analyzer.CountWords(req.Note.Content),
			CharCount: s.analyzer.CountChars(req.Note.Content),
		}
		return s.payloadRepo.CreateNote(ctx, node.ID, req.Note.Content, node.Note)

	case req.HTML != nil:
		sanitized, markdown, err := s.ingestor.Ingest(ctx, req.HTML.HTML)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		node.HTML = &content.HTMLSummary{
			IsTemplate: req.HTML.IsTemplate,
			WordCount:  s.analyzer.CountWords(markdown),
		}
		return s.payloadRepo.CreateHTML(ctx, node.ID, sanitized, markdown, node.HTML)

	case req.Code != nil:
		node.Code = &content.CodeSummary{
			Language:  req.Code.Language,
			LineCount: countLines(req.Code.Source),
		}
		return s.payloadRepo.CreateCode(ctx, node.ID, req.Code.Source, node.Code)

	case req.External != nil:
		parsed, err := url.Parse(req.External.URL)
		if err != nil || parsed.Host == "" {
			return fmt.Errorf("%w: invalid external url", domain.ErrValidation)
		}
		node.External = &content.ExternalSummary{
			URL:    req.External.URL,
			Domain: parsed.Hostname(),
		}
		return s.payloadRepo.CreateExternal(ctx, node.ID, node.External)

	case req.Chat != nil:
		node.Chat = &content.ChatSummary{
			MessageCount: req.Chat.MessageCount,
			Model:        req.Chat.Model,
		}
		return s.payloadRepo.CreateChat(ctx, node.ID, node.Chat)

	case req.Visualization != nil:
		node.Visualization = &content.VisualizationSummary{
			Kind: req.Visualization.Kind,
		}
		return s.payloadRepo.CreateVisualization(ctx, node.ID, req.Visualization.Spec, node.Visualization)
	}

	// No payload input: the node is a pure container (folder)
	return nil
}

// GetNode retrieves a single node with its payload summary.
// Payload integrity is checked defensively on the way out.
func (s *nodeService) GetNode(ctx context.Context, ownerID, id string) (*content.Node, error) {
	node, err := s.nodeRepo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if err := ValidatePayloads(node); err != nil {
		s.logger.Error("payload integrity violation", "node_id", node.ID, "error", err)
	}

	return node, nil
}

// UpdateNode renames, reorders and/or moves a node.
func (s *nodeService) UpdateNode(ctx context.Context, ownerID, id string, req *contentSvc.UpdateNodeRequest) (*content.Node, error) {
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	node, err := s.nodeRepo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		node.Title = strings.TrimSpace(*req.Title)
		node.Slug = Slugify(node.Title)
	}
	if req.DisplayOrder != nil {
		node.DisplayOrder = *req.DisplayOrder
	}

	// Tri-state: only move the node if parent_id was present in the request
	if req.ParentID.Present {
		if req.ParentID.Value != nil && *req.ParentID.Value != "" {
			newParentID := *req.ParentID.Value
			if err := s.validator.ValidateParent(ctx, &newParentID, ownerID); err != nil {
				return nil, err
			}
			if err := s.validateNoCircularReference(ctx, id, newParentID, ownerID); err != nil {
				return nil, err
			}
			node.ParentID = &newParentID
			s.logger.Debug("moving node to new parent", "node_id", id, "new_parent_id", newParentID)
		} else {
			// null = move to root
			node.ParentID = nil
			s.logger.Debug("moving node to root", "node_id", id)
		}
	}

	node.UpdatedAt = time.Now()

	if err := s.nodeRepo.Update(ctx, node); err != nil {
		return nil, err
	}

	s.logger.Info("node updated",
		"id", node.ID,
		"title", node.Title,
		"parent_id", node.ParentID,
		"display_order", node.DisplayOrder,
	)

	return node, nil
}

// DeleteNode soft-deletes a node and all of its descendants in a single
// transaction. Descendants are walked through the built parent/child
// index, not raw parent_id chains.
func (s *nodeService) DeleteNode(ctx context.Context, ownerID, id string) error {
	node, err := s.nodeRepo.GetByID(ctx, id, ownerID)
	if err != nil {
		return err
	}

	now := time.Now()
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.deleteDescendants(txCtx, ownerID, id, now); err != nil {
			return err
		}
		return s.nodeRepo.SoftDelete(txCtx, id, ownerID, now)
	})
	if err != nil {
		return err
	}

	s.logger.Info("node deleted", "id", id, "title", node.Title, "owner_id", ownerID)
	return nil
}

// deleteDescendants recursively soft-deletes all children of a node.
func (s *nodeService) deleteDescendants(ctx context.Context, ownerID, nodeID string, at time.Time) error {
	children, err := s.nodeRepo.ListChildren(ctx, &nodeID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to list children: %w", err)
	}

	for _, child := range children {
		if err := s.deleteDescendants(ctx, ownerID, child.ID, at); err != nil {
			return err
		}
		if err := s.nodeRepo.SoftDelete(ctx, child.ID, ownerID, at); err != nil {
			return fmt.Errorf("failed to delete child %q: %w", child.Title, err)
		}
		s.logger.Debug("deleted child node", "id", child.ID, "title", child.Title)
	}

	return nil
}

// RestoreNode clears the soft-delete stamp on a node. Descendants stay
// deleted; the restored node surfaces as an orphan-promoted root if its
// own parent is still deleted.
func (s *nodeService) RestoreNode(ctx context.Context, ownerID, id string) error {
	if _, err := s.nodeRepo.GetByIDIncludeDeleted(ctx, id, ownerID); err != nil {
		return err
	}

	if err := s.nodeRepo.Restore(ctx, id, ownerID); err != nil {
		return err
	}

	s.logger.Info("node restored", "id", id, "owner_id", ownerID)
	return nil
}

// BatchDelete soft-deletes every resolvable id in the selection. Stale
// ids (deleted or never existed) are skipped and reported, not fatal -
// the selection layer may lag a refetch.
func (s *nodeService) BatchDelete(ctx context.Context, ownerID string, ids []string) (*contentSvc.BatchResult, error) {
	result := &contentSvc.BatchResult{
		Processed: []string{},
		Skipped:   []string{},
	}

	for _, id := range ids {
		if _, err := s.nodeRepo.GetByID(ctx, id, ownerID); err != nil {
			result.Skipped = append(result.Skipped, id)
			continue
		}
		if err := s.DeleteNode(ctx, ownerID, id); err != nil {
			return nil, err
		}
		result.Processed = append(result.Processed, id)
	}

	s.logger.Info("batch delete",
		"owner_id", ownerID,
		"processed", len(result.Processed),
		"skipped", len(result.Skipped),
	)

	return result, nil
}

// BatchDuplicate shallow-copies every resolvable id in the selection:
// the node row plus its payload row, placed next to the original.
// Descendants are not copied.
func (s *nodeService) BatchDuplicate(ctx context.Context, ownerID string, ids []string) (*contentSvc.BatchResult, error) {
	result := &contentSvc.BatchResult{
		Processed: []string{},
		Skipped:   []string{},
	}

	for _, id := range ids {
		src, err := s.nodeRepo.GetByID(ctx, id, ownerID)
		if err != nil {
			result.Skipped = append(result.Skipped, id)
			continue
		}

		now := time.Now()
		dup := &content.Node{
			ID:           uuid.NewString(),
			OwnerID:      ownerID,
			ParentID:     src.ParentID,
			Title:        src.Title + " (copy)",
			Slug:         Slugify(src.Title + " copy"),
			DisplayOrder: src.DisplayOrder + 1,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
			if err := s.nodeRepo.Create(txCtx, dup); err != nil {
				return err
			}
			return s.payloadRepo.CopyPayloads(txCtx, src.ID, dup.ID)
		})
		if err != nil {
			return nil, err
		}

		result.Processed = append(result.Processed, dup.ID)
	}

	s.logger.Info("batch duplicate",
		"owner_id", ownerID,
		"processed", len(result.Processed),
		"skipped", len(result.Skipped),
	)

	return result, nil
}

// validateCreateRequest validates a node creation request
func (s *nodeService) validateCreateRequest(req *contentSvc.CreateNodeRequest) error {
	if err := validation.ValidateStruct(req,
		validation.Field(&req.OwnerID, validation.Required),
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxTitleLength),
		),
	); err != nil {
		return err
	}

	// At most one payload input; none at all creates a folder
	count := 0
	if req.Note != nil {
		count++
	}
	if req.HTML != nil {
		count++
	}
	if req.Code != nil {
		count++
	}
	if req.External != nil {
		count++
	}
	if req.Chat != nil {
		count++
	}
	if req.Visualization != nil {
		count++
	}
	if count > 1 {
		return fmt.Errorf("at most one payload may be provided, got %d", count)
	}

	return nil
}

// validateUpdateRequest validates a node update request
func (s *nodeService) validateUpdateRequest(req *contentSvc.UpdateNodeRequest) error {
	// At least one field must be provided
	if req.Title == nil && req.DisplayOrder == nil && !req.ParentID.Present {
		return fmt.Errorf("at least one field must be provided")
	}

	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		if trimmed == "" {
			return fmt.Errorf("title cannot be empty")
		}
		if utf8.RuneCountInString(trimmed) > config.MaxTitleLength {
			return fmt.Errorf("title exceeds %d characters", config.MaxTitleLength)
		}
	}

	return nil
}

// validateNoCircularReference ensures moving a node won't create circular
// references: the target parent must not be the node itself or any of its
// descendants. Walks the ancestor chain upward from the proposed parent.
func (s *nodeService) validateNoCircularReference(ctx context.Context, nodeID, newParentID, ownerID string) error {
	if nodeID == newParentID {
		return fmt.Errorf("%w: cannot move node under itself", domain.ErrValidation)
	}

	currentID := newParentID
	for {
		ancestor, err := s.nodeRepo.GetByID(ctx, currentID, ownerID)
		if err != nil {
			return err
		}

		if ancestor.ParentID == nil {
			// Reached root, no circular reference
			return nil
		}

		if *ancestor.ParentID == nodeID {
			return fmt.Errorf("%w: cannot move node under its own descendant", domain.ErrValidation)
		}

		currentID = *ancestor.ParentID
	}
}

var slugStripPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe slug from a title.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugStripPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// countLines counts lines in a source snippet (trailing newline does not
// add an empty line).
func countLines(source string) int {
	if source == "" {
		return 0
	}
	return strings.Count(strings.TrimSuffix(source, "\n"), "\n") + 1
}
