package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"garden/internal/config"
	"garden/internal/domain"
	"garden/internal/domain/models/content"
	"garden/internal/domain/repositories"
	contentRepo "garden/internal/domain/repositories/content"
	contentSvc "garden/internal/domain/services/content"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

type uploadService struct {
	nodeRepo    contentRepo.NodeRepository
	payloadRepo contentRepo.PayloadRepository
	txManager   repositories.TransactionManager
	validator   *ParentValidator
	logger      *slog.Logger
}

// NewUploadService creates a new upload service
func NewUploadService(
	nodeRepo contentRepo.NodeRepository,
	payloadRepo contentRepo.PayloadRepository,
	txManager repositories.TransactionManager,
	validator *ParentValidator,
	logger *slog.Logger,
) contentSvc.UploadService {
	return &uploadService{
		nodeRepo:    nodeRepo,
		payloadRepo: payloadRepo,
		txManager:   txManager,
		validator:   validator,
		logger:      logger,
	}
}

// InitiateUpload creates the node and its file payload in pending state.
// The node is visible in the tree immediately (upload_status tells the
// renderer the bytes are not in place yet).
func (s *uploadService) InitiateUpload(ctx context.Context, req *contentSvc.InitiateUploadRequest) (*content.Node, error) {
	if req.ParentID != nil && *req.ParentID == "" {
		req.ParentID = nil
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		req.Title = req.FileName
	}

	if err := s.validateInitiateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if err := s.validator.ValidateParent(ctx, req.ParentID, req.OwnerID); err != nil {
		return nil, err
	}

	now := time.Now()
	node := &content.Node{
		ID:        uuid.NewString(),
		OwnerID:   req.OwnerID,
		ParentID:  req.ParentID,
		Title:     req.Title,
		Slug:      Slugify(req.Title),
		CreatedAt: now,
		UpdatedAt: now,
		File: &content.FileSummary{
			FileName:     req.FileName,
			MimeType:     req.MimeType,
			UploadStatus: content.UploadStatusPending,
		},
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.nodeRepo.Create(txCtx, node); err != nil {
			return err
		}
		return s.payloadRepo.CreateFile(txCtx, node.ID, node.File)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("upload initiated",
		"node_id", node.ID,
		"file_name", req.FileName,
		"mime_type", req.MimeType,
		"owner_id", req.OwnerID,
	)

	return node, nil
}

// FinalizeUpload flips the file payload from pending to ready. The
// transition is guarded by the stored status: a finalize against an
// already-ready upload updates zero rows and surfaces as a conflict.
func (s *uploadService) FinalizeUpload(ctx context.Context, ownerID, nodeID string, req *contentSvc.FinalizeUploadRequest) (*content.Node, error) {
	if req.FileSize < 0 {
		return nil, fmt.Errorf("%w: file_size cannot be negative", domain.ErrValidation)
	}

	if err := s.payloadRepo.FinalizeUpload(ctx, nodeID, ownerID, req.FileSize); err != nil {
		return nil, err
	}

	node, err := s.nodeRepo.GetByID(ctx, nodeID, ownerID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("upload finalized",
		"node_id", nodeID,
		"file_size", req.FileSize,
		"owner_id", ownerID,
	)

	return node, nil
}

// validateInitiateRequest validates an upload initiation request
func (s *uploadService) validateInitiateRequest(req *contentSvc.InitiateUploadRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.OwnerID, validation.Required),
		validation.Field(&req.Title, validation.Required, validation.Length(1, config.MaxTitleLength)),
		validation.Field(&req.FileName, validation.Required, validation.Length(1, config.MaxFileNameLength)),
		validation.Field(&req.MimeType, validation.Required),
	)
}
