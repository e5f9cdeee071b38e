package content

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"garden/internal/domain"
	"garden/internal/domain/models/content"
	contentRepo "garden/internal/domain/repositories/content"
	"garden/internal/repository/postgres"
)

// PostgresPayloadRepository implements the PayloadRepository interface
type PostgresPayloadRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewPayloadRepository creates a new payload repository
func NewPayloadRepository(config *postgres.RepositoryConfig) contentRepo.PayloadRepository {
	return &PostgresPayloadRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// CreateNote inserts a note payload row
func (r *PostgresPayloadRepository) CreateNote(ctx context.Context, nodeID string, body string, summary *content.NoteSummary) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (node_id, content, word_count, char_count)
		VALUES ($1, $2, $3, $4)
	`, r.tables.Notes)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, nodeID, body, summary.WordCount, summary.CharCount); err != nil {
		return fmt.Errorf("create note payload: %w", err)
	}
	return nil
}

// CreateFile inserts a file payload row
func (r *PostgresPayloadRepository) CreateFile(ctx context.Context, nodeID string, summary *content.FileSummary) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (node_id, file_name, mime_type, file_size, upload_status, thumbnail_url)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.Files)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query,
		nodeID,
		summary.FileName,
		summary.MimeType,
		summary.FileSize,
		summary.UploadStatus,
		summary.ThumbnailURL,
	); err != nil {
		return fmt.Errorf("create file payload: %w", err)
	}
	return nil
}

// CreateHTML inserts an html payload row
func (r *PostgresPayloadRepository) CreateHTML(ctx context.Context, nodeID string, sanitizedHTML, markdown string, summary *content.HTMLSummary) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (node_id, html, markdown, is_template, word_count)
		VALUES ($1, $2, $3, $4, $5)
	`, r.tables.HTMLDocuments)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, nodeID, sanitizedHTML, markdown, summary.IsTemplate, summary.WordCount); err != nil {
		return fmt.Errorf("create html payload: %w", err)
	}
	return nil
}

// CreateCode inserts a code payload row
func (r *PostgresPayloadRepository) CreateCode(ctx context.Context, nodeID string, source string, summary *content.CodeSummary) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (node_id, language, source, line_count)
		VALUES ($1, $2, $3, $4)
	`, r.tables.CodeSnippets)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, nodeID, summary.Language, source, summary.LineCount); err != nil {
		return fmt.Errorf("create code payload: %w", err)
	}
	return nil
}

// CreateExternal inserts an external link payload row
func (r *PostgresPayloadRepository) CreateExternal(ctx context.Context, nodeID string, summary *content.ExternalSummary) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (node_id, url, domain)
		VALUES ($1, $2, $3)
	`, r.tables.ExternalLinks)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, nodeID, summary.URL, summary.Domain); err != nil {
		return fmt.Errorf("create external payload: %w", err)
	}
	return nil
}

// CreateChat inserts a chat payload row
func (r *PostgresPayloadRepository) CreateChat(ctx context.Context, nodeID string, summary *content.ChatSummary) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (node_id, message_count, model)
		VALUES ($1, $2, $3)
	`, r.tables.Chats)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, nodeID, summary.MessageCount, summary.Model); err != nil {
		return fmt.Errorf("create chat payload: %w", err)
	}
	return nil
}

// CreateVisualization inserts a visualization payload row. The spec is
// stored as JSONB.
func (r *PostgresPayloadRepository) CreateVisualization(ctx context.Context, nodeID string, spec map[string]interface{}, summary *content.VisualizationSummary) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (node_id, kind, spec)
		VALUES ($1, $2, $3)
	`, r.tables.Visualizations)

	executor := postgres.GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, nodeID, summary.Kind, spec); err != nil {
		return fmt.Errorf("create visualization payload: %w", err)
	}
	return nil
}

// CopyPayloads duplicates whichever payload rows exist for srcNodeID onto
// dstNodeID. At most one INSERT..SELECT matches; running all of them
// keeps this a single round-trip-per-table with no presence pre-check.
func (r *PostgresPayloadRepository) CopyPayloads(ctx context.Context, srcNodeID, dstNodeID string) error {
	statements := []string{
		fmt.Sprintf(`INSERT INTO %s (node_id, content, word_count, char_count)
			SELECT $1, content, word_count, char_count FROM %s WHERE node_id = $2`,
			r.tables.Notes, r.tables.Notes),
		fmt.Sprintf(`INSERT INTO %s (node_id, file_name, mime_type, file_size, upload_status, thumbnail_url)
			SELECT $1, file_name, mime_type, file_size, upload_status, thumbnail_url FROM %s WHERE node_id = $2`,
			r.tables.Files, r.tables.Files),
		fmt.Sprintf(`INSERT INTO %s (node_id, html, markdown, is_template, word_count)
			SELECT $1, html, markdown, is_template, word_count FROM %s WHERE node_id = $2`,
			r.tables.HTMLDocuments, r.tables.HTMLDocuments),
		fmt.Sprintf(`INSERT INTO %s (node_id, language, source, line_count)
			SELECT $1, language, source, line_count FROM %s WHERE node_id = $2`,
			r.tables.CodeSnippets, r.tables.CodeSnippets),
		fmt.Sprintf(`INSERT INTO %s (node_id, url, domain)
			SELECT $1, url, domain FROM %s WHERE node_id = $2`,
			r.tables.ExternalLinks, r.tables.ExternalLinks),
		fmt.Sprintf(`INSERT INTO %s (node_id, message_count, model)
			SELECT $1, message_count, model FROM %s WHERE node_id = $2`,
			r.tables.Chats, r.tables.Chats),
		fmt.Sprintf(`INSERT INTO %s (node_id, kind, spec)
			SELECT $1, kind, spec FROM %s WHERE node_id = $2`,
			r.tables.Visualizations, r.tables.Visualizations),
	}

	executor := postgres.GetExecutor(ctx, r.pool)
	for _, stmt := range statements {
		if _, err := executor.Exec(ctx, stmt, dstNodeID, srcNodeID); err != nil {
			return fmt.Errorf("copy payloads: %w", err)
		}
	}

	return nil
}

// FinalizeUpload transitions a file payload from pending to ready,
// guarded by the stored status column. Zero rows affected means either
// the node has no file payload (not found) or the upload was already
// finalized (conflict); the follow-up existence check disambiguates.
func (r *PostgresPayloadRepository) FinalizeUpload(ctx context.Context, nodeID, ownerID string, fileSize int64) error {
	query := fmt.Sprintf(`
		UPDATE %s f
		SET upload_status = $1, file_size = $2
		FROM %s n
		WHERE f.node_id = n.id
		  AND f.node_id = $3
		  AND n.owner_id = $4
		  AND n.deleted_at IS NULL
		  AND f.upload_status = $5
	`, r.tables.Files, r.tables.Nodes)

	executor := postgres.GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query,
		content.UploadStatusReady,
		fileSize,
		nodeID,
		ownerID,
		content.UploadStatusPending,
	)
	if err != nil {
		return fmt.Errorf("finalize upload: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// Disambiguate: pending row gone vs node missing entirely
		checkQuery := fmt.Sprintf(`
			SELECT f.upload_status FROM %s f
			JOIN %s n ON n.id = f.node_id
			WHERE f.node_id = $1 AND n.owner_id = $2
		`, r.tables.Files, r.tables.Nodes)

		var status string
		if err := executor.QueryRow(ctx, checkQuery, nodeID, ownerID).Scan(&status); err != nil {
			if postgres.IsPgNoRowsError(err) {
				return fmt.Errorf("upload %s: %w", nodeID, domain.ErrNotFound)
			}
			return fmt.Errorf("finalize upload: %w", err)
		}

		return &domain.ConflictError{
			Message:      fmt.Sprintf("upload %s is already %s", nodeID, status),
			ResourceType: "upload",
			ResourceID:   nodeID,
		}
	}

	return nil
}
