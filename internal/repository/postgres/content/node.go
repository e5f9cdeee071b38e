package content

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"garden/internal/domain"
	"garden/internal/domain/models/content"
	contentRepo "garden/internal/domain/repositories/content"
	"garden/internal/repository/postgres"
)

// PostgresNodeRepository implements the NodeRepository interface
type PostgresNodeRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewNodeRepository creates a new node repository
func NewNodeRepository(config *postgres.RepositoryConfig) contentRepo.NodeRepository {
	return &PostgresNodeRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// nodeColumns is the SELECT list shared by every read: the node row plus
// a presence-detecting projection of each payload table. A NULL join
// column means the payload slot is empty.
func (r *PostgresNodeRepository) nodeColumns() string {
	return `
		n.id, n.owner_id, n.parent_id, n.title, n.slug, n.display_order,
		n.created_at, n.updated_at, n.deleted_at,
		nt.word_count, nt.char_count,
		f.file_name, f.mime_type, f.file_size, f.upload_status, f.thumbnail_url,
		h.is_template, h.word_count,
		c.language, c.line_count,
		e.url, e.domain,
		ch.message_count, ch.model,
		v.kind
	`
}

// nodeJoins is the FROM/JOIN clause matching nodeColumns.
func (r *PostgresNodeRepository) nodeJoins() string {
	return fmt.Sprintf(`
		FROM %s n
		LEFT JOIN %s nt ON nt.node_id = n.id
		LEFT JOIN %s f  ON f.node_id = n.id
		LEFT JOIN %s h  ON h.node_id = n.id
		LEFT JOIN %s c  ON c.node_id = n.id
		LEFT JOIN %s e  ON e.node_id = n.id
		LEFT JOIN %s ch ON ch.node_id = n.id
		LEFT JOIN %s v  ON v.node_id = n.id
	`,
		r.tables.Nodes,
		r.tables.Notes,
		r.tables.Files,
		r.tables.HTMLDocuments,
		r.tables.CodeSnippets,
		r.tables.ExternalLinks,
		r.tables.Chats,
		r.tables.Visualizations,
	)
}

// scanNode scans one joined row into a Node, resolving payload presence
// from the nullable join columns.
func scanNode(row pgx.Row) (*content.Node, error) {
	var node content.Node
	var (
		noteWordCount  *int
		noteCharCount  *int
		fileName       *string
		mimeType       *string
		fileSize       *int64
		uploadStatus   *string
		thumbnailURL   *string
		isTemplate     *bool
		htmlWordCount  *int
		codeLanguage   *string
		codeLineCount  *int
		externalURL    *string
		externalDomain *string
		chatMessages   *int
		chatModel      *string
		vizKind        *string
	)

	err := row.Scan(
		&node.ID,
		&node.OwnerID,
		&node.ParentID,
		&node.Title,
		&node.Slug,
		&node.DisplayOrder,
		&node.CreatedAt,
		&node.UpdatedAt,
		&node.DeletedAt,
		&noteWordCount,
		&noteCharCount,
		&fileName,
		&mimeType,
		&fileSize,
		&uploadStatus,
		&thumbnailURL,
		&isTemplate,
		&htmlWordCount,
		&codeLanguage,
		&codeLineCount,
		&externalURL,
		&externalDomain,
		&chatMessages,
		&chatModel,
		&vizKind,
	)
	if err != nil {
		return nil, err
	}

	if noteWordCount != nil {
		node.Note = &content.NoteSummary{
			WordCount: *noteWordCount,
			CharCount: derefInt(noteCharCount),
		}
	}
	if fileName != nil {
		node.File = &content.FileSummary{
			FileName:     *fileName,
			MimeType:     derefString(mimeType),
			FileSize:     derefInt64(fileSize),
			UploadStatus: content.UploadStatus(derefString(uploadStatus)),
			ThumbnailURL: thumbnailURL,
		}
	}
	if isTemplate != nil {
		node.HTML = &content.HTMLSummary{
			IsTemplate: *isTemplate,
			WordCount:  derefInt(htmlWordCount),
		}
	}
	if codeLanguage != nil {
		node.Code = &content.CodeSummary{
			Language:  *codeLanguage,
			LineCount: derefInt(codeLineCount),
		}
	}
	if externalURL != nil {
		node.External = &content.ExternalSummary{
			URL:    *externalURL,
			Domain: derefString(externalDomain),
		}
	}
	if chatMessages != nil {
		node.Chat = &content.ChatSummary{
			MessageCount: *chatMessages,
			Model:        derefString(chatModel),
		}
	}
	if vizKind != nil {
		node.Visualization = &content.VisualizationSummary{
			Kind: *vizKind,
		}
	}

	return &node, nil
}

// Create inserts a new content node row
func (r *PostgresNodeRepository) Create(ctx context.Context, node *content.Node) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, owner_id, parent_id, title, slug, display_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, r.tables.Nodes)

	executor := postgres.GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		node.ID,
		node.OwnerID,
		node.ParentID,
		node.Title,
		node.Slug,
		node.DisplayOrder,
		node.CreatedAt,
		node.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("node %q already exists", node.ID),
				ResourceType: "node",
				ResourceID:   node.ID,
			}
		}
		return fmt.Errorf("create node: %w", err)
	}

	return nil
}

// GetByID retrieves a non-deleted node with its payload summary
func (r *PostgresNodeRepository) GetByID(ctx context.Context, id, ownerID string) (*content.Node, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE n.id = $1 AND n.owner_id = $2 AND n.deleted_at IS NULL`,
		r.nodeColumns(), r.nodeJoins())

	executor := postgres.GetExecutor(ctx, r.pool)
	node, err := scanNode(executor.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("node %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get node: %w", err)
	}

	return node, nil
}

// GetByIDIncludeDeleted retrieves a node regardless of soft-delete state
func (r *PostgresNodeRepository) GetByIDIncludeDeleted(ctx context.Context, id, ownerID string) (*content.Node, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE n.id = $1 AND n.owner_id = $2`,
		r.nodeColumns(), r.nodeJoins())

	executor := postgres.GetExecutor(ctx, r.pool)
	node, err := scanNode(executor.QueryRow(ctx, query, id, ownerID))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, fmt.Errorf("node %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get node: %w", err)
	}

	return node, nil
}

// Update persists title, slug, parent and display order changes
func (r *PostgresNodeRepository) Update(ctx context.Context, node *content.Node) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, slug = $2, parent_id = $3, display_order = $4, updated_at = $5
		WHERE id = $6 AND owner_id = $7 AND deleted_at IS NULL
	`, r.tables.Nodes)

	executor := postgres.GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query,
		node.Title,
		node.Slug,
		node.ParentID,
		node.DisplayOrder,
		node.UpdatedAt,
		node.ID,
		node.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("update node: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("node %s: %w", node.ID, domain.ErrNotFound)
	}

	return nil
}

// SoftDelete stamps deleted_at on a single node
func (r *PostgresNodeRepository) SoftDelete(ctx context.Context, id, ownerID string, at time.Time) error {
	query := fmt.Sprintf(`
		UPDATE %s SET deleted_at = $1, updated_at = $1
		WHERE id = $2 AND owner_id = $3 AND deleted_at IS NULL
	`, r.tables.Nodes)

	executor := postgres.GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, at, id, ownerID)
	if err != nil {
		return fmt.Errorf("soft delete node: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("node %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Restore clears deleted_at on a single node
func (r *PostgresNodeRepository) Restore(ctx context.Context, id, ownerID string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET deleted_at = NULL, updated_at = $1
		WHERE id = $2 AND owner_id = $3 AND deleted_at IS NOT NULL
	`, r.tables.Nodes)

	executor := postgres.GetExecutor(ctx, r.pool)
	tag, err := executor.Exec(ctx, query, time.Now(), id, ownerID)
	if err != nil {
		return fmt.Errorf("restore node: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("node %s is not deleted: %w", id, domain.ErrValidation)
	}

	return nil
}

// ListChildren lists immediate, non-deleted children of a node
func (r *PostgresNodeRepository) ListChildren(ctx context.Context, parentID *string, ownerID string) ([]content.Node, error) {
	var query string
	var args []interface{}

	if parentID == nil {
		query = fmt.Sprintf(`SELECT %s %s WHERE n.parent_id IS NULL AND n.owner_id = $1 AND n.deleted_at IS NULL
			ORDER BY n.display_order ASC, n.title ASC`, r.nodeColumns(), r.nodeJoins())
		args = []interface{}{ownerID}
	} else {
		query = fmt.Sprintf(`SELECT %s %s WHERE n.parent_id = $1 AND n.owner_id = $2 AND n.deleted_at IS NULL
			ORDER BY n.display_order ASC, n.title ASC`, r.nodeColumns(), r.nodeJoins())
		args = []interface{}{*parentID, ownerID}
	}

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	defer rows.Close()

	return collectNodes(rows)
}

// ListByOwner retrieves the owner's entire flat node set in one query.
// No pagination: the whole tree is assembled per fetch.
func (r *PostgresNodeRepository) ListByOwner(ctx context.Context, ownerID string, includeDeleted bool) ([]content.Node, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE n.owner_id = $1`, r.nodeColumns(), r.nodeJoins())
	if !includeDeleted {
		query += " AND n.deleted_at IS NULL"
	}

	executor := postgres.GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list nodes by owner: %w", err)
	}
	defer rows.Close()

	return collectNodes(rows)
}

// collectNodes drains a joined result set into a node slice
func collectNodes(rows pgx.Rows) ([]content.Node, error) {
	var nodes []content.Node
	for rows.Next() {
		node, err := scanNode(rows)
		if err != nil {
			return nil, fmt.Errorf("scan node: %w", err)
		}
		nodes = append(nodes, *node)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nodes: %w", err)
	}
	return nodes, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

func derefInt64(i *int64) int64 {
	if i == nil {
		return 0
	}
	return *i
}
