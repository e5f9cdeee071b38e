package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"garden/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Nodes          string
	Notes          string
	Files          string
	HTMLDocuments  string
	CodeSnippets   string
	ExternalLinks  string
	Chats          string
	Visualizations string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Nodes:          fmt.Sprintf("%scontent_nodes", prefix),
		Notes:          fmt.Sprintf("%snotes", prefix),
		Files:          fmt.Sprintf("%sfiles", prefix),
		HTMLDocuments:  fmt.Sprintf("%shtml_documents", prefix),
		CodeSnippets:   fmt.Sprintf("%scode_snippets", prefix),
		ExternalLinks:  fmt.Sprintf("%sexternal_links", prefix),
		Chats:          fmt.Sprintf("%schats", prefix),
		Visualizations: fmt.Sprintf("%svisualizations", prefix),
	}
}

// CreateConnectionPool creates a new pgx connection pool with automatic
// PgBouncer compatibility.
//
// By default pgx uses prepared statements (QueryExecModeCacheStatement),
// but PgBouncer in transaction pooling mode (port 6543 on Supabase) does
// not support them, causing "prepared statement already exists" errors.
// When port 6543 is detected and no explicit default_query_exec_mode was
// set on the connection string, QueryExecModeCacheDescribe is used: it
// keeps the extended protocol (needed for JSONB encoding of
// map[string]interface{} visualization specs) while caching statement
// descriptions instead of prepared statements.
//
// Note on dynamic table names: the fmt.Sprintf interpolation of table
// prefixes (dev_, test_, prod_) happens before the SQL reaches the
// database, so each environment gets its own statements.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	// Configure pool size
	config.MaxConns = 25
	config.MinConns = 5

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the appropriate query executor for the context.
// If a transaction is present in the context, it returns the transaction;
// otherwise the provided pool. This lets repositories automatically
// participate in transactions when they exist.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
