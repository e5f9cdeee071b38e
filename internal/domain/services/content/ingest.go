package content

import "context"

// HTMLIngestor prepares user-supplied HTML for storage: strips dangerous
// markup and produces a markdown rendition for indexing and word counts.
type HTMLIngestor interface {
	// Ingest sanitizes raw HTML and converts the sanitized result to
	// markdown. Returns (sanitizedHTML, markdown, error).
	Ingest(ctx context.Context, rawHTML string) (string, string, error)
}
