package content

import (
	"context"
	"fmt"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/microcosm-cc/bluemonday"

	contentSvc "garden/internal/domain/services/content"
)

// htmlIngestor prepares user-supplied HTML payloads for storage in two
// stages: sanitize (strip scripts, event handlers, javascript: URLs),
// then convert the sanitized result to markdown for indexing and word
// counts. Thread-safe for concurrent use.
type htmlIngestor struct {
	policy    *bluemonday.Policy
	converter *md.Converter
}

// NewHTMLIngestor creates a new HTML ingestor with a UGC sanitization
// policy (common formatting allowed, XSS vectors stripped).
func NewHTMLIngestor() contentSvc.HTMLIngestor {
	policy := bluemonday.UGCPolicy()
	policy.AllowDataURIImages()

	return &htmlIngestor{
		policy:    policy,
		converter: md.NewConverter("", true, nil),
	}
}

// Ingest sanitizes raw HTML and converts it to markdown.
func (s *htmlIngestor) Ingest(ctx context.Context, rawHTML string) (string, string, error) {
	sanitized := s.policy.Sanitize(rawHTML)

	markdown, err := s.converter.ConvertString(sanitized)
	if err != nil {
		return "", "", fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}

	return sanitized, markdown, nil
}
