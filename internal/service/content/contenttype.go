package content

import (
	"garden/internal/domain"
	"garden/internal/domain/models/content"
)

// DeriveContentType computes a node's discriminant from payload presence.
// First match wins; the order below is the authoritative tie-break for
// malformed rows that carry more than one payload. Total: every node
// derives to exactly one type, a node with no payload is a folder.
func DeriveContentType(n *content.Node) content.ContentType {
	switch {
	case n.Note != nil:
		return content.TypeNote
	case n.File != nil:
		return content.TypeFile
	case n.HTML != nil:
		if n.HTML.IsTemplate {
			return content.TypeTemplate
		}
		return content.TypeHTML
	case n.Code != nil:
		return content.TypeCode
	case n.External != nil:
		return content.TypeExternal
	case n.Chat != nil:
		return content.TypeChat
	case n.Visualization != nil:
		return content.TypeVisualization
	default:
		return content.TypeFolder
	}
}

// ValidatePayloads checks the at-most-one-payload invariant. A count
// above one returns *domain.IntegrityError; callers on read paths log it
// and keep serving the node via first-match derivation rather than making
// the owner's content unreadable.
func ValidatePayloads(n *content.Node) error {
	count := 0
	if n.Note != nil {
		count++
	}
	if n.File != nil {
		count++
	}
	if n.HTML != nil {
		count++
	}
	if n.Code != nil {
		count++
	}
	if n.External != nil {
		count++
	}
	if n.Chat != nil {
		count++
	}
	if n.Visualization != nil {
		count++
	}

	if count > 1 {
		return &domain.IntegrityError{NodeID: n.ID, PayloadCount: count}
	}
	return nil
}
