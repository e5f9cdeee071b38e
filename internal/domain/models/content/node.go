package content

import (
	"time"
)

// ContentType is the derived discriminant of a content node. It is never
// stored: it is computed from which payload row is attached to the node,
// so it cannot diverge from the actual payload state.
type ContentType string

const (
	TypeNote          ContentType = "note"
	TypeFile          ContentType = "file"
	TypeHTML          ContentType = "html"
	TypeTemplate      ContentType = "template"
	TypeCode          ContentType = "code"
	TypeExternal      ContentType = "external"
	TypeChat          ContentType = "chat"
	TypeVisualization ContentType = "visualization"
	TypeFolder        ContentType = "folder"
)

// AllContentTypes lists every derivable type. Used to pre-populate
// per-type stats so response payloads always carry the full key set.
var AllContentTypes = []ContentType{
	TypeNote,
	TypeFile,
	TypeHTML,
	TypeTemplate,
	TypeCode,
	TypeExternal,
	TypeChat,
	TypeVisualization,
	TypeFolder,
}

// UploadStatus tracks the two-phase file upload lifecycle.
type UploadStatus string

const (
	UploadStatusPending UploadStatus = "pending"
	UploadStatusReady   UploadStatus = "ready"
	UploadStatusFailed  UploadStatus = "failed"
)

// Node is a single row in the content hierarchy. A node carries at most
// one payload summary; a node with no payload is a folder.
type Node struct {
	ID           string     `json:"id" db:"id"`
	OwnerID      string     `json:"owner_id" db:"owner_id"`
	ParentID     *string    `json:"parent_id" db:"parent_id"` // NULL = root level
	Title        string     `json:"title" db:"title"`
	Slug         string     `json:"slug" db:"slug"`
	DisplayOrder int        `json:"display_order" db:"display_order"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`

	// Payload summaries. At most one is non-nil; more than one is a
	// data-integrity violation detected by ValidatePayloads.
	Note          *NoteSummary          `json:"note,omitempty"`
	File          *FileSummary          `json:"file,omitempty"`
	HTML          *HTMLSummary          `json:"html,omitempty"`
	Code          *CodeSummary          `json:"code,omitempty"`
	External      *ExternalSummary      `json:"external,omitempty"`
	Chat          *ChatSummary          `json:"chat,omitempty"`
	Visualization *VisualizationSummary `json:"visualization,omitempty"`
}

// NoteSummary carries rich-text note metadata (content lives in its own table).
type NoteSummary struct {
	WordCount int `json:"word_count" db:"word_count"`
	CharCount int `json:"char_count" db:"char_count"`
}

// FileSummary carries uploaded file metadata.
type FileSummary struct {
	FileName     string       `json:"file_name" db:"file_name"`
	MimeType     string       `json:"mime_type" db:"mime_type"`
	FileSize     int64        `json:"file_size" db:"file_size"`
	UploadStatus UploadStatus `json:"upload_status" db:"upload_status"`
	ThumbnailURL *string      `json:"thumbnail_url,omitempty" db:"thumbnail_url"`
}

// HTMLSummary carries html/template document metadata.
// IsTemplate distinguishes the "template" derived type from plain "html".
type HTMLSummary struct {
	IsTemplate bool `json:"is_template" db:"is_template"`
	WordCount  int  `json:"word_count" db:"word_count"`
}

// CodeSummary carries code snippet metadata.
type CodeSummary struct {
	Language  string `json:"language" db:"language"`
	LineCount int    `json:"line_count" db:"line_count"`
}

// ExternalSummary carries external link metadata.
type ExternalSummary struct {
	URL    string `json:"url" db:"url"`
	Domain string `json:"domain" db:"domain"`
}

// ChatSummary carries saved chat transcript metadata.
type ChatSummary struct {
	MessageCount int    `json:"message_count" db:"message_count"`
	Model        string `json:"model" db:"model"`
}

// VisualizationSummary carries visualization metadata.
type VisualizationSummary struct {
	Kind string `json:"kind" db:"kind"`
}
