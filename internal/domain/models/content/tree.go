package content

import "time"

// Tree is the assembled, ordered forest for one owner plus aggregate
// stats. Built fresh on every fetch and discarded after the response is
// sent - the server holds no long-lived tree state.
type Tree struct {
	Roots []*TreeNode `json:"roots"`
	Stats TreeStats   `json:"stats"`
}

// TreeNode is the rendering-facing projection of a Node: node fields plus
// the derived content type and an ordered children list.
type TreeNode struct {
	ID           string      `json:"id"`
	ParentID     *string     `json:"parent_id"`
	Title        string      `json:"title"`
	Slug         string      `json:"slug"`
	DisplayOrder int         `json:"display_order"`
	ContentType  ContentType `json:"content_type"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
	DeletedAt    *time.Time  `json:"deleted_at,omitempty"`
	Children     []*TreeNode `json:"children"`

	// Optional type-specific summary, keyed by ContentType
	Note          *NoteSummary          `json:"note,omitempty"`
	File          *FileSummary          `json:"file,omitempty"`
	HTML          *HTMLSummary          `json:"html,omitempty"`
	Code          *CodeSummary          `json:"code,omitempty"`
	External      *ExternalSummary      `json:"external,omitempty"`
	Chat          *ChatSummary          `json:"chat,omitempty"`
	Visualization *VisualizationSummary `json:"visualization,omitempty"`
}

// TreeStats aggregates counts over the assembled forest.
// MaxDepth counts edges: an empty forest and a forest of root-level
// leaves both report 0; root -> child -> grandchild reports 2.
type TreeStats struct {
	TotalNodes int                 `json:"total_nodes"`
	RootNodes  int                 `json:"root_nodes"`
	MaxDepth   int                 `json:"max_depth"`
	ByType     map[ContentType]int `json:"by_type"`
}
