package content

import (
	"sort"

	"garden/internal/domain/models/content"
)

// BuildTree assembles a flat, unordered node set for one owner into an
// ordered forest with aggregate stats. Pure and allocation-only: no I/O,
// no shared state across calls, never fails.
//
// Policy notes:
//   - A node whose parent_id does not resolve within the input set is an
//     orphan and is promoted to the root list. Dropping it would make the
//     owner's content vanish from the UI with no recovery path.
//   - Sibling order is total: display_order ascending, title ascending on
//     ties, so repeated builds over the same input are identical.
func BuildTree(nodes []content.Node) *content.Tree {
	stats := content.TreeStats{
		ByType: make(map[content.ContentType]int, len(content.AllContentTypes)),
	}
	for _, ct := range content.AllContentTypes {
		stats.ByType[ct] = 0
	}

	// Index pass: derive types and create all tree nodes before linking,
	// so a child appearing before its parent in the input is harmless.
	index := make(map[string]*content.TreeNode, len(nodes))
	order := make([]*content.TreeNode, 0, len(nodes))
	for i := range nodes {
		n := &nodes[i]
		ct := DeriveContentType(n)
		tn := &content.TreeNode{
			ID:            n.ID,
			ParentID:      n.ParentID,
			Title:         n.Title,
			Slug:          n.Slug,
			DisplayOrder:  n.DisplayOrder,
			ContentType:   ct,
			CreatedAt:     n.CreatedAt,
			UpdatedAt:     n.UpdatedAt,
			DeletedAt:     n.DeletedAt,
			Children:      []*content.TreeNode{},
			Note:          n.Note,
			File:          n.File,
			HTML:          n.HTML,
			Code:          n.Code,
			External:      n.External,
			Chat:          n.Chat,
			Visualization: n.Visualization,
		}
		index[n.ID] = tn
		order = append(order, tn)

		stats.TotalNodes++
		stats.ByType[ct]++
	}

	// Linking pass: nil parent -> root, resolvable parent -> child,
	// unresolvable parent -> orphan promoted to root.
	roots := make([]*content.TreeNode, 0)
	for _, tn := range order {
		if tn.ParentID == nil {
			roots = append(roots, tn)
			continue
		}
		if parent, exists := index[*tn.ParentID]; exists {
			parent.Children = append(parent.Children, tn)
		} else {
			roots = append(roots, tn)
		}
	}
	stats.RootNodes = len(roots)

	// Ordering pass: depth-first recursive sort of every sibling group.
	sortSiblings(roots)
	for _, tn := range order {
		sortSiblings(tn.Children)
	}

	// Stats pass: max depth is an edge count over the built tree, not a
	// walk of raw parent_id chains, so it terminates regardless of what
	// the source rows claimed.
	maxDepth := 0
	for _, root := range roots {
		if d := subtreeDepth(root); d > maxDepth {
			maxDepth = d
		}
	}
	stats.MaxDepth = maxDepth

	return &content.Tree{
		Roots: roots,
		Stats: stats,
	}
}

// sortSiblings orders one sibling group: display_order ascending, then
// title ascending (case-sensitive) to break ties deterministically.
func sortSiblings(siblings []*content.TreeNode) {
	sort.SliceStable(siblings, func(i, j int) bool {
		if siblings[i].DisplayOrder != siblings[j].DisplayOrder {
			return siblings[i].DisplayOrder < siblings[j].DisplayOrder
		}
		return siblings[i].Title < siblings[j].Title
	})
}

// subtreeDepth returns the edge count from tn to its deepest descendant
// (0 for a leaf).
func subtreeDepth(tn *content.TreeNode) int {
	max := 0
	for _, child := range tn.Children {
		if d := subtreeDepth(child) + 1; d > max {
			max = d
		}
	}
	return max
}
