package content

import (
	"testing"

	"garden/internal/domain/models/content"
)

// strPtr is a test helper for parent_id literals.
func strPtr(s string) *string {
	return &s
}

func folderNode(id string, parentID *string, title string, displayOrder int) content.Node {
	return content.Node{
		ID:           id,
		OwnerID:      "owner-1",
		ParentID:     parentID,
		Title:        title,
		DisplayOrder: displayOrder,
	}
}

func noteNode(id string, parentID *string, title string, displayOrder int) content.Node {
	n := folderNode(id, parentID, title, displayOrder)
	n.Note = &content.NoteSummary{WordCount: 1}
	return n
}

// collectIDs walks the forest depth-first and returns every node ID.
func collectIDs(roots []*content.TreeNode) []string {
	var ids []string
	var walk func(tn *content.TreeNode)
	walk = func(tn *content.TreeNode) {
		ids = append(ids, tn.ID)
		for _, child := range tn.Children {
			walk(child)
		}
	}
	for _, root := range roots {
		walk(root)
	}
	return ids
}

func TestBuildTree_EmptyInput(t *testing.T) {
	tree := BuildTree(nil)

	if tree == nil {
		t.Fatal("BuildTree(nil) = nil, want empty tree")
	}
	if len(tree.Roots) != 0 {
		t.Errorf("Roots = %d, want 0", len(tree.Roots))
	}
	if tree.Stats.TotalNodes != 0 || tree.Stats.RootNodes != 0 || tree.Stats.MaxDepth != 0 {
		t.Errorf("Stats = %+v, want all zero", tree.Stats)
	}
	// Every known type must still be present with a zero count.
	for _, ct := range content.AllContentTypes {
		if count, ok := tree.Stats.ByType[ct]; !ok || count != 0 {
			t.Errorf("ByType[%s] = %d (present=%v), want 0", ct, count, ok)
		}
	}
}

func TestBuildTree_PreservesEveryNode(t *testing.T) {
	nodes := []content.Node{
		folderNode("root", nil, "Root", 0),
		noteNode("a", strPtr("root"), "A", 0),
		noteNode("b", strPtr("root"), "B", 1),
		noteNode("orphan", strPtr("missing-parent"), "Orphan", 0),
		folderNode("loose", nil, "Loose", 5),
	}

	tree := BuildTree(nodes)

	if tree.Stats.TotalNodes != len(nodes) {
		t.Errorf("TotalNodes = %d, want %d", tree.Stats.TotalNodes, len(nodes))
	}

	seen := make(map[string]bool)
	for _, id := range collectIDs(tree.Roots) {
		if seen[id] {
			t.Errorf("node %q appears more than once in the forest", id)
		}
		seen[id] = true
	}
	for _, n := range nodes {
		if !seen[n.ID] {
			t.Errorf("node %q missing from the forest", n.ID)
		}
	}
}

func TestBuildTree_OrphanPromotedToRoot(t *testing.T) {
	nodes := []content.Node{
		folderNode("root", nil, "Root", 0),
		noteNode("orphan", strPtr("gone"), "Orphan", 0),
	}

	tree := BuildTree(nodes)

	if len(tree.Roots) != 2 {
		t.Fatalf("Roots = %d, want 2 (orphan promoted)", len(tree.Roots))
	}
	if tree.Stats.RootNodes != 2 {
		t.Errorf("RootNodes = %d, want 2", tree.Stats.RootNodes)
	}

	var found bool
	for _, root := range tree.Roots {
		if root.ID == "orphan" {
			found = true
			// Promotion keeps the stale parent_id; only placement changes.
			if root.ParentID == nil || *root.ParentID != "gone" {
				t.Errorf("orphan ParentID = %v, want %q preserved", root.ParentID, "gone")
			}
		}
	}
	if !found {
		t.Error("orphan not found at root level")
	}
}

func TestBuildTree_ChildBeforeParentInInput(t *testing.T) {
	// Input order must not matter: child row precedes its parent row.
	nodes := []content.Node{
		noteNode("child", strPtr("parent"), "Child", 0),
		folderNode("parent", nil, "Parent", 0),
	}

	tree := BuildTree(nodes)

	if len(tree.Roots) != 1 {
		t.Fatalf("Roots = %d, want 1", len(tree.Roots))
	}
	parent := tree.Roots[0]
	if parent.ID != "parent" {
		t.Fatalf("root = %q, want %q", parent.ID, "parent")
	}
	if len(parent.Children) != 1 || parent.Children[0].ID != "child" {
		t.Errorf("parent.Children = %v, want [child]", collectIDs(parent.Children))
	}
}

func TestBuildTree_SiblingOrdering(t *testing.T) {
	// display_order ascending, title ascending on ties.
	nodes := []content.Node{
		noteNode("banana", nil, "Banana", 5),
		noteNode("apple", nil, "Apple", 5),
		noteNode("cherry", nil, "Cherry", 1),
	}

	tree := BuildTree(nodes)

	got := make([]string, len(tree.Roots))
	for i, root := range tree.Roots {
		got[i] = root.Title
	}
	want := []string{"Cherry", "Apple", "Banana"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("root order = %v, want %v", got, want)
		}
	}
}

func TestBuildTree_NestedSiblingOrdering(t *testing.T) {
	nodes := []content.Node{
		folderNode("root", nil, "Root", 0),
		noteNode("z", strPtr("root"), "Zebra", 2),
		noteNode("a", strPtr("root"), "Aardvark", 1),
		noteNode("m", strPtr("root"), "Mole", 1),
	}

	tree := BuildTree(nodes)

	children := tree.Roots[0].Children
	got := make([]string, len(children))
	for i, c := range children {
		got[i] = c.Title
	}
	want := []string{"Aardvark", "Mole", "Zebra"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("children order = %v, want %v", got, want)
		}
	}
}

func TestBuildTree_MaxDepth(t *testing.T) {
	tests := []struct {
		name  string
		nodes []content.Node
		want  int
	}{
		{
			name: "root-level leaves report zero",
			nodes: []content.Node{
				noteNode("a", nil, "A", 0),
				noteNode("b", nil, "B", 1),
			},
			want: 0,
		},
		{
			name: "one level of nesting",
			nodes: []content.Node{
				folderNode("root", nil, "Root", 0),
				noteNode("child", strPtr("root"), "Child", 0),
			},
			want: 1,
		},
		{
			name: "root child grandchild counts two edges",
			nodes: []content.Node{
				folderNode("root", nil, "Root", 0),
				folderNode("child", strPtr("root"), "Child", 0),
				noteNode("grandchild", strPtr("child"), "Grandchild", 0),
			},
			want: 2,
		},
		{
			name: "depth follows the deepest branch only",
			nodes: []content.Node{
				folderNode("root", nil, "Root", 0),
				noteNode("shallow", strPtr("root"), "Shallow", 0),
				folderNode("mid", strPtr("root"), "Mid", 1),
				folderNode("deep", strPtr("mid"), "Deep", 0),
				noteNode("deepest", strPtr("deep"), "Deepest", 0),
			},
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := BuildTree(tt.nodes)
			if tree.Stats.MaxDepth != tt.want {
				t.Errorf("MaxDepth = %d, want %d", tree.Stats.MaxDepth, tt.want)
			}
		})
	}
}

func TestBuildTree_Stats(t *testing.T) {
	nodes := []content.Node{
		folderNode("root", nil, "Root", 0),
		noteNode("n1", strPtr("root"), "Note One", 0),
		noteNode("n2", strPtr("root"), "Note Two", 1),
		{
			ID: "code", OwnerID: "owner-1", ParentID: strPtr("root"),
			Title: "Snippet", DisplayOrder: 2,
			Code: &content.CodeSummary{Language: "go", LineCount: 12},
		},
		{
			ID: "link", OwnerID: "owner-1",
			Title: "Bookmark", DisplayOrder: 0,
			External: &content.ExternalSummary{URL: "https://example.com", Domain: "example.com"},
		},
	}

	tree := BuildTree(nodes)

	if tree.Stats.TotalNodes != 5 {
		t.Errorf("TotalNodes = %d, want 5", tree.Stats.TotalNodes)
	}
	if tree.Stats.RootNodes != 2 {
		t.Errorf("RootNodes = %d, want 2", tree.Stats.RootNodes)
	}

	wantByType := map[content.ContentType]int{
		content.TypeFolder:   1,
		content.TypeNote:     2,
		content.TypeCode:     1,
		content.TypeExternal: 1,
	}
	sum := 0
	for ct, count := range tree.Stats.ByType {
		sum += count
		if want := wantByType[ct]; count != want {
			t.Errorf("ByType[%s] = %d, want %d", ct, count, want)
		}
	}
	if sum != tree.Stats.TotalNodes {
		t.Errorf("ByType sums to %d, want TotalNodes %d", sum, tree.Stats.TotalNodes)
	}
}

func TestBuildTree_Deterministic(t *testing.T) {
	nodes := []content.Node{
		folderNode("root", nil, "Root", 0),
		noteNode("b", strPtr("root"), "B", 1),
		noteNode("a", strPtr("root"), "A", 1),
		noteNode("orphan", strPtr("missing"), "Orphan", 0),
	}

	first := BuildTree(nodes)
	second := BuildTree(nodes)

	firstIDs := collectIDs(first.Roots)
	secondIDs := collectIDs(second.Roots)
	if len(firstIDs) != len(secondIDs) {
		t.Fatalf("traversal lengths differ: %d vs %d", len(firstIDs), len(secondIDs))
	}
	for i := range firstIDs {
		if firstIDs[i] != secondIDs[i] {
			t.Fatalf("traversal differs at %d: %q vs %q", i, firstIDs[i], secondIDs[i])
		}
	}
	if first.Stats.MaxDepth != second.Stats.MaxDepth || first.Stats.RootNodes != second.Stats.RootNodes {
		t.Errorf("stats differ across builds: %+v vs %+v", first.Stats, second.Stats)
	}
}

func TestBuildTree_DoesNotMutateInput(t *testing.T) {
	nodes := []content.Node{
		folderNode("root", nil, "Root", 0),
		noteNode("child", strPtr("root"), "Child", 0),
	}

	BuildTree(nodes)

	if nodes[1].ParentID == nil || *nodes[1].ParentID != "root" {
		t.Errorf("input node mutated: ParentID = %v", nodes[1].ParentID)
	}
	if nodes[0].Title != "Root" || nodes[1].Title != "Child" {
		t.Error("input node titles mutated")
	}
}
