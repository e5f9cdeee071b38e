package content

import (
	"errors"
	"testing"

	"garden/internal/domain"
	"garden/internal/domain/models/content"
)

func TestDeriveContentType(t *testing.T) {
	tests := []struct {
		name string
		node content.Node
		want content.ContentType
	}{
		{
			name: "no payload is a folder",
			node: content.Node{ID: "n1"},
			want: content.TypeFolder,
		},
		{
			name: "note payload",
			node: content.Node{ID: "n2", Note: &content.NoteSummary{WordCount: 10}},
			want: content.TypeNote,
		},
		{
			name: "file payload",
			node: content.Node{ID: "n3", File: &content.FileSummary{FileName: "a.pdf"}},
			want: content.TypeFile,
		},
		{
			name: "html payload without template flag",
			node: content.Node{ID: "n4", HTML: &content.HTMLSummary{IsTemplate: false}},
			want: content.TypeHTML,
		},
		{
			name: "html payload with template flag",
			node: content.Node{ID: "n5", HTML: &content.HTMLSummary{IsTemplate: true}},
			want: content.TypeTemplate,
		},
		{
			name: "code payload",
			node: content.Node{ID: "n6", Code: &content.CodeSummary{Language: "go"}},
			want: content.TypeCode,
		},
		{
			name: "external payload",
			node: content.Node{ID: "n7", External: &content.ExternalSummary{URL: "https://example.com"}},
			want: content.TypeExternal,
		},
		{
			name: "chat payload",
			node: content.Node{ID: "n8", Chat: &content.ChatSummary{MessageCount: 3}},
			want: content.TypeChat,
		},
		{
			name: "visualization payload",
			node: content.Node{ID: "n9", Visualization: &content.VisualizationSummary{Kind: "graph"}},
			want: content.TypeVisualization,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveContentType(&tt.node); got != tt.want {
				t.Errorf("DeriveContentType() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestDeriveContentType_FirstMatchWins verifies the authoritative
// tie-break order on malformed rows carrying more than one payload.
func TestDeriveContentType_FirstMatchWins(t *testing.T) {
	node := content.Node{
		ID:   "n1",
		Note: &content.NoteSummary{},
		File: &content.FileSummary{},
		Chat: &content.ChatSummary{},
	}

	if got := DeriveContentType(&node); got != content.TypeNote {
		t.Errorf("DeriveContentType() = %q, want %q (note wins over file and chat)", got, content.TypeNote)
	}

	node2 := content.Node{
		ID:            "n2",
		External:      &content.ExternalSummary{},
		Visualization: &content.VisualizationSummary{},
	}
	if got := DeriveContentType(&node2); got != content.TypeExternal {
		t.Errorf("DeriveContentType() = %q, want %q (external wins over visualization)", got, content.TypeExternal)
	}
}

func TestValidatePayloads(t *testing.T) {
	tests := []struct {
		name      string
		node      content.Node
		wantError bool
		wantCount int
	}{
		{
			name: "folder is valid",
			node: content.Node{ID: "n1"},
		},
		{
			name: "single payload is valid",
			node: content.Node{ID: "n2", Note: &content.NoteSummary{}},
		},
		{
			name:      "two payloads violate integrity",
			node:      content.Node{ID: "n3", Note: &content.NoteSummary{}, File: &content.FileSummary{}},
			wantError: true,
			wantCount: 2,
		},
		{
			name: "three payloads violate integrity",
			node: content.Node{
				ID:   "n4",
				HTML: &content.HTMLSummary{},
				Code: &content.CodeSummary{},
				Chat: &content.ChatSummary{},
			},
			wantError: true,
			wantCount: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePayloads(&tt.node)
			if !tt.wantError {
				if err != nil {
					t.Fatalf("ValidatePayloads() = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Fatal("ValidatePayloads() = nil, want integrity error")
			}
			if !errors.Is(err, domain.ErrIntegrity) {
				t.Errorf("errors.Is(err, ErrIntegrity) = false for %v", err)
			}

			var integrityErr *domain.IntegrityError
			if !errors.As(err, &integrityErr) {
				t.Fatalf("error %v is not an *IntegrityError", err)
			}
			if integrityErr.PayloadCount != tt.wantCount {
				t.Errorf("PayloadCount = %d, want %d", integrityErr.PayloadCount, tt.wantCount)
			}
			if integrityErr.NodeID != tt.node.ID {
				t.Errorf("NodeID = %q, want %q", integrityErr.NodeID, tt.node.ID)
			}
		})
	}
}
