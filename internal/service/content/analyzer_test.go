package content

import "testing"

func TestCountWords(t *testing.T) {
	analyzer := NewContentAnalyzer()

	tests := []struct {
		name     string
		markdown string
		want     int
	}{
		{
			name:     "empty string",
			markdown: "",
			want:     0,
		},
		{
			name:     "plain text",
			markdown: "hello world foo",
			want:     3,
		},
		{
			name:     "heading markers stripped",
			markdown: "# Title\n\nSome body text",
			want:     4,
		},
		{
			name:     "bold and italic stripped",
			markdown: "**bold** and *italic* words",
			want:     4,
		},
		{
			name:     "code blocks excluded",
			markdown: "before\n```\ncode line one\ncode line two\n```\nafter",
			want:     2,
		},
		{
			name:     "list markers stripped",
			markdown: "- first item\n- second item",
			want:     4,
		},
		{
			name:     "whitespace only",
			markdown: "   \n\t  ",
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := analyzer.CountWords(tt.markdown); got != tt.want {
				t.Errorf("CountWords(%q) = %d, want %d", tt.markdown, got, tt.want)
			}
		})
	}
}

func TestCountChars(t *testing.T) {
	analyzer := NewContentAnalyzer()

	tests := []struct {
		name     string
		markdown string
		want     int
	}{
		{
			name:     "empty string",
			markdown: "",
			want:     0,
		},
		{
			name:     "plain text",
			markdown: "hello",
			want:     5,
		},
		{
			name:     "whitespace collapsed",
			markdown: "hello    world",
			want:     11,
		},
		{
			name:     "multibyte runes counted once",
			markdown: "héllo",
			want:     5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := analyzer.CountChars(tt.markdown); got != tt.want {
				t.Errorf("CountChars(%q) = %d, want %d", tt.markdown, got, tt.want)
			}
		})
	}
}
