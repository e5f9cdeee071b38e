package content

// ContentAnalyzer computes text metrics for note payloads.
type ContentAnalyzer interface {
	// CountWords counts words in markdown text, ignoring markdown syntax
	CountWords(markdown string) int

	// CountChars counts characters (runes) in markdown text after
	// stripping markdown syntax
	CountChars(markdown string) int

	// CleanMarkdown removes markdown syntax from text
	CleanMarkdown(markdown string) string
}
