package config

const (
	// MaxTitleLength is the maximum length for node titles.
	// Limited to 255 to fit in PostgreSQL VARCHAR(255) and provide
	// reasonable UX (titles should be short and descriptive).
	MaxTitleLength = 255

	// MaxFileNameLength is the maximum length for uploaded file names.
	// Same as titles for consistency.
	MaxFileNameLength = 255

	// MaxLogFiles is the number of timestamped log files kept on disk
	// before the oldest are removed.
	MaxLogFiles = 10
)
