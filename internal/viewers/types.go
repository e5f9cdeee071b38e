package viewers

// ViewerCapabilities describes how the rendering layer should present a
// derived content type: which viewer component to mount and what actions
// the tree UI may offer for nodes of that type.
type ViewerCapabilities struct {
	// Content type identifier (set during YAML unmarshaling)
	ContentType string `yaml:"-" json:"content_type"`

	// Display information
	DisplayName string `yaml:"display_name" json:"display_name"`
	Icon        string `yaml:"icon" json:"icon"`
	Component   string `yaml:"component" json:"component"`

	// Tree interaction capabilities
	AcceptsChildren bool `yaml:"accepts_children" json:"accepts_children"`
	Downloadable    bool `yaml:"downloadable" json:"downloadable"`
	Duplicable      bool `yaml:"duplicable" json:"duplicable"`

	// Viewer capabilities
	SupportsPreview bool `yaml:"supports_preview" json:"supports_preview"`
	SupportsEdit    bool `yaml:"supports_edit" json:"supports_edit"`
}

// viewerConfig is the shape of the embedded YAML file
type viewerConfig struct {
	Viewers map[string]ViewerCapabilities `yaml:"viewers"`
}
