package viewers

import (
	"embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"garden/internal/domain/models/content"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Registry maps derived content types to viewer capabilities.
// Loaded once from embedded YAML at startup; read-only afterwards.
type Registry struct {
	viewers map[string]ViewerCapabilities
	mu      sync.RWMutex
}

// NewRegistry creates a new viewer registry from the embedded YAML file.
// Every derivable content type must be covered; a gap is a packaging
// error surfaced at startup, not at render time.
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/viewers.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read viewers config: %w", err)
	}

	var cfg viewerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal viewers config: %w", err)
	}

	r := &Registry{viewers: make(map[string]ViewerCapabilities, len(cfg.Viewers))}
	for contentType, caps := range cfg.Viewers {
		caps.ContentType = contentType
		r.viewers[contentType] = caps
	}

	for _, ct := range content.AllContentTypes {
		if _, ok := r.viewers[string(ct)]; !ok {
			return nil, fmt.Errorf("viewers config missing content type %q", ct)
		}
	}

	return r, nil
}

// Get returns the viewer capabilities for a content type
func (r *Registry) Get(contentType content.ContentType) (*ViewerCapabilities, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	caps, ok := r.viewers[string(contentType)]
	if !ok {
		return nil, fmt.Errorf("unknown content type: %s", contentType)
	}
	return &caps, nil
}

// List returns all viewer capabilities ordered by content type
func (r *Registry) List() []ViewerCapabilities {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]ViewerCapabilities, 0, len(r.viewers))
	for _, caps := range r.viewers {
		all = append(all, caps)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].ContentType < all[j].ContentType
	})
	return all
}
