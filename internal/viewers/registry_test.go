package viewers

import (
	"sort"
	"testing"

	"garden/internal/domain/models/content"
)

func TestNewRegistry_CoversEveryContentType(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	for _, ct := range content.AllContentTypes {
		caps, err := registry.Get(ct)
		if err != nil {
			t.Errorf("Get(%s) error = %v", ct, err)
			continue
		}
		if caps.DisplayName == "" {
			t.Errorf("%s: DisplayName is empty", ct)
		}
		if caps.Component == "" {
			t.Errorf("%s: Component is empty", ct)
		}
	}
}

func TestRegistry_OnlyFoldersAcceptChildren(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	for _, caps := range registry.List() {
		wantChildren := caps.ContentType == string(content.TypeFolder)
		if caps.AcceptsChildren != wantChildren {
			t.Errorf("%s: AcceptsChildren = %v, want %v", caps.ContentType, caps.AcceptsChildren, wantChildren)
		}
	}
}

func TestRegistry_GetUnknownType(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	if _, err := registry.Get(content.ContentType("hologram")); err == nil {
		t.Error("Get() on unknown type = nil error, want error")
	}
}

func TestRegistry_ListIsSorted(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	all := registry.List()
	if len(all) != len(content.AllContentTypes) {
		t.Errorf("List() returned %d entries, want %d", len(all), len(content.AllContentTypes))
	}
	sorted := sort.SliceIsSorted(all, func(i, j int) bool {
		return all[i].ContentType < all[j].ContentType
	})
	if !sorted {
		t.Error("List() is not sorted by content type")
	}
}
