package httputil

import (
	"encoding/json"
	"testing"
)

func TestOptionalString_UnmarshalJSON(t *testing.T) {
	type patch struct {
		ParentID OptionalString `json:"parent_id"`
	}

	tests := []struct {
		name        string
		body        string
		wantPresent bool
		wantValue   *string
	}{
		{
			name:        "field absent",
			body:        `{}`,
			wantPresent: false,
		},
		{
			name:        "explicit null",
			body:        `{"parent_id": null}`,
			wantPresent: true,
			wantValue:   nil,
		},
		{
			name:        "string value",
			body:        `{"parent_id": "folder-1"}`,
			wantPresent: true,
			wantValue:   ptr("folder-1"),
		},
		{
			name:        "empty string is still a value",
			body:        `{"parent_id": ""}`,
			wantPresent: true,
			wantValue:   ptr(""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p patch
			if err := json.Unmarshal([]byte(tt.body), &p); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}

			if p.ParentID.Present != tt.wantPresent {
				t.Errorf("Present = %v, want %v", p.ParentID.Present, tt.wantPresent)
			}
			if tt.wantValue == nil {
				if p.ParentID.Value != nil {
					t.Errorf("Value = %q, want nil", *p.ParentID.Value)
				}
				return
			}
			if p.ParentID.Value == nil || *p.ParentID.Value != *tt.wantValue {
				t.Errorf("Value = %v, want %q", p.ParentID.Value, *tt.wantValue)
			}
		})
	}
}

func TestOptionalString_RejectsNonString(t *testing.T) {
	var o OptionalString
	if err := json.Unmarshal([]byte(`42`), &o); err == nil {
		t.Error("Unmarshal(42) = nil error, want error")
	}
}

func ptr(s string) *string {
	return &s
}
