package schema

import "testing"

func validCandidate() map[string]any {
	return map[string]any{
		"site_settings": map[string]any{
			"name": "Alice",
			"theme": map[string]any{
				"primary": "#111111",
			},
		},
		"sections": []any{},
	}
}

func TestValidateSiteDocument(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]any)
		want   bool
	}{
		{
			name:   "valid minimal document",
			mutate: func(m map[string]any) {},
			want:   true,
		},
		{
			name: "valid with sections",
			mutate: func(m map[string]any) {
				m["sections"] = []any{
					map[string]any{"id": "hero-1", "type": "hero", "props": map[string]any{}},
				}
			},
			want: true,
		},
		{
			name:   "missing site_settings",
			mutate: func(m map[string]any) { delete(m, "site_settings") },
			want:   false,
		},
		{
			name: "site_settings not an object",
			mutate: func(m map[string]any) {
				m["site_settings"] = "oops"
			},
			want: false,
		},
		{
			name: "empty name",
			mutate: func(m map[string]any) {
				m["site_settings"].(map[string]any)["name"] = ""
			},
			want: false,
		},
		{
			name: "missing theme",
			mutate: func(m map[string]any) {
				delete(m["site_settings"].(map[string]any), "theme")
			},
			want: false,
		},
		{
			name: "missing theme.primary",
			mutate: func(m map[string]any) {
				m["site_settings"].(map[string]any)["theme"] = map[string]any{}
			},
			want: false,
		},
		{
			name:   "sections not an array",
			mutate: func(m map[string]any) { m["sections"] = map[string]any{} },
			want:   false,
		},
		{
			name:   "missing sections",
			mutate: func(m map[string]any) { delete(m, "sections") },
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := validCandidate()
			tt.mutate(candidate)
			if got := ValidateSiteDocument(candidate); got != tt.want {
				t.Errorf("ValidateSiteDocument() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("nil candidate", func(t *testing.T) {
		if ValidateSiteDocument(nil) {
			t.Error("ValidateSiteDocument(nil) = true, want false")
		}
	})
}

func TestCheckSiteDocumentCollectsAllErrors(t *testing.T) {
	errs := CheckSiteDocument(map[string]any{
		"site_settings": map[string]any{"name": ""},
		"sections":      "nope",
	})

	if errs.Len() != 3 {
		t.Fatalf("Len() = %d, want 3: %v", errs.Len(), errs)
	}
	if len(errs.ErrorsForPath("site_settings.name")) != 1 {
		t.Error("expected an error for site_settings.name")
	}
	if len(errs.ErrorsForPath("site_settings.theme")) != 1 {
		t.Error("expected an error for site_settings.theme")
	}
	if len(errs.ErrorsForPath("sections")) != 1 {
		t.Error("expected an error for sections")
	}
}

func TestValidateSection(t *testing.T) {
	tests := []struct {
		name      string
		candidate map[string]any
		want      bool
	}{
		{
			name: "valid",
			candidate: map[string]any{
				"id": "hero-1", "type": "hero", "props": map[string]any{},
			},
			want: true,
		},
		{
			name: "empty id",
			candidate: map[string]any{
				"id": "", "type": "hero", "props": map[string]any{},
			},
			want: false,
		},
		{
			name: "missing type",
			candidate: map[string]any{
				"id": "hero-1", "props": map[string]any{},
			},
			want: false,
		},
		{
			name: "array props",
			candidate: map[string]any{
				"id": "hero-1", "type": "hero", "props": []any{},
			},
			want: false,
		},
		{
			name: "primitive props",
			candidate: map[string]any{
				"id": "hero-1", "type": "hero", "props": "text",
			},
			want: false,
		},
		{
			name: "null props",
			candidate: map[string]any{
				"id": "hero-1", "type": "hero", "props": nil,
			},
			want: false,
		},
		{
			name:      "nil candidate",
			candidate: nil,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateSection(tt.candidate); got != tt.want {
				t.Errorf("ValidateSection() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateRawDocument(t *testing.T) {
	tests := []struct {
		name string
		data string
		want bool
	}{
		{
			name: "valid",
			data: `{"site_settings":{"name":"Alice","theme":{"primary":"#111111"}},"sections":[]}`,
			want: true,
		},
		{
			name: "unknown type tolerated",
			data: `{"site_settings":{"name":"A","theme":{"primary":"#fff"}},"sections":[{"id":"x","type":"widget","props":{}}]}`,
			want: true,
		},
		{
			name: "not json",
			data: `{"site_settings":`,
			want: false,
		},
		{
			name: "top level array",
			data: `[]`,
			want: false,
		},
		{
			name: "missing primary",
			data: `{"site_settings":{"name":"Alice","theme":{}},"sections":[]}`,
			want: false,
		},
		{
			name: "sections is object",
			data: `{"site_settings":{"name":"Alice","theme":{"primary":"#111111"}},"sections":{}}`,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateRawDocument([]byte(tt.data)); got != tt.want {
				t.Errorf("ValidateRawDocument() = %v, want %v", got, tt.want)
			}
		})
	}
}
