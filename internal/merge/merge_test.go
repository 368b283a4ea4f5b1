package merge

import (
	"reflect"
	"testing"
)

func TestDeep(t *testing.T) {
	tests := []struct {
		name     string
		base     map[string]any
		overlay  map[string]any
		expected map[string]any
	}{
		{
			name:     "nil base",
			base:     nil,
			overlay:  map[string]any{"name": "Alice"},
			expected: map[string]any{"name": "Alice"},
		},
		{
			name:     "nil overlay",
			base:     map[string]any{"name": "Alice"},
			overlay:  nil,
			expected: map[string]any{"name": "Alice"},
		},
		{
			name:     "overlay wins on scalar",
			base:     map[string]any{"font": "Inter"},
			overlay:  map[string]any{"font": "Lora"},
			expected: map[string]any{"font": "Lora"},
		},
		{
			name: "base fields survive under merged map",
			base: map[string]any{
				"theme": map[string]any{"primary": "#111111", "font": "Inter"},
			},
			overlay: map[string]any{
				"theme": map[string]any{"primary": "#ff0000"},
			},
			expected: map[string]any{
				"theme": map[string]any{"primary": "#ff0000", "font": "Inter"},
			},
		},
		{
			name: "slices replaced wholesale",
			base: map[string]any{
				"sections": []any{map[string]any{"id": "a"}},
			},
			overlay: map[string]any{
				"sections": []any{},
			},
			expected: map[string]any{
				"sections": []any{},
			},
		},
		{
			name: "map replaces scalar",
			base: map[string]any{"seo": "none"},
			overlay: map[string]any{
				"seo": map[string]any{"title": "Home"},
			},
			expected: map[string]any{
				"seo": map[string]any{"title": "Home"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Deep(tt.base, tt.overlay)
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Deep() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDeepIdempotent(t *testing.T) {
	defaults := map[string]any{
		"theme": map[string]any{"primary": "#111111", "font": "Inter"},
		"name":  "My Site",
	}
	doc := map[string]any{
		"theme": map[string]any{"primary": "#222222"},
		"name":  "Alice",
	}

	once := Deep(defaults, doc)
	twice := Deep(defaults, once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("merge not idempotent: first %v, second %v", once, twice)
	}
}

func TestDeepDoesNotAliasInputs(t *testing.T) {
	base := map[string]any{"theme": map[string]any{"font": "Inter"}}
	overlay := map[string]any{"theme": map[string]any{"primary": "#111111"}}

	got := Deep(base, overlay)
	got["theme"].(map[string]any)["font"] = "changed"

	if base["theme"].(map[string]any)["font"] != "Inter" {
		t.Error("Deep() result aliases base map")
	}
	if _, ok := overlay["theme"].(map[string]any)["font"]; ok {
		t.Error("Deep() result aliases overlay map")
	}
}

func TestGetByPath(t *testing.T) {
	data := map[string]any{
		"theme": map[string]any{
			"colors": map[string]any{"primary": "#111111"},
		},
		"name": "Alice",
	}

	tests := []struct {
		path     string
		expected any
		found    bool
	}{
		{"name", "Alice", true},
		{"theme.colors.primary", "#111111", true},
		{"theme.colors.missing", nil, false},
		{"name.nested", nil, false},
		{"", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, found := GetByPath(data, tt.path)
			if found != tt.found || got != tt.expected {
				t.Errorf("GetByPath(%q) = (%v, %v), want (%v, %v)",
					tt.path, got, found, tt.expected, tt.found)
			}
		})
	}
}

func TestSetByPath(t *testing.T) {
	t.Run("creates intermediate maps", func(t *testing.T) {
		data := map[string]any{}
		SetByPath(data, "theme.colors.primary", "#abc")

		got, found := GetByPath(data, "theme.colors.primary")
		if !found || got != "#abc" {
			t.Errorf("got (%v, %v), want (#abc, true)", got, found)
		}
	})

	t.Run("replaces non-map intermediates", func(t *testing.T) {
		data := map[string]any{"theme": "dark"}
		SetByPath(data, "theme.primary", "#abc")

		got, found := GetByPath(data, "theme.primary")
		if !found || got != "#abc" {
			t.Errorf("got (%v, %v), want (#abc, true)", got, found)
		}
	})

	t.Run("sibling values untouched", func(t *testing.T) {
		data := map[string]any{
			"theme": map[string]any{"font": "Inter"},
		}
		SetByPath(data, "theme.primary", "#abc")

		if data["theme"].(map[string]any)["font"] != "Inter" {
			t.Error("sibling value was modified")
		}
	})
}

func TestDiffPaths(t *testing.T) {
	old := map[string]any{
		"name": "Alice",
		"theme": map[string]any{
			"primary": "#111111",
			"font":    "Inter",
		},
	}
	new := map[string]any{
		"name": "Alice",
		"slug": "alice",
		"theme": map[string]any{
			"primary": "#222222",
		},
	}

	added, modified, removed := DiffPaths(old, new)

	if !reflect.DeepEqual(added, []string{"slug"}) {
		t.Errorf("added = %v, want [slug]", added)
	}
	if !reflect.DeepEqual(modified, []string{"theme.primary"}) {
		t.Errorf("modified = %v, want [theme.primary]", modified)
	}
	if !reflect.DeepEqual(removed, []string{"theme.font"}) {
		t.Errorf("removed = %v, want [theme.font]", removed)
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"both nil", nil, nil, true},
		{"one nil", nil, "x", false},
		{"equal scalars", "a", "a", true},
		{"unequal scalars", 1, 2, false},
		{"equal nested", map[string]any{"a": []any{1, 2}}, map[string]any{"a": []any{1, 2}}, true},
		{"different lengths", []any{1}, []any{1, 2}, false},
		{"map vs slice", map[string]any{}, []any{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
