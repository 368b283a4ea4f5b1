// Package defaults supplies the compiled-in default props, settings, and
// starter templates the builder seeds documents from.
//
// Everything here is a pure, deterministic lookup: unknown section types
// get an empty props object rather than an error, so adding a section can
// never fail.
package defaults

import "github.com/dshills/siteforge/internal/schema"

// DefaultFont is the font every new site starts with.
const DefaultFont = "Inter"

// sectionDefaults maps section type to its default props. Values mirror
// the literal fallbacks inside each component renderer so a freshly added
// section and a props-less section render identically.
var sectionDefaults = map[string]map[string]any{
	"hero": {
		"heading":    "Welcome to my site",
		"subheading": "I build things on the internet.",
	},
	"cta": {
		"title":       "Ready to get started?",
		"button_text": "Get in touch",
		"button_link": "#contact",
	},
	"text": {
		"body": "Write something here.",
	},
	"features": {
		"heading": "Features",
		"items": []any{
			map[string]any{"title": "Fast", "body": "Loads in a blink."},
			map[string]any{"title": "Simple", "body": "No code required."},
		},
	},
	"navbar": {
		"brand": "My Site",
		"links": []any{
			map[string]any{"label": "Home", "href": "#"},
			map[string]any{"label": "Contact", "href": "#contact"},
		},
	},
	"footer": {
		"text": "Made with siteforge",
	},
	"image": {
		"alt": "",
	},
	"gallery": {
		"heading": "Gallery",
		"images":  []any{},
	},
	"contact": {
		"heading":     "Contact",
		"button_text": "Say hello",
	},
	"layout": {
		"columns": 2,
		"items":   []any{},
	},
}

// For returns the default props for a section type. The result is a fresh
// copy; callers may mutate it. Unknown types get an empty map.
func For(typ string) map[string]any {
	props, ok := sectionDefaults[typ]
	if !ok {
		return map[string]any{}
	}
	return cloneMap(props)
}

// Known reports whether the type has compiled-in defaults.
func Known(typ string) bool {
	_, ok := sectionDefaults[typ]
	return ok
}

// SiteSettings returns the compiled-in default settings. Documents are
// deep-merged against these on every load so fields added to the schema
// after a document was last saved are still present.
func SiteSettings() schema.SiteSettings {
	return schema.SiteSettings{
		Name: "My Site",
		Theme: schema.Theme{
			Primary: "#111111",
			Font:    DefaultFont,
		},
		Layout: schema.Layout{
			MaxWidth:       "960px",
			SectionSpacing: "md",
		},
	}
}

// BaselineStyles returns the fixed styles object new sections start with.
func BaselineStyles() map[string]any {
	return map[string]any{
		"padding": "md",
	}
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
