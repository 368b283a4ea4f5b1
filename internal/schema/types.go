// Package schema defines the site document model and its validation
// contract.
//
// A site document is the full persisted state of one project: global
// settings plus an ordered list of typed sections. Documents are edited as
// free-form JSON, so validation is deliberately shallow and permissive:
// structural correctness only. Deeper correctness (unknown section types,
// malformed props) is handled downstream by the resolver's per-type
// fallback.
package schema

import "encoding/json"

// SiteDocument is the root persisted and edited unit.
type SiteDocument struct {
	SiteSettings SiteSettings `json:"site_settings"`

	// Sections render top-to-bottom in slice order. Slice order is the
	// only authoritative ordering signal; see Section.Order.
	Sections []Section `json:"sections"`
}

// SiteSettings holds the global, per-site configuration.
type SiteSettings struct {
	Name    string `json:"name"`
	Theme   Theme  `json:"theme"`
	Logo    string `json:"logo,omitempty"`
	Favicon string `json:"favicon,omitempty"`
	Layout  Layout `json:"layout,omitzero"`
	SEO     SEO    `json:"seo,omitzero"`
}

// Theme describes the site-wide visual settings.
type Theme struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary,omitempty"`
	Background string `json:"background,omitempty"`
	Text       string `json:"text,omitempty"`
	Dark       bool   `json:"dark,omitempty"`
	Font       string `json:"font,omitempty"`
}

// Layout holds optional page-level spacing overrides.
type Layout struct {
	FullWidth      bool   `json:"full_width,omitempty"`
	MaxWidth       string `json:"max_width,omitempty"`
	SectionSpacing string `json:"section_spacing,omitempty"`
}

// SEO holds optional search metadata.
type SEO struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// Section is one independently renderable block of a page.
type Section struct {
	// ID is unique within a document. The builder generates
	// "{type}-{timestamp}" ids, but imported documents may carry any
	// non-empty string.
	ID string `json:"id"`

	// Type keys into the component registry. Untrusted: it may name a
	// type the registry does not know.
	Type string `json:"type"`

	// Props is the component-specific payload. Its shape is defined per
	// type by each renderer, not by a global schema.
	Props map[string]any `json:"props"`

	// Styles is container-level presentation (padding, margin,
	// background, max-width, text alignment) interpreted by the
	// resolver's wrapper, not the component.
	Styles map[string]any `json:"styles,omitempty"`

	// Order is a historical sort hint. It is persisted for round-trip
	// fidelity but never consulted: slice position is authoritative.
	Order int `json:"order,omitempty"`
}

// Clone returns a deep copy of the document.
func (d *SiteDocument) Clone() *SiteDocument {
	if d == nil {
		return nil
	}
	out := &SiteDocument{
		SiteSettings: d.SiteSettings,
		Sections:     make([]Section, len(d.Sections)),
	}
	for i, s := range d.Sections {
		out.Sections[i] = s.Clone()
	}
	return out
}

// Clone returns a deep copy of the section.
func (s Section) Clone() Section {
	out := s
	out.Props = cloneJSONMap(s.Props)
	out.Styles = cloneJSONMap(s.Styles)
	return out
}

// SectionIndex returns the position of the section with the given id,
// or -1 when absent.
func (d *SiteDocument) SectionIndex(id string) int {
	for i := range d.Sections {
		if d.Sections[i].ID == id {
			return i
		}
	}
	return -1
}

// HasSection reports whether a section with the given id exists.
func (d *SiteDocument) HasSection(id string) bool {
	return d.SectionIndex(id) >= 0
}

// cloneJSONMap deep-copies a JSON-shaped map. A JSON round trip would do
// the same thing more slowly; props stay small so the manual walk wins.
func cloneJSONMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneJSONValue(v)
	}
	return out
}

func cloneJSONValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return cloneJSONMap(val)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneJSONValue(item)
		}
		return out
	case json.Number:
		return val
	default:
		return v
	}
}
