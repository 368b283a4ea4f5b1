package defaults

import (
	"fmt"
	"sync"

	"github.com/dshills/siteforge/internal/schema"
)

// Template is an immutable starter bundle of settings plus sections,
// used only to seed new documents.
type Template struct {
	Name        string
	Description string
	Settings    schema.SiteSettings
	Sections    []schema.Section
}

// builtinTemplates is the compiled-in catalog. Section ids here are
// placeholders; Instantiate regenerates them so two projects seeded from
// the same template never share ids.
var builtinTemplates = []Template{
	{
		Name:        "starter",
		Description: "A minimal one-page site",
		Settings:    SiteSettings(),
		Sections: []schema.Section{
			{ID: "hero-0", Type: "hero", Props: For("hero"), Styles: BaselineStyles()},
			{ID: "contact-0", Type: "contact", Props: For("contact"), Styles: BaselineStyles()},
		},
	},
	{
		Name:        "portfolio",
		Description: "Work showcase with a gallery",
		Settings: schema.SiteSettings{
			Name: "My Portfolio",
			Theme: schema.Theme{
				Primary: "#2f6f4f",
				Font:    DefaultFont,
			},
			Layout: schema.Layout{MaxWidth: "1200px"},
		},
		Sections: []schema.Section{
			{ID: "navbar-0", Type: "navbar", Props: For("navbar"), Styles: BaselineStyles()},
			{ID: "hero-0", Type: "hero", Props: map[string]any{
				"heading":    "Selected work",
				"subheading": "Design and code, mostly both.",
			}, Styles: BaselineStyles()},
			{ID: "gallery-0", Type: "gallery", Props: For("gallery"), Styles: BaselineStyles()},
			{ID: "footer-0", Type: "footer", Props: For("footer"), Styles: BaselineStyles()},
		},
	},
	{
		Name:        "landing",
		Description: "Product landing page",
		Settings: schema.SiteSettings{
			Name: "My Product",
			Theme: schema.Theme{
				Primary: "#3b5bdb",
				Dark:    true,
				Font:    DefaultFont,
			},
		},
		Sections: []schema.Section{
			{ID: "navbar-0", Type: "navbar", Props: For("navbar"), Styles: BaselineStyles()},
			{ID: "hero-0", Type: "hero", Props: map[string]any{
				"heading":     "Ship faster",
				"subheading":  "The tool your team already knows how to use.",
				"button_text": "Try it free",
				"button_link": "#contact",
			}, Styles: BaselineStyles()},
			{ID: "features-0", Type: "features", Props: For("features"), Styles: BaselineStyles()},
			{ID: "layout-0", Type: "layout", Props: map[string]any{
				"columns": 2,
				"items": []any{
					map[string]any{"id": "text-0", "type": "text", "props": map[string]any{
						"heading": "Why us", "body": "Because it works.",
					}},
					map[string]any{"id": "image-0", "type": "image", "props": map[string]any{}},
				},
			}, Styles: BaselineStyles()},
			{ID: "cta-0", Type: "cta", Props: For("cta"), Styles: BaselineStyles()},
			{ID: "footer-0", Type: "footer", Props: For("footer"), Styles: BaselineStyles()},
		},
	},
}

// registered holds templates added at startup, typically from a Lua
// catalog. Same-name entries shadow builtins.
var (
	registeredMu sync.RWMutex
	registered   []Template
)

// RegisterTemplates extends the catalog. Meant for engine startup, not
// for runtime mutation; a registered template with a builtin's name
// shadows the builtin.
func RegisterTemplates(templates []Template) {
	registeredMu.Lock()
	defer registeredMu.Unlock()
	for _, t := range templates {
		registered = append(registered, t.clone())
	}
}

// Templates returns the catalog, registered entries first. Entries are
// deep copies.
func Templates() []Template {
	registeredMu.RLock()
	defer registeredMu.RUnlock()

	out := make([]Template, 0, len(registered)+len(builtinTemplates))
	for _, t := range registered {
		out = append(out, t.clone())
	}
	for _, t := range builtinTemplates {
		out = append(out, t.clone())
	}
	return out
}

// Find returns the named template, or false.
func Find(name string) (Template, bool) {
	registeredMu.RLock()
	for _, t := range registered {
		if t.Name == name {
			registeredMu.RUnlock()
			return t.clone(), true
		}
	}
	registeredMu.RUnlock()

	for _, t := range builtinTemplates {
		if t.Name == name {
			return t.clone(), true
		}
	}
	return Template{}, false
}

// Instantiate seeds a brand-new document from the named template.
// Section ids are regenerated, including those nested in layout items, so
// projects created from the same template never collide.
func Instantiate(name string) (*schema.SiteDocument, error) {
	t, ok := Find(name)
	if !ok {
		return nil, fmt.Errorf("template %q not found", name)
	}

	doc := &schema.SiteDocument{
		SiteSettings: t.Settings,
		Sections:     t.Sections,
	}
	for i := range doc.Sections {
		regenerateIDs(&doc.Sections[i])
	}
	return doc, nil
}

func regenerateIDs(sec *schema.Section) {
	sec.ID = schema.NewSectionID(sec.Type)
	regenerateItemIDs(sec.Props)
}

// regenerateItemIDs walks nested layout items, which carry sections as raw
// maps, regenerating ids at every depth.
func regenerateItemIDs(props map[string]any) {
	items, ok := props["items"].([]any)
	if !ok {
		return
	}
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		typ, _ := m["type"].(string)
		if typ == "" {
			continue
		}
		m["id"] = schema.NewSectionID(typ)
		if nested, ok := m["props"].(map[string]any); ok {
			regenerateItemIDs(nested)
		}
	}
}

func (t Template) clone() Template {
	out := t
	out.Sections = make([]schema.Section, len(t.Sections))
	for i, s := range t.Sections {
		out.Sections[i] = s.Clone()
	}
	return out
}
