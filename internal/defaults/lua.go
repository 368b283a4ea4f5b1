package defaults

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/siteforge/internal/schema"
)

// Additional starter templates can be authored in Lua by the product team
// and shipped alongside the binary. These are trusted assets, not user
// content: the loader only yields Template values, it cannot register
// renderers or otherwise widen the closed component set.
//
// A template script returns an array of tables:
//
//	return {
//	  {
//	    name = "consulting",
//	    description = "One-pager for consultants",
//	    settings = { name = "My Practice", theme = { primary = "#334455" } },
//	    sections = {
//	      { type = "hero", props = { heading = "Hire me" } },
//	    },
//	  },
//	}

// LoadLuaTemplates evaluates a template script and returns its templates.
// Section ids may be omitted in the script; Instantiate regenerates them
// anyway, and the loader fills placeholders for catalog display.
func LoadLuaTemplates(src string) ([]Template, error) {
	L := lua.NewState()
	defer L.Close()

	if err := L.DoString(src); err != nil {
		return nil, fmt.Errorf("template script: %w", err)
	}

	top := L.Get(-1)
	table, ok := top.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("template script: expected a table return, got %s", top.Type())
	}

	var templates []Template
	var convErr error
	table.ForEach(func(_, v lua.LValue) {
		if convErr != nil {
			return
		}
		entry, ok := v.(*lua.LTable)
		if !ok {
			convErr = fmt.Errorf("template script: entry is %s, want table", v.Type())
			return
		}
		t, err := templateFromLua(entry)
		if err != nil {
			convErr = err
			return
		}
		templates = append(templates, t)
	})
	if convErr != nil {
		return nil, convErr
	}
	return templates, nil
}

func templateFromLua(entry *lua.LTable) (Template, error) {
	raw, ok := luaToGo(entry).(map[string]any)
	if !ok {
		return Template{}, fmt.Errorf("template script: entry is not a record table")
	}

	name, _ := raw["name"].(string)
	if name == "" {
		return Template{}, fmt.Errorf("template script: entry missing name")
	}
	description, _ := raw["description"].(string)

	t := Template{
		Name:        name,
		Description: description,
		Settings:    SiteSettings(),
	}

	if settings, ok := raw["settings"].(map[string]any); ok {
		merged, err := schema.SettingsFromMap(settings)
		if err != nil {
			return Template{}, fmt.Errorf("template %q: %w", name, err)
		}
		t.Settings = mergeSettings(t.Settings, merged)
	}

	if sections, ok := raw["sections"].([]any); ok {
		for i, s := range schema.SectionsFromAny(normalizeSections(sections)) {
			if s.ID == "" {
				s.ID = fmt.Sprintf("%s-%d", s.Type, i)
			}
			if s.Props == nil {
				s.Props = For(s.Type)
			}
			t.Sections = append(t.Sections, s)
		}
	}
	return t, nil
}

// normalizeSections gives id-less script sections a placeholder id so they
// survive the section decoder.
func normalizeSections(items []any) []any {
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if _, ok := m["id"].(string); !ok {
			typ, _ := m["type"].(string)
			m["id"] = typ + "-tpl"
		}
	}
	return items
}

// mergeSettings overlays script-provided settings onto the defaults,
// field by field, so a script only states what it changes.
func mergeSettings(base, over schema.SiteSettings) schema.SiteSettings {
	out := base
	if over.Name != "" {
		out.Name = over.Name
	}
	if over.Theme.Primary != "" {
		out.Theme.Primary = over.Theme.Primary
	}
	if over.Theme.Secondary != "" {
		out.Theme.Secondary = over.Theme.Secondary
	}
	if over.Theme.Background != "" {
		out.Theme.Background = over.Theme.Background
	}
	if over.Theme.Text != "" {
		out.Theme.Text = over.Theme.Text
	}
	if over.Theme.Font != "" {
		out.Theme.Font = over.Theme.Font
	}
	if over.Theme.Dark {
		out.Theme.Dark = true
	}
	if over.Logo != "" {
		out.Logo = over.Logo
	}
	if over.Favicon != "" {
		out.Favicon = over.Favicon
	}
	if over.Layout.MaxWidth != "" {
		out.Layout.MaxWidth = over.Layout.MaxWidth
	}
	if over.Layout.SectionSpacing != "" {
		out.Layout.SectionSpacing = over.Layout.SectionSpacing
	}
	if over.Layout.FullWidth {
		out.Layout.FullWidth = true
	}
	if over.SEO.Title != "" {
		out.SEO.Title = over.SEO.Title
	}
	if over.SEO.Description != "" {
		out.SEO.Description = over.SEO.Description
	}
	return out
}

// luaToGo converts a Lua value into JSON-shaped Go values. Array-like
// tables (contiguous integer keys from 1) become slices, everything else
// becomes a string-keyed map.
func luaToGo(v lua.LValue) any {
	switch val := v.(type) {
	case lua.LBool:
		return bool(val)
	case lua.LNumber:
		return float64(val)
	case lua.LString:
		return string(val)
	case *lua.LTable:
		maxN := val.MaxN()
		if maxN > 0 {
			out := make([]any, 0, maxN)
			for i := 1; i <= maxN; i++ {
				out = append(out, luaToGo(val.RawGetInt(i)))
			}
			return out
		}
		out := make(map[string]any)
		val.ForEach(func(k, item lua.LValue) {
			if key, ok := k.(lua.LString); ok {
				out[string(key)] = luaToGo(item)
			}
		})
		return out
	default:
		return nil
	}
}
