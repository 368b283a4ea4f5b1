// Package components is the builtin catalog of section renderers.
//
// Each renderer owns its prop shape informally: missing keys fall back to
// the component's literal defaults, malformed values are skipped, and
// nothing here ever rejects a document. Markup goes through html/template
// so user-supplied strings are always escaped.
package components

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/dshills/siteforge/internal/render/core"
)

// Catalog returns the factory table for every builtin section type.
// The registry copies it; the returned map is fresh on every call.
func Catalog() map[string]core.RendererFactory {
	return map[string]core.RendererFactory{
		"hero":     func() (core.Renderer, error) { return newTemplated("hero", heroTmpl, heroView) },
		"cta":      func() (core.Renderer, error) { return newTemplated("cta", ctaTmpl, ctaView) },
		"text":     func() (core.Renderer, error) { return newTemplated("text", textTmpl, textView) },
		"features": func() (core.Renderer, error) { return newTemplated("features", featuresTmpl, featuresView) },
		"navbar":   func() (core.Renderer, error) { return newTemplated("navbar", navbarTmpl, navbarView) },
		"footer":   func() (core.Renderer, error) { return newTemplated("footer", footerTmpl, footerView) },
		"image":    func() (core.Renderer, error) { return newTemplated("image", imageTmpl, imageView) },
		"gallery":  func() (core.Renderer, error) { return newTemplated("gallery", galleryTmpl, galleryView) },
		"contact":  func() (core.Renderer, error) { return newTemplated("contact", contactTmpl, contactView) },
		"layout":   func() (core.Renderer, error) { return &layoutRenderer{}, nil },
	}
}

// viewFunc shapes raw props into the template's data, applying the
// component's literal defaults for missing keys.
type viewFunc func(props map[string]any) any

// templated is a renderer backed by one html/template.
type templated struct {
	typ  string
	tmpl *template.Template
	view viewFunc
}

func newTemplated(typ, text string, view viewFunc) (core.Renderer, error) {
	tmpl, err := template.New(typ).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("component %s: %w", typ, err)
	}
	return &templated{typ: typ, tmpl: tmpl, view: view}, nil
}

// Type returns the section type this renderer serves.
func (t *templated) Type() string { return t.typ }

// Render executes the template over the defaulted view of props.
func (t *templated) Render(_ core.RenderContext, props map[string]any, styles core.Styles) (*core.Node, error) {
	var sb strings.Builder
	if err := t.tmpl.Execute(&sb, t.view(props)); err != nil {
		return nil, fmt.Errorf("render %s: %w", t.typ, err)
	}
	return &core.Node{
		Kind:   core.NodeElement,
		Type:   t.typ,
		HTML:   sb.String(),
		Styles: styles,
	}, nil
}

// Prop helpers. All tolerate absent and mistyped values.

func str(props map[string]any, key, def string) string {
	if v, ok := props[key].(string); ok && v != "" {
		return v
	}
	return def
}

func num(props map[string]any, key string, def int) int {
	switch v := props[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return def
	}
}

func list(props map[string]any, key string) []any {
	v, _ := props[key].([]any)
	return v
}

// objects filters a list prop down to its object entries.
func objects(props map[string]any, key string) []map[string]any {
	var out []map[string]any
	for _, item := range list(props, key) {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
