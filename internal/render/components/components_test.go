package components

import (
	"strings"
	"testing"

	"github.com/dshills/siteforge/internal/render/core"
	"github.com/dshills/siteforge/internal/schema"
)

func renderType(t *testing.T, typ string, props map[string]any) *core.Node {
	t.Helper()
	factory := Catalog()[typ]
	if factory == nil {
		t.Fatalf("no factory for %q", typ)
	}
	r, err := factory()
	if err != nil {
		t.Fatalf("construct %s: %v", typ, err)
	}
	node, err := r.Render(core.RenderContext{}, props, core.Styles{})
	if err != nil {
		t.Fatalf("render %s: %v", typ, err)
	}
	return node
}

func TestCatalogConstructs(t *testing.T) {
	for typ, factory := range Catalog() {
		r, err := factory()
		if err != nil {
			t.Errorf("construct %s: %v", typ, err)
			continue
		}
		if r.Type() != typ {
			t.Errorf("Type() = %q for catalog key %q", r.Type(), typ)
		}
	}
}

func TestHeroDefaults(t *testing.T) {
	node := renderType(t, "hero", nil)
	if !strings.Contains(node.HTML, "<h1>Welcome to my site</h1>") {
		t.Errorf("hero html = %q", node.HTML)
	}
	// Optional pieces stay out of the markup entirely.
	if strings.Contains(node.HTML, "sf-hero-sub") || strings.Contains(node.HTML, "sf-button") {
		t.Errorf("hero defaults rendered optional parts: %q", node.HTML)
	}
}

func TestHeroEscapesUserContent(t *testing.T) {
	node := renderType(t, "hero", map[string]any{
		"heading": `<script>alert("x")</script>`,
	})
	if strings.Contains(node.HTML, "<script>") {
		t.Errorf("unescaped user content: %q", node.HTML)
	}
	if !strings.Contains(node.HTML, "&lt;script&gt;") {
		t.Errorf("escaped content missing: %q", node.HTML)
	}
}

func TestCTADefaults(t *testing.T) {
	node := renderType(t, "cta", map[string]any{})
	if !strings.Contains(node.HTML, "Ready to get started?") {
		t.Errorf("cta html = %q", node.HTML)
	}
	if !strings.Contains(node.HTML, `href="#contact"`) {
		t.Errorf("cta button link = %q", node.HTML)
	}
}

func TestFeaturesSkipsMalformedItems(t *testing.T) {
	node := renderType(t, "features", map[string]any{
		"items": []any{
			map[string]any{"title": "Fast"},
			"not an object",
			map[string]any{"title": "Safe", "body": "Escaped."},
		},
	})
	if !strings.Contains(node.HTML, "Fast") || !strings.Contains(node.HTML, "Safe") {
		t.Errorf("features html = %q", node.HTML)
	}
	if strings.Contains(node.HTML, "not an object") {
		t.Errorf("malformed item leaked: %q", node.HTML)
	}
}

func TestNavbarLinks(t *testing.T) {
	node := renderType(t, "navbar", map[string]any{
		"brand": "Acme",
		"links": []any{
			map[string]any{"label": "Home", "href": "/"},
			map[string]any{"label": "About", "href": "/about"},
		},
	})
	if !strings.Contains(node.HTML, `<span class="sf-brand">Acme</span>`) {
		t.Errorf("navbar html = %q", node.HTML)
	}
	if !strings.Contains(node.HTML, `<a href="/about">About</a>`) {
		t.Errorf("navbar links = %q", node.HTML)
	}
}

func TestImageRejectsBadScheme(t *testing.T) {
	node := renderType(t, "image", map[string]any{
		"src": "javascript:alert(1)",
		"alt": "x",
	})
	if strings.Contains(node.HTML, "javascript:") {
		t.Errorf("hostile scheme leaked: %q", node.HTML)
	}
	if !strings.Contains(node.HTML, "sf-image-empty") {
		t.Errorf("empty-image fallback missing: %q", node.HTML)
	}
}

func TestGalleryDropsUnusableImages(t *testing.T) {
	node := renderType(t, "gallery", map[string]any{
		"images": []any{
			map[string]any{"src": "https://example.com/a.jpg", "alt": "A"},
			map[string]any{"src": "data:text/html,evil"},
			map[string]any{"alt": "no src"},
		},
	})
	if !strings.Contains(node.HTML, "https://example.com/a.jpg") {
		t.Errorf("good image missing: %q", node.HTML)
	}
	if strings.Count(node.HTML, "<img") != 1 {
		t.Errorf("unusable images rendered: %q", node.HTML)
	}
}

func TestContactEmail(t *testing.T) {
	node := renderType(t, "contact", map[string]any{"email": "hi@example.com"})
	if !strings.Contains(node.HTML, "mailto:hi@example.com") {
		t.Errorf("contact html = %q", node.HTML)
	}
	if !strings.Contains(node.HTML, "Say hello") {
		t.Errorf("default button text missing: %q", node.HTML)
	}
}

func TestLayoutWithoutResolver(t *testing.T) {
	r := &layoutRenderer{}
	_, err := r.Render(core.RenderContext{}, map[string]any{}, core.Styles{})
	if err == nil {
		t.Fatal("expected error without a resolve callback")
	}
}

func TestLayoutColumnsClamped(t *testing.T) {
	r := &layoutRenderer{}
	rc := core.RenderContext{
		Resolve: func([]schema.Section) []*core.Node { return nil },
	}

	node, err := r.Render(rc, map[string]any{"columns": float64(-2)}, core.Styles{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if node.Attrs["columns"] != "1" {
		t.Errorf("columns = %q, want clamped to 1", node.Attrs["columns"])
	}

	node, err = r.Render(rc, map[string]any{"columns": float64(3), "gap": "md"}, core.Styles{})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if node.Attrs["columns"] != "3" || node.Attrs["gap"] != "md" {
		t.Errorf("attrs = %v", node.Attrs)
	}
}

func TestPropHelpers(t *testing.T) {
	props := map[string]any{
		"s":     "hello",
		"empty": "",
		"n":     float64(3),
		"wrong": true,
		"list":  []any{"a", map[string]any{"k": "v"}},
	}

	if got := str(props, "s", "d"); got != "hello" {
		t.Errorf("str = %q", got)
	}
	if got := str(props, "empty", "d"); got != "d" {
		t.Errorf("str empty = %q, want default", got)
	}
	if got := str(props, "missing", "d"); got != "d" {
		t.Errorf("str missing = %q", got)
	}
	if got := num(props, "n", 1); got != 3 {
		t.Errorf("num = %d", got)
	}
	if got := num(props, "wrong", 7); got != 7 {
		t.Errorf("num mistyped = %d", got)
	}
	if got := len(list(props, "list")); got != 2 {
		t.Errorf("list len = %d", got)
	}
	if got := len(objects(props, "list")); got != 1 {
		t.Errorf("objects len = %d", got)
	}
}
