package render

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/siteforge/internal/render/core"
	"github.com/dshills/siteforge/internal/render/registry"
	"github.com/dshills/siteforge/internal/schema"
)

type fixedRenderer struct {
	typ    string
	render func(core.RenderContext, map[string]any, core.Styles) (*core.Node, error)
}

func (f *fixedRenderer) Type() string { return f.typ }

func (f *fixedRenderer) Render(rc core.RenderContext, props map[string]any, styles core.Styles) (*core.Node, error) {
	if f.render != nil {
		return f.render(rc, props, styles)
	}
	return &core.Node{Kind: core.NodeElement, Type: f.typ, HTML: "<p>" + f.typ + "</p>\n"}, nil
}

func fixed(typ string) registry.Factory {
	return func() (core.Renderer, error) {
		return &fixedRenderer{typ: typ}, nil
	}
}

func TestResolveBuiltins(t *testing.T) {
	r := New(registry.NewWithBuiltins(), WithWaitForLoad(true))

	sections := []schema.Section{
		{ID: "hero-1", Type: "hero", Props: map[string]any{"heading": "Hi"}},
		{ID: "text-2", Type: "text", Props: map[string]any{"body": "Body"}},
	}
	nodes := r.Resolve(context.Background(), sections)

	if len(nodes) != 2 {
		t.Fatalf("nodes = %d, want 2", len(nodes))
	}
	for i, n := range nodes {
		if n.Kind != core.NodeElement {
			t.Errorf("node %d kind = %v", i, n.Kind)
		}
		if n.Key != sections[i].ID {
			t.Errorf("node %d key = %q, want %q", i, n.Key, sections[i].ID)
		}
	}
	if !strings.Contains(nodes[0].HTML, "Hi") {
		t.Errorf("hero html = %q", nodes[0].HTML)
	}
}

// One unknown type must not disturb its neighbors, and output order must
// follow array order.
func TestUnknownTypeIsolated(t *testing.T) {
	reg := registry.New(map[string]registry.Factory{
		"hero": fixed("hero"),
		"text": fixed("text"),
	})
	r := New(reg, WithWaitForLoad(true))

	nodes := r.Resolve(context.Background(), []schema.Section{
		{ID: "a", Type: "hero"},
		{ID: "b", Type: "mystery"},
		{ID: "c", Type: "text"},
	})

	if len(nodes) != 3 {
		t.Fatalf("nodes = %d, want 3", len(nodes))
	}
	wantKinds := []core.NodeKind{core.NodeElement, core.NodeUnknown, core.NodeElement}
	wantKeys := []string{"a", "b", "c"}
	for i, n := range nodes {
		if n.Kind != wantKinds[i] {
			t.Errorf("node %d kind = %v, want %v", i, n.Kind, wantKinds[i])
		}
		if n.Key != wantKeys[i] {
			t.Errorf("node %d key = %q, want %q", i, n.Key, wantKeys[i])
		}
	}
}

// Registry lookup is case-sensitive: "Hero" is an unknown type.
func TestTypeLookupCaseSensitive(t *testing.T) {
	reg := registry.New(map[string]registry.Factory{"hero": fixed("hero")})
	r := New(reg, WithWaitForLoad(true))

	nodes := r.Resolve(context.Background(), []schema.Section{{ID: "a", Type: "Hero"}})
	if nodes[0].Kind != core.NodeUnknown {
		t.Errorf("kind = %v, want unknown", nodes[0].Kind)
	}
}

func TestPendingRendererPlaceholder(t *testing.T) {
	gate := make(chan struct{})
	defer close(gate)
	reg := registry.New(map[string]registry.Factory{
		"slow": func() (core.Renderer, error) {
			<-gate
			return &fixedRenderer{typ: "slow"}, nil
		},
	})
	r := New(reg) // non-waiting: interactive path

	nodes := r.Resolve(context.Background(), []schema.Section{{ID: "s", Type: "slow"}})
	if nodes[0].Kind != core.NodePending {
		t.Errorf("kind = %v, want pending", nodes[0].Kind)
	}
}

func TestFailedRendererPlaceholder(t *testing.T) {
	reg := registry.New(map[string]registry.Factory{
		"broken": func() (core.Renderer, error) {
			return nil, errors.New("bad template")
		},
	})
	r := New(reg, WithWaitForLoad(true))

	nodes := r.Resolve(context.Background(), []schema.Section{{ID: "x", Type: "broken"}})
	if nodes[0].Kind != core.NodeFailed {
		t.Errorf("kind = %v, want failed", nodes[0].Kind)
	}
}

func TestRenderErrorBecomesFailedNode(t *testing.T) {
	reg := registry.New(map[string]registry.Factory{
		"flaky": func() (core.Renderer, error) {
			return &fixedRenderer{
				typ: "flaky",
				render: func(core.RenderContext, map[string]any, core.Styles) (*core.Node, error) {
					return nil, errors.New("missing required prop")
				},
			}, nil
		},
		"text": fixed("text"),
	})
	r := New(reg, WithWaitForLoad(true))

	nodes := r.Resolve(context.Background(), []schema.Section{
		{ID: "f", Type: "flaky"},
		{ID: "t", Type: "text"},
	})
	if nodes[0].Kind != core.NodeFailed {
		t.Errorf("flaky kind = %v, want failed", nodes[0].Kind)
	}
	if nodes[1].Kind != core.NodeElement {
		t.Errorf("neighbor kind = %v, want element", nodes[1].Kind)
	}
}

func TestRendererPanicContained(t *testing.T) {
	reg := registry.New(map[string]registry.Factory{
		"bomb": func() (core.Renderer, error) {
			return &fixedRenderer{
				typ: "bomb",
				render: func(core.RenderContext, map[string]any, core.Styles) (*core.Node, error) {
					panic("prop type confusion")
				},
			}, nil
		},
		"text": fixed("text"),
	})
	r := New(reg, WithWaitForLoad(true))

	nodes := r.Resolve(context.Background(), []schema.Section{
		{ID: "b", Type: "bomb"},
		{ID: "t", Type: "text"},
	})
	if nodes[0].Kind != core.NodeFailed {
		t.Errorf("bomb kind = %v, want failed", nodes[0].Kind)
	}
	if !strings.Contains(nodes[0].Detail, "panic") {
		t.Errorf("detail = %q", nodes[0].Detail)
	}
	if nodes[1].Kind != core.NodeElement {
		t.Errorf("neighbor kind = %v", nodes[1].Kind)
	}
}

func TestMissingIDKeyFallsBackToIndex(t *testing.T) {
	reg := registry.New(map[string]registry.Factory{"text": fixed("text")})
	r := New(reg, WithWaitForLoad(true))

	nodes := r.Resolve(context.Background(), []schema.Section{
		{ID: "", Type: "text"},
		{ID: "", Type: "text"},
	})
	if nodes[0].Key != "#0" || nodes[1].Key != "#1" {
		t.Errorf("keys = %q, %q", nodes[0].Key, nodes[1].Key)
	}
}

func TestLayoutRecursion(t *testing.T) {
	r := New(registry.NewWithBuiltins(), WithWaitForLoad(true))

	sections := []schema.Section{{
		ID:   "layout-1",
		Type: "layout",
		Props: map[string]any{
			"columns": float64(2),
			"items": []any{
				map[string]any{"id": "t1", "type": "text", "props": map[string]any{"body": "left"}},
				map[string]any{"id": "t2", "type": "text", "props": map[string]any{"body": "right"}},
			},
		},
	}}
	nodes := r.Resolve(context.Background(), sections)

	if len(nodes) != 1 {
		t.Fatalf("nodes = %d", len(nodes))
	}
	n := nodes[0]
	if n.Kind != core.NodeElement {
		t.Fatalf("kind = %v, detail = %q", n.Kind, n.Detail)
	}
	if len(n.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(n.Children))
	}
	if n.Children[0].Key != "t1" || n.Children[1].Key != "t2" {
		t.Errorf("child keys = %q, %q", n.Children[0].Key, n.Children[1].Key)
	}
}

// Self-similar nesting in the data must bottom out at the depth bound
// instead of recursing forever.
func TestDepthGuard(t *testing.T) {
	r := New(registry.NewWithBuiltins(), WithWaitForLoad(true), WithMaxDepth(4))

	// Build a layout nested deeper than the bound.
	inner := map[string]any{"id": "leaf", "type": "text", "props": map[string]any{"body": "deep"}}
	for i := 0; i < 10; i++ {
		inner = map[string]any{
			"id":    "wrap",
			"type":  "layout",
			"props": map[string]any{"items": []any{inner}},
		}
	}
	sections := schema.SectionsFromAny([]any{inner})

	nodes := r.Resolve(context.Background(), sections)
	if len(nodes) != 1 {
		t.Fatalf("nodes = %d", len(nodes))
	}

	// Walk down; the branch must terminate with a failed placeholder.
	n := nodes[0]
	depth := 0
	for len(n.Children) > 0 {
		n = n.Children[0]
		depth++
		if depth > 20 {
			t.Fatal("recursion did not terminate")
		}
	}
	if n.Kind != core.NodeFailed {
		t.Errorf("terminal kind = %v, want failed", n.Kind)
	}
}
