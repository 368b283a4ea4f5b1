// Package core provides shared types for the render subsystem.
// It breaks import cycles between the resolver, the component registry,
// and the component catalog.
package core

import (
	"context"

	"github.com/dshills/siteforge/internal/schema"
)

// NodeKind classifies a rendered node.
type NodeKind int

const (
	// NodeElement is a fully rendered component.
	NodeElement NodeKind = iota

	// NodeUnknown is the visible-but-inert placeholder for a section
	// whose type the registry does not know.
	NodeUnknown

	// NodePending is the transient placeholder shown while a renderer
	// implementation is still loading. Pending is per-slot; sibling
	// sections render independently.
	NodePending

	// NodeFailed is the placeholder for a section whose renderer failed
	// or whose container branch exceeded the depth guard.
	NodeFailed
)

// String returns the node kind name.
func (k NodeKind) String() string {
	switch k {
	case NodeElement:
		return "element"
	case NodeUnknown:
		return "unknown"
	case NodePending:
		return "pending"
	case NodeFailed:
		return "failed"
	default:
		return "invalid"
	}
}

// Styles holds the container-level presentation values the resolver's
// wrapper applies around a component. All values are concrete CSS values;
// token resolution happens before a renderer ever sees them.
type Styles struct {
	Padding    string
	Margin     string
	Background string
	MaxWidth   string
	TextAlign  string
}

// IsZero reports whether no style value is set.
func (s Styles) IsZero() bool {
	return s == Styles{}
}

// Node is one entry in the render tree.
type Node struct {
	// Key is the stable identity for the consuming UI layer: the
	// section id, or "#<index>" when the id is empty.
	Key string

	// Kind classifies the node.
	Kind NodeKind

	// Type is the section type that produced the node.
	Type string

	// HTML is the rendered markup for element nodes.
	HTML string

	// Styles are the resolved wrapper styles.
	Styles Styles

	// Children holds the resolved nested sections of a container node.
	Children []*Node

	// Attrs carries wrapper attributes a container asks the HTML writer
	// to emit (grid columns, gap). Nil for leaf components.
	Attrs map[string]string

	// Detail carries a diagnostic note for unknown and failed nodes.
	Detail string
}

// RenderContext is handed to each renderer invocation. Container
// renderers use Resolve to render their nested sections through the same
// registry, which is where the tree recursion lives.
type RenderContext struct {
	// Ctx bounds renderer loading.
	Ctx context.Context

	// Depth is the current container nesting depth.
	Depth int

	// Resolve renders nested sections one level deeper. Nil for
	// resolvers that disallow nesting.
	Resolve func(sections []schema.Section) []*Node
}

// RendererFactory constructs a renderer. The registry runs each factory at
// most once, on first acquisition of its type.
type RendererFactory func() (Renderer, error)

// Renderer turns one section's raw props into a render node. A renderer
// must tolerate missing optional prop keys by falling back to its own
// literal defaults, and must not panic on malformed values it can skip.
type Renderer interface {
	// Type returns the section type this renderer serves.
	Type() string

	// Render produces the node for one section.
	Render(rc RenderContext, props map[string]any, styles Styles) (*Node, error)
}
