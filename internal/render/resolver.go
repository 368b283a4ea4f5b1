// Package render resolves an ordered list of section documents into a
// render tree.
//
// Resolution is best-effort per section: an unknown type, a failed
// renderer, or a too-deep container branch produces a placeholder node in
// that slot, and every other section renders unchanged. Final output order
// always follows array order, regardless of when each renderer finished
// loading.
package render

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/dshills/siteforge/internal/render/core"
	"github.com/dshills/siteforge/internal/render/registry"
	"github.com/dshills/siteforge/internal/schema"
)

// DefaultMaxDepth bounds container nesting. The data model allows
// unbounded depth; the resolver does not.
const DefaultMaxDepth = 32

// Resolver walks sections in order and renders each through the registry.
type Resolver struct {
	reg      *registry.Registry
	log      logrus.FieldLogger
	maxDepth int

	// wait makes resolution block until lazily loading renderers are
	// constructed. Publish paths want it; interactive paths prefer
	// pending placeholders.
	wait bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the diagnostics logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(r *Resolver) {
		r.log = log
	}
}

// WithMaxDepth overrides the container nesting bound.
func WithMaxDepth(depth int) Option {
	return func(r *Resolver) {
		r.maxDepth = depth
	}
}

// WithWaitForLoad makes Resolve wait for renderer construction instead of
// emitting pending placeholders.
func WithWaitForLoad(wait bool) Option {
	return func(r *Resolver) {
		r.wait = wait
	}
}

// New creates a resolver over a registry.
func New(reg *registry.Registry, opts ...Option) *Resolver {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	r := &Resolver{
		reg:      reg,
		log:      discard,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve renders sections in array order. The result always has exactly
// one node per section.
func (r *Resolver) Resolve(ctx context.Context, sections []schema.Section) []*core.Node {
	return r.resolveAt(ctx, sections, 0)
}

func (r *Resolver) resolveAt(ctx context.Context, sections []schema.Section, depth int) []*core.Node {
	nodes := make([]*core.Node, 0, len(sections))
	for i, sec := range sections {
		nodes = append(nodes, r.resolveOne(ctx, sec, i, depth))
	}
	return nodes
}

func (r *Resolver) resolveOne(ctx context.Context, sec schema.Section, index, depth int) *core.Node {
	key := sec.ID
	if key == "" {
		key = fmt.Sprintf("#%d", index)
	}

	if depth >= r.maxDepth {
		r.log.WithFields(logrus.Fields{"section": key, "depth": depth}).
			Warn("container nesting too deep, dropping branch")
		return &core.Node{
			Key:    key,
			Kind:   core.NodeFailed,
			Type:   sec.Type,
			Detail: "nesting too deep",
		}
	}

	renderer, state := r.acquire(ctx, sec.Type)
	switch state {
	case registry.StateMissing:
		r.log.WithFields(logrus.Fields{"section": key, "type": sec.Type}).
			Warn("unknown section type")
		return &core.Node{
			Key:    key,
			Kind:   core.NodeUnknown,
			Type:   sec.Type,
			Detail: fmt.Sprintf("unknown section type %q", sec.Type),
		}
	case registry.StatePending:
		return &core.Node{Key: key, Kind: core.NodePending, Type: sec.Type}
	case registry.StateFailed:
		return &core.Node{
			Key:    key,
			Kind:   core.NodeFailed,
			Type:   sec.Type,
			Detail: "renderer unavailable",
		}
	}

	rc := core.RenderContext{
		Ctx:   ctx,
		Depth: depth,
		Resolve: func(nested []schema.Section) []*core.Node {
			return r.resolveAt(ctx, nested, depth+1)
		},
	}

	node, err := r.invoke(renderer, rc, sec)
	if err != nil {
		r.log.WithError(err).WithFields(logrus.Fields{"section": key, "type": sec.Type}).
			Warn("section render failed")
		return &core.Node{
			Key:    key,
			Kind:   core.NodeFailed,
			Type:   sec.Type,
			Detail: err.Error(),
		}
	}
	node.Key = key
	return node
}

// invoke runs one renderer, containing panics so a single bad section
// never takes the document down.
func (r *Resolver) invoke(renderer core.Renderer, rc core.RenderContext, sec schema.Section) (node *core.Node, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			node = nil
			err = fmt.Errorf("renderer panic: %v", rec)
		}
	}()
	return renderer.Render(rc, sec.Props, ResolveStyles(sec.Styles))
}

func (r *Resolver) acquire(ctx context.Context, typ string) (core.Renderer, registry.State) {
	if r.wait {
		return r.reg.Acquire(ctx, typ)
	}
	return r.reg.TryAcquire(typ)
}
