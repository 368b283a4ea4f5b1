// Package registry holds the closed table mapping section types to their
// renderers.
//
// The table is assembled once at construction and is read-only afterwards:
// no registration API is reachable from user content, which keeps the set
// of renderable types auditable. Renderer construction is lazy so a large
// catalog does not pay startup cost for types a document never uses; a
// not-yet-constructed renderer is a loading state, never an error.
package registry

import (
	"context"
	"sort"
	"sync"

	"github.com/dshills/siteforge/internal/render/components"
	"github.com/dshills/siteforge/internal/render/core"
)

// Factory constructs a renderer on first use.
type Factory = core.RendererFactory

// State describes the load state of a registry entry.
type State int

const (
	// StateMissing means the type is not in the table.
	StateMissing State = iota

	// StatePending means the renderer is still being constructed.
	StatePending

	// StateReady means the renderer is available.
	StateReady

	// StateFailed means construction failed. Terminal for the entry.
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateMissing:
		return "missing"
	case StatePending:
		return "pending"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "invalid"
	}
}

type entry struct {
	factory Factory

	start    sync.Once
	done     chan struct{}
	renderer core.Renderer
	err      error
}

// load kicks off construction exactly once, off the caller's goroutine so
// lookups stay non-blocking.
func (e *entry) load() {
	e.start.Do(func() {
		go func() {
			e.renderer, e.err = e.factory()
			close(e.done)
		}()
	})
}

// Registry is the closed type table. Safe for concurrent use across
// sessions; it is never mutated after New returns.
type Registry struct {
	entries map[string]*entry
}

// New builds a registry from a factory table. The table is copied; later
// changes to the argument map do not affect the registry.
func New(factories map[string]Factory) *Registry {
	entries := make(map[string]*entry, len(factories))
	for typ, f := range factories {
		entries[typ] = &entry{factory: f, done: make(chan struct{})}
	}
	return &Registry{entries: entries}
}

// NewWithBuiltins builds the registry over the builtin component catalog.
func NewWithBuiltins() *Registry {
	return New(components.Catalog())
}

// Has reports whether the type is in the table. Lookup is exact and
// case-sensitive.
func (r *Registry) Has(typ string) bool {
	_, ok := r.entries[typ]
	return ok
}

// Types returns all registered section types, sorted.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.entries))
	for typ := range r.entries {
		types = append(types, typ)
	}
	sort.Strings(types)
	return types
}

// TryAcquire returns the renderer for a type without blocking.
// A StatePending result means construction is underway; the caller renders
// a transient placeholder for that slot and asks again next pass.
func (r *Registry) TryAcquire(typ string) (core.Renderer, State) {
	e, ok := r.entries[typ]
	if !ok {
		return nil, StateMissing
	}

	e.load()
	select {
	case <-e.done:
		if e.err != nil {
			return nil, StateFailed
		}
		return e.renderer, StateReady
	default:
		return nil, StatePending
	}
}

// Acquire returns the renderer for a type, waiting for construction to
// finish. Returns (nil, StateMissing) for unknown types and ctx.Err() via
// StatePending when the context expires first.
func (r *Registry) Acquire(ctx context.Context, typ string) (core.Renderer, State) {
	e, ok := r.entries[typ]
	if !ok {
		return nil, StateMissing
	}

	e.load()
	select {
	case <-e.done:
		if e.err != nil {
			return nil, StateFailed
		}
		return e.renderer, StateReady
	case <-ctx.Done():
		return nil, StatePending
	}
}

// Preload constructs every renderer and waits for completion. Used by
// publish paths that want the full catalog warm before a render pass.
func (r *Registry) Preload(ctx context.Context) error {
	for _, e := range r.entries {
		e.load()
	}
	for _, e := range r.entries {
		select {
		case <-e.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}
