// Package siteforge renders declarative site documents for embedding
// applications: a no-code builder edits a JSON document of site settings
// and ordered sections, and this engine validates it, resolves each
// section through a closed component registry, and emits HTML.
//
// The package is the only importable surface; everything underneath lives
// in internal packages. An Engine wires the pieces together once, then
// hands out Sessions, one per open document.
package siteforge

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/dshills/siteforge/internal/config"
	"github.com/dshills/siteforge/internal/defaults"
	"github.com/dshills/siteforge/internal/render"
	"github.com/dshills/siteforge/internal/render/core"
	"github.com/dshills/siteforge/internal/render/registry"
	"github.com/dshills/siteforge/internal/schema"
	"github.com/dshills/siteforge/internal/session"
	"github.com/dshills/siteforge/internal/store"
)

// Document types, re-exported for embedders.
type (
	SiteDocument = schema.SiteDocument
	SiteSettings = schema.SiteSettings
	Section      = schema.Section
	Theme        = schema.Theme
	Node         = core.Node
	Template     = defaults.Template
)

// ProjectStore is the persistence boundary an embedding application
// implements. NewMemoryStore provides an in-process one.
type ProjectStore = store.ProjectStore

// SessionState is the session lifecycle state.
type SessionState = session.State

// Session lifecycle states.
const (
	StateUninitialized = session.StateUninitialized
	StateCached        = session.StateCached
	StateReconciled    = session.StateReconciled
	StateEmpty         = session.StateEmpty
	StateError         = session.StateError
)

// Store errors, re-exported so embedders can classify failures.
var (
	ErrNotFound       = store.ErrNotFound
	ErrUnauthorized   = store.ErrUnauthorized
	ErrSlugTaken      = store.ErrSlugTaken
	ErrNotPersistable = session.ErrNotPersistable
)

// NewMemoryStore returns an in-process ProjectStore. The actor is the
// identity used for ownership checks on writes.
func NewMemoryStore(actor string) *store.MemoryStore {
	return store.NewMemoryStore(store.WithActor(actor))
}

// Engine owns the shared pieces: options, registry, resolver, logger,
// store, cache. Safe for concurrent use; sessions are not shared.
type Engine struct {
	opts     config.Options
	log      *logrus.Logger
	projects store.ProjectStore
	cache    store.Cache
	reg      *registry.Registry
	resolver *render.Resolver
}

// Option configures an Engine.
type Option func(*Engine) error

// WithOptions sets the engine options directly.
func WithOptions(opts config.Options) Option {
	return func(e *Engine) error {
		e.opts = opts
		return nil
	}
}

// WithOptionsFile loads engine options from a TOML file (missing file
// means defaults) plus SITEFORGE_* environment overrides.
func WithOptionsFile(path string) Option {
	return func(e *Engine) error {
		opts, err := config.Load(path)
		if err != nil {
			return err
		}
		e.opts = opts
		return nil
	}
}

// WithLogger sets the diagnostics logger. Defaults to a discarding one.
func WithLogger(log *logrus.Logger) Option {
	return func(e *Engine) error {
		e.log = log
		return nil
	}
}

// WithCache sets the local document cache used by sessions.
func WithCache(cache store.Cache) Option {
	return func(e *Engine) error {
		e.cache = cache
		return nil
	}
}

// New creates an Engine over a project store.
func New(projects store.ProjectStore, opts ...Option) (*Engine, error) {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	e := &Engine{
		opts:     config.Default(),
		log:      discard,
		projects: projects,
		cache:    store.NopCache{},
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}

	if level, err := logrus.ParseLevel(e.opts.LogLevel); err == nil {
		e.log.SetLevel(level)
	}

	if e.opts.CacheDir != "" {
		fc, err := store.NewFileCache(e.opts.CacheDir, store.WithCacheLogger(e.log))
		if err != nil {
			return nil, fmt.Errorf("open file cache: %w", err)
		}
		e.cache = fc
	}

	if e.opts.TemplatePath != "" {
		src, err := os.ReadFile(e.opts.TemplatePath)
		if err != nil {
			return nil, fmt.Errorf("read template catalog: %w", err)
		}
		extra, err := defaults.LoadLuaTemplates(string(src))
		if err != nil {
			return nil, fmt.Errorf("load template catalog: %w", err)
		}
		defaults.RegisterTemplates(extra)
	}

	e.reg = registry.NewWithBuiltins()
	e.resolver = render.New(e.reg,
		render.WithLogger(e.log),
		render.WithMaxDepth(e.opts.MaxNestingDepth),
		render.WithWaitForLoad(e.opts.WaitForRenderers),
	)
	return e, nil
}

// SectionTypes returns every renderable section type, sorted.
func (e *Engine) SectionTypes() []string {
	return e.reg.Types()
}

// KnowsType reports whether the type is renderable. Exact match.
func (e *Engine) KnowsType(typ string) bool {
	return e.reg.Has(typ)
}

// Templates returns the starter template catalog.
func (e *Engine) Templates() []Template {
	return defaults.Templates()
}

// DefaultProps returns the default props for a section type. Unknown
// types get an empty map.
func (e *Engine) DefaultProps(typ string) map[string]any {
	return defaults.For(typ)
}

// HasDefaults reports whether a section type ships non-empty default
// props. Independent of KnowsType: a renderable type may have no
// defaults, and the builder UI uses this to decide whether a freshly
// added section opens pre-filled or blank.
func (e *Engine) HasDefaults(typ string) bool {
	return defaults.Known(typ)
}

// ValidationErrors is the structured validation result the editing
// surface shows as blocking, correctable messages.
type ValidationErrors = schema.ValidationErrors

// ValidateDocument screens a raw JSON document without a full decode.
func (e *Engine) ValidateDocument(data []byte) bool {
	return schema.ValidateRawDocument(data)
}

// CheckDocument runs the structural checks and returns every failure.
// The editing UI renders the collected messages and pulls the ones for a
// given field with ErrorsForPath.
func (e *Engine) CheckDocument(candidate map[string]any) *ValidationErrors {
	return schema.CheckSiteDocument(candidate)
}

// ParseDocument decodes and validates a raw JSON document.
func (e *Engine) ParseDocument(data []byte) (*SiteDocument, error) {
	return schema.ParseDocument(data)
}

// Session is one open document: lifecycle state, edits, persistence.
type Session struct {
	*session.Session
	engine *Engine
}

// OpenSession creates a session bound to the engine's store and cache.
func (e *Engine) OpenSession() *Session {
	return &Session{
		Session: session.New(e.projects,
			session.WithCache(e.cache),
			session.WithSessionLogger(e.log),
		),
		engine: e,
	}
}

// LoadByID is shorthand for loading an owned project for editing.
func (s *Session) LoadByID(ctx context.Context, id string) error {
	return s.Load(ctx, session.ByID(id))
}

// LoadBySlug loads a published project for viewing. Slug-loaded
// sessions cannot save.
func (s *Session) LoadBySlug(ctx context.Context, slug string) error {
	return s.Load(ctx, session.BySlug(slug))
}

// Resolve renders the session's current sections into a node tree.
// Best effort: every section yields exactly one node, placeholders
// included.
func (s *Session) Resolve(ctx context.Context) []*Node {
	return s.engine.resolver.Resolve(ctx, s.Sections())
}

// RenderHTML writes the markup for the session's current sections.
func (s *Session) RenderHTML(ctx context.Context, w io.Writer) error {
	return render.WriteNodes(w, s.Resolve(ctx))
}

// PublishHTML assembles the complete published page for a project slug:
// full renderer catalog warmed, every section resolved, theme CSS from
// the site settings.
func (e *Engine) PublishHTML(ctx context.Context, slug string) (string, error) {
	doc, err := e.projects.GetProjectBySlug(ctx, slug)
	if err != nil {
		return "", fmt.Errorf("publish %s: %w", slug, err)
	}

	if err := e.reg.Preload(ctx); err != nil {
		return "", fmt.Errorf("publish %s: %w", slug, err)
	}

	publisher := render.New(e.reg,
		render.WithLogger(e.log),
		render.WithMaxDepth(e.opts.MaxNestingDepth),
		render.WithWaitForLoad(true),
	)
	nodes := publisher.Resolve(ctx, doc.Sections)
	return render.Page(doc.SiteSettings, nodes)
}
