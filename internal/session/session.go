// Package session owns the in-memory site document for one editing or
// viewing session.
//
// A session loads a document, shows the cached copy optimistically,
// reconciles against the authoritative store (deep-merged with compiled-in
// defaults), accepts edits through typed operations, and persists only on
// an explicit save. Within a session the document has a
// single logical owner: UI-triggered operations arrive sequentially.
// Cross-session conflicts are the store's problem (last write wins).
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/dshills/siteforge/internal/defaults"
	"github.com/dshills/siteforge/internal/merge"
	"github.com/dshills/siteforge/internal/notify"
	"github.com/dshills/siteforge/internal/schema"
	"github.com/dshills/siteforge/internal/store"
)

// State is the session lifecycle state.
type State int

const (
	// StateUninitialized means no load has happened yet.
	StateUninitialized State = iota

	// StateCached means the document came from the local cache and the
	// authoritative copy has not been reconciled yet. Editable.
	StateCached

	// StateReconciled means the document reflects the authoritative
	// store, merged with defaults. Editable.
	StateReconciled

	// StateEmpty means the store has no document for the identifier.
	// Not an error.
	StateEmpty

	// StateError means the last save failed. The in-memory document is
	// intact; the user may retry.
	StateError
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateCached:
		return "cached"
	case StateReconciled:
		return "reconciled"
	case StateEmpty:
		return "empty"
	case StateError:
		return "error"
	default:
		return "invalid"
	}
}

// Ref identifies a project to load: by id (owned, persistable) or by slug
// (published view, read-only at the save boundary). Both are opaque keys.
type Ref struct {
	ID   string
	Slug string
}

// ByID refers to a project by its store id.
func ByID(id string) Ref { return Ref{ID: id} }

// BySlug refers to a published project by its slug.
func BySlug(slug string) Ref { return Ref{Slug: slug} }

// Key returns the cache key for the reference.
func (r Ref) Key() string {
	if r.ID != "" {
		return r.ID
	}
	return r.Slug
}

// Session is the configuration state machine for one site document.
type Session struct {
	mu sync.Mutex

	store    store.ProjectStore
	cache    store.Cache
	notifier *notify.Notifier
	log      logrus.FieldLogger

	state     State
	ref       Ref
	projectID string
	doc       *schema.SiteDocument
	lastErr   error

	// loadGen guards against a stale load response landing after a
	// newer load started.
	loadGen uint64
}

// Option configures a Session.
type Option func(*Session)

// WithCache sets the local document cache. Defaults to a no-op cache.
func WithCache(c store.Cache) Option {
	return func(s *Session) {
		s.cache = c
	}
}

// WithNotifier sets the change notifier the embedding UI observes.
func WithNotifier(n *notify.Notifier) Option {
	return func(s *Session) {
		s.notifier = n
	}
}

// WithSessionLogger sets the diagnostics logger.
func WithSessionLogger(log logrus.FieldLogger) Option {
	return func(s *Session) {
		s.log = log
	}
}

// New creates a session over the given project store.
func New(projects store.ProjectStore, opts ...Option) *Session {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	s := &Session{
		store:    projects,
		cache:    store.NopCache{},
		notifier: notify.New(),
		log:      discard,
		state:    StateUninitialized,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastError returns the error from the most recent failed save.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Notifier returns the change notifier for subscriptions. Delivery is
// synchronous on the mutating goroutine; observers must not call back
// into the session.
func (s *Session) Notifier() *notify.Notifier {
	return s.notifier
}

// Document returns a deep copy of the current document, or nil before a
// document exists.
func (s *Session) Document() *schema.SiteDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.Clone()
}

// Sections returns a deep copy of the current sections.
func (s *Session) Sections() []schema.Section {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.doc == nil {
		return nil
	}
	return s.doc.Clone().Sections
}

// Load populates the session for a project reference.
//
// The local cache is consulted first for instant display; the
// authoritative store is then fetched, deep-merged against the compiled-in
// defaults (so defaults added after the document was last saved are
// present), installed, and written back to the cache. A store NotFound
// lands in StateEmpty and returns nil. Any other store failure is
// returned without entering StateError; load errors are retryable by
// reloading.
//
// A load superseded by a newer Load call discards its result.
func (s *Session) Load(ctx context.Context, ref Ref) error {
	s.mu.Lock()
	s.loadGen++
	gen := s.loadGen
	s.ref = ref
	s.projectID = ref.ID
	s.lastErr = nil

	if cached, ok := s.cacheGet(ref.Key()); ok {
		s.doc = cached
		s.state = StateCached
		s.publishLocked(notify.Event{Kind: notify.KindReloaded})
	}
	s.mu.Unlock()

	fetched, err := s.fetch(ctx, ref)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.loadGen {
		// A newer load started while this one was in flight.
		s.log.WithField("key", ref.Key()).Debug("discarding stale load response")
		return nil
	}

	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.doc = nil
			s.state = StateEmpty
			return nil
		}
		return fmt.Errorf("load %s: %w", ref.Key(), err)
	}

	merged, err := mergeWithDefaults(fetched)
	if err != nil {
		return fmt.Errorf("load %s: %w", ref.Key(), err)
	}

	before := s.docMapLocked()
	s.doc = merged
	s.state = StateReconciled
	s.cacheSet(ref.Key(), merged)
	s.publishReloadLocked(before)
	return nil
}

// docMapLocked returns the current document as a map, empty when no
// document is loaded.
func (s *Session) docMapLocked() map[string]any {
	if s.doc == nil {
		return map[string]any{}
	}
	m, err := s.doc.ToMap()
	if err != nil {
		return map[string]any{}
	}
	return m
}

// publishReloadLocked diffs the pre-reconcile document against the
// installed one and publishes one path-carrying reload event per changed
// field, then a pathless event marking the reload complete. Observers
// watching a single field react to their path; coarse observers wait for
// the final event.
func (s *Session) publishReloadLocked(before map[string]any) {
	after := s.docMapLocked()

	added, modified, removed := merge.DiffPaths(before, after)
	for _, path := range added {
		v, _ := merge.GetByPath(after, path)
		s.publishLocked(notify.Event{Kind: notify.KindReloaded, Path: path, NewValue: v})
	}
	for _, path := range modified {
		old, _ := merge.GetByPath(before, path)
		v, _ := merge.GetByPath(after, path)
		s.publishLocked(notify.Event{Kind: notify.KindReloaded, Path: path, OldValue: old, NewValue: v})
	}
	for _, path := range removed {
		old, _ := merge.GetByPath(before, path)
		s.publishLocked(notify.Event{Kind: notify.KindReloaded, Path: path, OldValue: old})
	}

	s.publishLocked(notify.Event{Kind: notify.KindReloaded})
}

func (s *Session) fetch(ctx context.Context, ref Ref) (*schema.SiteDocument, error) {
	if ref.ID != "" {
		return s.store.GetProjectByID(ctx, ref.ID)
	}
	return s.store.GetProjectBySlug(ctx, ref.Slug)
}

// mergeWithDefaults deep-merges a fetched document over the compiled-in
// defaults at the map level, then decodes back to the typed form.
func mergeWithDefaults(doc *schema.SiteDocument) (*schema.SiteDocument, error) {
	defaultDoc := schema.SiteDocument{SiteSettings: defaults.SiteSettings()}
	base, err := defaultDoc.ToMap()
	if err != nil {
		return nil, err
	}
	overlay, err := doc.ToMap()
	if err != nil {
		return nil, err
	}
	return schema.DocumentFromMap(merge.Deep(base, overlay))
}

// UpdateSectionProperty replaces one key inside a section's props.
// A missing section id is a no-op, not an error: it tolerates races with
// removal or reordering in the same session. Sibling sections are left
// referentially unchanged so the UI can re-render minimally.
func (s *Session) UpdateSectionProperty(sectionID, key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return
	}
	i := s.doc.SectionIndex(sectionID)
	if i < 0 {
		return
	}

	sec := &s.doc.Sections[i]
	old := sec.Props[key]
	props := make(map[string]any, len(sec.Props)+1)
	for k, v := range sec.Props {
		props[k] = v
	}
	props[key] = value
	sec.Props = props

	s.publishLocked(notify.Event{
		Kind:      notify.KindSectionProps,
		SectionID: sectionID,
		Path:      key,
		OldValue:  old,
		NewValue:  value,
	})
}

// UpdateSiteSettings deep-sets a settings field addressed by a
// dot-separated path, creating intermediate objects as needed. No
// validation happens here; the persistence boundary validates.
func (s *Session) UpdateSiteSettings(path string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		s.ensureDocumentLocked()
	}

	settings, err := s.doc.SiteSettings.ToMap()
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	old, _ := merge.GetByPath(settings, path)
	merge.SetByPath(settings, path, value)

	updated, err := schema.SettingsFromMap(settings)
	if err != nil {
		return fmt.Errorf("update settings %s: %w", path, err)
	}
	s.doc.SiteSettings = updated

	s.publishLocked(notify.Event{
		Kind:     notify.KindSettings,
		Path:     path,
		OldValue: old,
		NewValue: value,
	})
	return nil
}

// AddSection appends a new section of the given type with a generated
// unique id, the type's default props, and the baseline styles. Never
// fails: unknown types get empty props.
func (s *Session) AddSection(typ string) schema.Section {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureDocumentLocked()

	sec := schema.Section{
		ID:     schema.NewSectionID(typ),
		Type:   typ,
		Props:  defaults.For(typ),
		Styles: defaults.BaselineStyles(),
	}
	s.doc.Sections = append(s.doc.Sections, sec)

	s.publishLocked(notify.Event{Kind: notify.KindSectionAdded, SectionID: sec.ID})
	return sec.Clone()
}

// RemoveSection deletes the section with the given id.
func (s *Session) RemoveSection(sectionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return ErrNoDocument
	}
	i := s.doc.SectionIndex(sectionID)
	if i < 0 {
		return ErrSectionNotFound
	}

	s.doc.Sections = append(s.doc.Sections[:i], s.doc.Sections[i+1:]...)
	s.publishLocked(notify.Event{Kind: notify.KindSectionRemoved, SectionID: sectionID})
	return nil
}

// DuplicateSection clones the section with the given id, regenerating the
// id, and inserts the copy directly after the original.
func (s *Session) DuplicateSection(sectionID string) (schema.Section, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return schema.Section{}, ErrNoDocument
	}
	i := s.doc.SectionIndex(sectionID)
	if i < 0 {
		return schema.Section{}, ErrSectionNotFound
	}

	dup := s.doc.Sections[i].Clone()
	dup.ID = schema.NewSectionID(dup.Type)

	s.doc.Sections = append(s.doc.Sections, schema.Section{})
	copy(s.doc.Sections[i+2:], s.doc.Sections[i+1:])
	s.doc.Sections[i+1] = dup

	s.publishLocked(notify.Event{Kind: notify.KindSectionAdded, SectionID: dup.ID})
	return dup.Clone(), nil
}

// ReorderSections removes the section at from and reinserts it at to,
// shifting intervening sections. Out-of-range indices return an error and
// leave the document untouched.
func (s *Session) ReorderSections(from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return ErrNoDocument
	}
	n := len(s.doc.Sections)
	if from < 0 || from >= n || to < 0 || to >= n {
		return ErrIndexOutOfRange
	}
	if from == to {
		return nil
	}

	sec := s.doc.Sections[from]
	rest := append(s.doc.Sections[:from], s.doc.Sections[from+1:]...)
	s.doc.Sections = append(rest[:to], append([]schema.Section{sec}, rest[to:]...)...)

	s.publishLocked(notify.Event{Kind: notify.KindReordered, SectionID: sec.ID})
	return nil
}

// Save sends the complete current settings and sections to the store's
// authorization-checked write. With no project bound it fails with
// ErrNotPersistable before any store call. On failure the in-memory
// document is left unchanged and the error is surfaced for user-visible
// reporting; retry is the user's call, never automatic.
func (s *Session) Save(ctx context.Context) error {
	s.mu.Lock()
	if s.projectID == "" {
		s.mu.Unlock()
		return ErrNotPersistable
	}
	if s.doc == nil {
		s.mu.Unlock()
		return ErrNoDocument
	}
	id := s.projectID
	snapshot := s.doc.Clone()
	s.mu.Unlock()

	err := s.store.SaveProject(ctx, id, snapshot.SiteSettings, snapshot.Sections)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.lastErr = err
		s.state = StateError
		return fmt.Errorf("save project %s: %w", id, err)
	}

	s.lastErr = nil
	s.state = StateReconciled
	s.cacheSet(s.ref.Key(), snapshot)
	return nil
}

// CreateFrom creates a brand-new project seeded from a template (or from
// bare defaults when templateName is empty), binds it to this session,
// and returns the new project id.
func (s *Session) CreateFrom(ctx context.Context, name, slug, templateName string) (string, error) {
	var doc *schema.SiteDocument
	if templateName == "" {
		doc = &schema.SiteDocument{SiteSettings: defaults.SiteSettings()}
		if name != "" {
			doc.SiteSettings.Name = name
		}
	} else {
		var err error
		doc, err = defaults.Instantiate(templateName)
		if err != nil {
			return "", err
		}
		if name != "" {
			doc.SiteSettings.Name = name
		}
	}

	id, err := s.store.CreateProject(ctx, name, slug, &doc.SiteSettings, doc.Sections)
	if err != nil {
		return "", fmt.Errorf("create project %q: %w", slug, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadGen++ // invalidate in-flight loads for the previous ref
	s.ref = Ref{ID: id, Slug: slug}
	s.projectID = id
	s.doc = doc
	s.state = StateReconciled
	s.lastErr = nil
	s.cacheSet(id, doc)
	s.publishLocked(notify.Event{Kind: notify.KindReloaded})
	return id, nil
}

// ensureDocumentLocked gives editing operations a document to work on in
// empty and uninitialized sessions.
func (s *Session) ensureDocumentLocked() {
	if s.doc == nil {
		s.doc = &schema.SiteDocument{SiteSettings: defaults.SiteSettings()}
	}
}

// cacheGet reads the local cache, best-effort.
func (s *Session) cacheGet(key string) (doc *schema.SiteDocument, ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			s.log.WithField("key", key).Warnf("cache get panic: %v", rec)
			doc, ok = nil, false
		}
	}()
	return s.cache.Get(key)
}

// cacheSet writes the local cache, best-effort. The cache is an
// accelerator, never the source of truth; failures are logged and
// swallowed.
func (s *Session) cacheSet(key string, doc *schema.SiteDocument) {
	defer func() {
		if rec := recover(); rec != nil {
			s.log.WithField("key", key).Warnf("cache set panic: %v", rec)
		}
	}()
	s.cache.Set(key, doc.Clone())
}

func (s *Session) publishLocked(ev notify.Event) {
	s.notifier.Publish(ev)
}
