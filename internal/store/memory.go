package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/siteforge/internal/schema"
)

// MemoryStore is an in-process ProjectStore. It backs tests and embedded
// single-user deployments; a hosted deployment substitutes its own
// implementation behind the same interface.
type MemoryStore struct {
	mu       sync.RWMutex
	projects map[string]*memoryProject
	bySlug   map[string]string

	// actor is the identity performing operations; ownership checks
	// compare against it.
	actor string
}

type memoryProject struct {
	id    string
	name  string
	slug  string
	owner string
	doc   *schema.SiteDocument
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithActor sets the identity used for ownership checks.
func WithActor(actor string) MemoryOption {
	return func(s *MemoryStore) {
		s.actor = actor
	}
}

// NewMemoryStore creates an empty in-process store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		projects: make(map[string]*memoryProject),
		bySlug:   make(map[string]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetProjectByID returns the document for a project id.
func (s *MemoryStore) GetProjectByID(_ context.Context, id string) (*schema.SiteDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p.doc.Clone(), nil
}

// GetProjectBySlug returns the document for a published slug.
func (s *MemoryStore) GetProjectBySlug(_ context.Context, slug string) (*schema.SiteDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.bySlug[slug]
	if !ok {
		return nil, ErrNotFound
	}
	return s.projects[id].doc.Clone(), nil
}

// SaveProject replaces the stored settings and sections. Last write wins;
// the store does not merge concurrent edits.
func (s *MemoryStore) SaveProject(_ context.Context, id string, settings schema.SiteSettings, sections []schema.Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return ErrNotFound
	}
	if p.owner != s.actor {
		return ErrUnauthorized
	}

	doc := &schema.SiteDocument{SiteSettings: settings, Sections: sections}
	p.doc = doc.Clone()
	return nil
}

// CreateProject creates a new project owned by the configured actor.
func (s *MemoryStore) CreateProject(_ context.Context, name, slug string, settings *schema.SiteSettings, sections []schema.Section) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.bySlug[slug]; taken {
		return "", ErrSlugTaken
	}

	doc := &schema.SiteDocument{Sections: sections}
	if settings != nil {
		doc.SiteSettings = *settings
	} else {
		doc.SiteSettings.Name = name
	}

	id := uuid.New().String()
	s.projects[id] = &memoryProject{
		id:    id,
		name:  name,
		slug:  slug,
		owner: s.actor,
		doc:   doc.Clone(),
	}
	s.bySlug[slug] = id
	return id, nil
}

// SetActor switches the identity used for ownership checks.
func (s *MemoryStore) SetActor(actor string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actor = actor
}

// Slug returns the slug registered for a project id. Test helper.
func (s *MemoryStore) Slug(id string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if p, ok := s.projects[id]; ok {
		return p.slug
	}
	return ""
}
