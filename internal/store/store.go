// Package store defines the persistence boundary the engine talks to.
//
// The engine never owns durable data: a ProjectStore arbitrates the
// authoritative copy (and concurrent writers, last-write-wins), and a Cache
// is a best-effort read-through accelerator that is never the source of
// truth. Implementations of both are injected; the ones in this package
// exist for embedding and tests.
package store

import (
	"context"
	"errors"

	"github.com/dshills/siteforge/internal/schema"
)

// Errors returned by project store operations.
var (
	// ErrNotFound indicates no project exists for the given id or slug.
	ErrNotFound = errors.New("project not found")

	// ErrUnauthorized indicates the caller does not own the project.
	ErrUnauthorized = errors.New("not authorized for project")

	// ErrSlugTaken indicates the requested slug is already in use.
	ErrSlugTaken = errors.New("slug already taken")
)

// ProjectStore is the authoritative home of site documents.
// Ownership checks are the store's responsibility; callers only react to
// ErrUnauthorized.
type ProjectStore interface {
	// GetProjectByID returns the document for a project id, or ErrNotFound.
	GetProjectByID(ctx context.Context, id string) (*schema.SiteDocument, error)

	// GetProjectBySlug returns the document for a published slug, or ErrNotFound.
	GetProjectBySlug(ctx context.Context, slug string) (*schema.SiteDocument, error)

	// SaveProject replaces the stored settings and sections wholesale.
	// Returns ErrNotFound or ErrUnauthorized.
	SaveProject(ctx context.Context, id string, settings schema.SiteSettings, sections []schema.Section) error

	// CreateProject creates a new project and returns its id.
	// Returns ErrSlugTaken when the slug is in use. A nil settings or
	// sections argument means "use the caller's defaults upstream".
	CreateProject(ctx context.Context, name, slug string, settings *schema.SiteSettings, sections []schema.Section) (string, error)
}

// Cache is a local, best-effort document cache keyed by an opaque project
// identifier (id or slug). Misses and failures must never block a load or
// save path.
type Cache interface {
	// Get returns the cached document and true on a hit.
	Get(key string) (*schema.SiteDocument, bool)

	// Set stores a document under the key, best-effort.
	Set(key string, doc *schema.SiteDocument)
}

// NopCache is a Cache that stores nothing. Useful for transient preview
// sessions.
type NopCache struct{}

// Get always misses.
func (NopCache) Get(string) (*schema.SiteDocument, bool) { return nil, false }

// Set discards the document.
func (NopCache) Set(string, *schema.SiteDocument) {}
