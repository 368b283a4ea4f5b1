package session

import "errors"

// Errors returned by session operations.
var (
	// ErrNotPersistable indicates Save was called with no project bound,
	// e.g. a transient preview session or a slug-only viewing session.
	ErrNotPersistable = errors.New("no project bound, document not persistable")

	// ErrNoDocument indicates an operation needs a loaded document.
	ErrNoDocument = errors.New("no document loaded")

	// ErrIndexOutOfRange indicates a reorder index outside the sections
	// slice. The document is left untouched.
	ErrIndexOutOfRange = errors.New("section index out of range")

	// ErrSectionNotFound indicates no section carries the requested id.
	ErrSectionNotFound = errors.New("section not found")
)
