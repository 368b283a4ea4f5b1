// Package notify delivers document-change events to the embedding UI.
//
// The session mutates the site document synchronously, so delivery is
// synchronous too: an observer sees the change before the mutating call
// returns, which is what a minimal-re-render UI layer wants.
package notify

import "sync"

// Kind classifies a document change.
type Kind int

const (
	// KindSettings indicates a site-settings field changed.
	KindSettings Kind = iota

	// KindSectionProps indicates a single section prop changed.
	KindSectionProps

	// KindSectionAdded indicates a section was appended.
	KindSectionAdded

	// KindSectionRemoved indicates a section was removed.
	KindSectionRemoved

	// KindReordered indicates the sections order changed.
	KindReordered

	// KindReloaded indicates the whole document was replaced (load,
	// reconcile, template instantiation).
	KindReloaded
)

// String returns the event kind name.
func (k Kind) String() string {
	switch k {
	case KindSettings:
		return "settings"
	case KindSectionProps:
		return "section_props"
	case KindSectionAdded:
		return "section_added"
	case KindSectionRemoved:
		return "section_removed"
	case KindReordered:
		return "reordered"
	case KindReloaded:
		return "reloaded"
	default:
		return "unknown"
	}
}

// Event describes one document change.
type Event struct {
	// Kind is the change classification.
	Kind Kind

	// SectionID identifies the affected section, when one is affected.
	SectionID string

	// Path is the dotted settings path or the prop key that changed.
	Path string

	// OldValue is the previous value (may be nil).
	OldValue any

	// NewValue is the new value (may be nil).
	NewValue any
}

// Observer is called for each document change.
type Observer func(Event)

// Subscription represents an active observer registration.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier fans document changes out to subscribed observers.
type Notifier struct {
	mu sync.RWMutex

	global map[uint64]Observer

	// byKind holds observers interested in one event kind only.
	byKind map[Kind]map[uint64]Observer

	nextID uint64
}

// New creates an empty notifier.
func New() *Notifier {
	return &Notifier{
		global: make(map[uint64]Observer),
		byKind: make(map[Kind]map[uint64]Observer),
	}
}

// Subscribe registers an observer for every event.
func (n *Notifier) Subscribe(obs Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	n.global[n.nextID] = obs
	return &Subscription{id: n.nextID, notifier: n}
}

// SubscribeKind registers an observer for a single event kind.
func (n *Notifier) SubscribeKind(kind Kind, obs Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	if n.byKind[kind] == nil {
		n.byKind[kind] = make(map[uint64]Observer)
	}
	n.byKind[kind][n.nextID] = obs
	return &Subscription{id: n.nextID, notifier: n}
}

// Publish delivers an event to all matching observers synchronously.
func (n *Notifier) Publish(ev Event) {
	n.mu.RLock()
	observers := make([]Observer, 0, len(n.global))
	for _, obs := range n.global {
		observers = append(observers, obs)
	}
	for _, obs := range n.byKind[ev.Kind] {
		observers = append(observers, obs)
	}
	n.mu.RUnlock()

	for _, obs := range observers {
		obs(ev)
	}
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.global, id)
	for _, m := range n.byKind {
		delete(m, id)
	}
}
