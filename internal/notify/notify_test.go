package notify

import "testing"

func TestSubscribeReceivesAll(t *testing.T) {
	n := New()

	var got []Event
	n.Subscribe(func(ev Event) { got = append(got, ev) })

	n.Publish(Event{Kind: KindSectionAdded, SectionID: "hero-1"})
	n.Publish(Event{Kind: KindSettings, Path: "theme.primary"})

	if len(got) != 2 {
		t.Fatalf("received %d events, want 2", len(got))
	}
	if got[0].SectionID != "hero-1" || got[1].Path != "theme.primary" {
		t.Errorf("events out of order or mangled: %+v", got)
	}
}

func TestSubscribeKindFilters(t *testing.T) {
	n := New()

	var reloads int
	n.SubscribeKind(KindReloaded, func(ev Event) { reloads++ })

	n.Publish(Event{Kind: KindSectionAdded})
	n.Publish(Event{Kind: KindReloaded})
	n.Publish(Event{Kind: KindReloaded})

	if reloads != 2 {
		t.Errorf("kind observer fired %d times, want 2", reloads)
	}
}

func TestUnsubscribe(t *testing.T) {
	n := New()

	var count int
	sub := n.Subscribe(func(ev Event) { count++ })

	n.Publish(Event{Kind: KindSettings})
	sub.Unsubscribe()
	sub.Unsubscribe() // second call is a no-op
	n.Publish(Event{Kind: KindSettings})

	if count != 1 {
		t.Errorf("observer fired %d times after unsubscribe, want 1", count)
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindSettings, "settings"},
		{KindSectionProps, "section_props"},
		{KindSectionAdded, "section_added"},
		{KindSectionRemoved, "section_removed"},
		{KindReordered, "reordered"},
		{KindReloaded, "reloaded"},
		{Kind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
