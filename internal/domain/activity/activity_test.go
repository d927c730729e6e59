package activity

import (
	"testing"
	"time"

	"shopwise-server/internal/domain/eventbus"
)

func TestRecordAndRecent(t *testing.T) {
	r := NewRecorder(10)
	r.Record("login", "muser", "role=user")
	r.Record("logout", "abc-123", "")

	got := r.Recent(0)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	// newest first
	if got[0].Kind != "logout" || got[1].Kind != "login" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if got[1].Subject != "muser" || got[1].Detail != "role=user" {
		t.Fatalf("unexpected entry: %+v", got[1])
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	r := NewRecorder(3)
	for _, subject := range []string{"a", "b", "c", "d", "e"} {
		r.Record("login", subject, "")
	}
	if r.Len() != 3 {
		t.Fatalf("expected 3 retained entries, got %d", r.Len())
	}
	got := r.Recent(0)
	if got[0].Subject != "e" || got[2].Subject != "c" {
		t.Fatalf("unexpected retained window: %+v", got)
	}
}

func TestRecentLimit(t *testing.T) {
	r := NewRecorder(10)
	for _, subject := range []string{"a", "b", "c"} {
		r.Record("register", subject, "")
	}
	got := r.Recent(2)
	if len(got) != 2 || got[0].Subject != "c" || got[1].Subject != "b" {
		t.Fatalf("unexpected limited slice: %+v", got)
	}
}

func TestAttachReceivesBusEvents(t *testing.T) {
	bus := eventbus.NewAsyncEventBus(2)
	bus.Start()
	defer bus.Stop()

	r := NewRecorder(10)
	if err := r.Attach(bus); err != nil {
		t.Fatalf("Attach error: %v", err)
	}
	defer r.Detach()

	bus.PublishAsync(eventbus.TopicLogin, "mvc", "admin")
	bus.PublishAsync(eventbus.TopicRestoreCorrupt, "sess-9")

	deadline := time.Now().Add(2 * time.Second)
	for r.Len() < 2 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 recorded events, got %d", r.Len())
	}

	kinds := map[string]bool{}
	for _, e := range r.Recent(0) {
		kinds[e.Kind] = true
	}
	if !kinds["login"] || !kinds["restore_corrupt"] {
		t.Fatalf("unexpected kinds: %+v", r.Recent(0))
	}
}
