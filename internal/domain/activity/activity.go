// Package activity keeps a bounded in-memory feed of session lifecycle
// events for the admin activity view. Entries come in over the event
// bus; the oldest are dropped once the buffer is full.
package activity

import (
	"sync"
	"time"

	"shopwise-server/internal/domain/eventbus"
)

// Entry is one recorded event.
type Entry struct {
	Kind    string    `json:"kind"`
	Subject string    `json:"subject"`
	Detail  string    `json:"detail,omitempty"`
	At      time.Time `json:"at"`
}

// Bus is the subset of the event bus the recorder needs.
type Bus interface {
	Subscribe(topic string, fn interface{}) error
	Unsubscribe(topic string, fn interface{}) error
}

// Recorder subscribes to session topics and retains the most recent
// events in a ring buffer.
type Recorder struct {
	mu       sync.RWMutex
	entries  []Entry
	capacity int
	now      func() time.Time

	bus       Bus
	onLogin   func(username, role string)
	onLogout  func(sessionID string)
	onSignup  func(username string)
	onCorrupt func(sessionID string)
}

// NewRecorder creates a recorder holding up to capacity entries.
func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = 256
	}
	return &Recorder{
		capacity: capacity,
		now:      time.Now,
	}
}

// Attach subscribes the recorder to the session topics on the bus.
func (r *Recorder) Attach(bus Bus) error {
	r.onLogin = func(username, role string) {
		r.Record("login", username, "role="+role)
	}
	r.onLogout = func(sessionID string) {
		r.Record("logout", sessionID, "")
	}
	r.onSignup = func(username string) {
		r.Record("register", username, "")
	}
	r.onCorrupt = func(sessionID string) {
		r.Record("restore_corrupt", sessionID, "record discarded")
	}

	subs := []struct {
		topic string
		fn    interface{}
	}{
		{eventbus.TopicLogin, r.onLogin},
		{eventbus.TopicLogout, r.onLogout},
		{eventbus.TopicRegister, r.onSignup},
		{eventbus.TopicRestoreCorrupt, r.onCorrupt},
	}
	for _, s := range subs {
		if err := bus.Subscribe(s.topic, s.fn); err != nil {
			return err
		}
	}
	r.bus = bus
	return nil
}

// Detach removes the recorder's subscriptions.
func (r *Recorder) Detach() {
	if r.bus == nil {
		return
	}
	_ = r.bus.Unsubscribe(eventbus.TopicLogin, r.onLogin)
	_ = r.bus.Unsubscribe(eventbus.TopicLogout, r.onLogout)
	_ = r.bus.Unsubscribe(eventbus.TopicRegister, r.onSignup)
	_ = r.bus.Unsubscribe(eventbus.TopicRestoreCorrupt, r.onCorrupt)
	r.bus = nil
}

// Record appends an entry, evicting the oldest when full.
func (r *Recorder) Record(kind, subject, detail string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{
		Kind:    kind,
		Subject: subject,
		Detail:  detail,
		At:      r.now(),
	})
	if len(r.entries) > r.capacity {
		r.entries = r.entries[len(r.entries)-r.capacity:]
	}
}

// Recent returns up to n entries, newest first. n <= 0 returns all.
func (r *Recorder) Recent(n int) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := len(r.entries)
	if n <= 0 || n > total {
		n = total
	}
	out := make([]Entry, 0, n)
	for i := total - 1; i >= total-n; i-- {
		out = append(out, r.entries[i])
	}
	return out
}

// Len reports how many entries are currently retained.
func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}
