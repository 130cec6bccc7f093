package server

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/quizdesk/internal/wizard"
)

// entry is one HTTP authoring session. mu is held for the whole of an
// action, including a generation call, so actions on one session never
// overlap.
type entry struct {
	mu       sync.Mutex
	session  wizard.Session
	lastUsed time.Time
}

// registry owns every live session. Sessions share nothing but the
// registry map itself.
type registry struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	now     func() time.Time
}

func newRegistry(ttl time.Duration) *registry {
	return &registry{
		entries: make(map[string]*entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (r *registry) create() (string, *entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	e := &entry{session: wizard.New(), lastUsed: r.now()}
	r.entries[id] = e
	return id, e
}

// get returns the session and marks it used. Expired sessions are
// treated as absent.
func (r *registry) get(id string) (*entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	now := r.now()
	if r.ttl > 0 && now.Sub(e.lastUsed) > r.ttl {
		delete(r.entries, id)
		return nil, false
	}
	e.lastUsed = now
	return e, true
}

func (r *registry) remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return false
	}
	delete(r.entries, id)
	return true
}

// sweep discards sessions idle for longer than the TTL and reports how
// many were dropped.
func (r *registry) sweep() int {
	if r.ttl <= 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	n := 0
	for id, e := range r.entries {
		if now.Sub(e.lastUsed) > r.ttl {
			delete(r.entries, id)
			n++
		}
	}
	return n
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
