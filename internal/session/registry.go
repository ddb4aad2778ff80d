package session

import (
	"sync"
	"time"

	"github.com/fhuszti/asset-portal-go/internal/request"
	"github.com/google/uuid"
)

// DefaultIdleTTL is how long an untouched session survives.
const DefaultIdleTTL = 30 * time.Minute

// Registry owns every live portal session, keyed by the session cookie id.
// Idle sessions are swept out and their timers released.
type Registry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session

	sub        request.Submitter
	pageSize   int
	closeDelay time.Duration
	idleTTL    time.Duration

	stop chan struct{}
	once sync.Once
}

func NewRegistry(sub request.Submitter, pageSize int, closeDelay, idleTTL time.Duration) *Registry {
	if idleTTL <= 0 {
		idleTTL = DefaultIdleTTL
	}
	r := &Registry{
		sessions:   make(map[uuid.UUID]*Session),
		sub:        sub,
		pageSize:   pageSize,
		closeDelay: closeDelay,
		idleTTL:    idleTTL,
		stop:       make(chan struct{}),
	}
	go r.sweep()
	return r
}

// Get returns the session for the id, creating it if unknown, and marks it
// as recently used.
func (r *Registry) Get(id uuid.UUID) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		s = newSession(id, r.sub, r.pageSize, r.closeDelay)
		r.sessions[id] = s
	}
	s.Touch()
	return s
}

// Lookup returns an existing session without creating one.
func (r *Registry) Lookup(id uuid.UUID) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	return s, ok
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Close stops the sweeper and tears down every session.
func (r *Registry) Close() {
	r.once.Do(func() { close(r.stop) })

	r.mu.Lock()
	sessions := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		sessions = append(sessions, s)
	}
	r.sessions = make(map[uuid.UUID]*Session)
	r.mu.Unlock()

	for _, s := range sessions {
		s.teardown()
	}
}

func (r *Registry) sweep() {
	ticker := time.NewTicker(r.idleTTL / 2)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			r.expireIdle()
		}
	}
}

func (r *Registry) expireIdle() {
	cutoff := time.Now().Add(-r.idleTTL)

	r.mu.Lock()
	var expired []*Session
	for id, s := range r.sessions {
		if s.idleSince().Before(cutoff) {
			expired = append(expired, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range expired {
		s.teardown()
	}
}
