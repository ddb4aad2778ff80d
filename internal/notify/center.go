package notify

import (
	"sync"
	"time"

	"github.com/fhuszti/asset-portal-go/internal/port"
	"github.com/google/uuid"
)

// DefaultTTL is how long a terminal notification stays before auto-dismiss.
const DefaultTTL = 5 * time.Second

// Center holds the transient notifications of one view. Terminal entries
// (success/error) auto-dismiss after the TTL; working entries are pinned and
// only leave when the terminal entry with the same key replaces them. Close
// stops every pending timer so a torn-down view is never mutated late.
type Center struct {
	mu     sync.Mutex
	ttl    time.Duration
	items  []port.Notification
	timers map[string]*time.Timer
	closed bool
}

// compile-time check: *Center must satisfy port.Notifier
var _ port.Notifier = (*Center)(nil)

func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{ttl: ttl, timers: make(map[string]*time.Timer)}
}

// Working emits a pinned notification for the given key. No dismiss timer is
// armed: only the terminal Success/Error call for the same key removes it.
func (c *Center) Working(key, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	c.dropByKeyLocked(key)
	c.items = append(c.items, port.Notification{
		ID:      uuid.NewString(),
		Key:     key,
		Level:   port.NotificationWorking,
		Message: message,
	})
}

func (c *Center) Success(key, message string) {
	c.terminal(key, port.NotificationSuccess, message)
}

func (c *Center) Error(key, message string) {
	c.terminal(key, port.NotificationError, message)
}

func (c *Center) terminal(key string, level port.NotificationLevel, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	// Resolves (and replaces) any pinned working entry for the same key.
	c.dropByKeyLocked(key)

	n := port.Notification{
		ID:      uuid.NewString(),
		Key:     key,
		Level:   level,
		Message: message,
	}
	c.items = append(c.items, n)

	c.timers[n.ID] = time.AfterFunc(c.ttl, func() {
		c.dismiss(n.ID)
	})
}

// Dismiss removes a notification by id, e.g. when the user closes it by hand.
func (c *Center) Dismiss(id string) {
	c.dismiss(id)
}

// Snapshot returns the currently visible notifications, oldest first.
func (c *Center) Snapshot() []port.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]port.Notification, len(c.items))
	copy(out, c.items)
	return out
}

// Close stops all pending dismiss timers and freezes the center. Further
// emissions are dropped; a fired timer racing Close finds nothing to mutate.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
	c.items = nil
}

func (c *Center) dismiss(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
	for i, n := range c.items {
		if n.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

func (c *Center) dropByKeyLocked(key string) {
	kept := c.items[:0]
	for _, n := range c.items {
		if n.Key == key {
			if t, ok := c.timers[n.ID]; ok {
				t.Stop()
				delete(c.timers, n.ID)
			}
			continue
		}
		kept = append(kept, n)
	}
	c.items = kept
}
