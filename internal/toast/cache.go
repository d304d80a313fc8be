package toast

import (
	"sync"
	"time"
)

// DefaultExpiryWindow is how long a captured toast stays visible to readers.
const DefaultExpiryWindow = 3500 * time.Millisecond

// Cache holds the text of the most recent toast. Entries expire lazily: a
// Read that finds the content older than the window clears it before
// returning. All access is serialized by a single mutex.
type Cache struct {
	mu        sync.Mutex
	messages  []string
	updatedAt time.Time

	window   time.Duration
	now      func() time.Time
	onExpire func(stale []string)
}

// NewCache returns an empty cache. A non-positive window selects
// DefaultExpiryWindow; a nil now selects time.Now.
func NewCache(window time.Duration, now func() time.Time) *Cache {
	if window <= 0 {
		window = DefaultExpiryWindow
	}
	if now == nil {
		now = time.Now
	}
	return &Cache{window: window, now: now}
}

// Window returns the configured expiry window.
func (c *Cache) Window() time.Duration { return c.window }

// Write replaces the cached content with fragments and stamps the time.
func (c *Cache) Write(fragments []string) {
	c.mu.Lock()
	c.messages = append(c.messages[:0], fragments...)
	c.updatedAt = c.now()
	c.mu.Unlock()
}

// Read returns a copy of the current content, clearing it first if it has
// outlived the expiry window. The result is never nil.
func (c *Cache) Read() []string {
	c.mu.Lock()
	var stale []string
	if len(c.messages) > 0 && c.now().Sub(c.updatedAt) > c.window {
		stale = c.messages
		c.messages = nil
	}
	out := make([]string, len(c.messages))
	copy(out, c.messages)
	c.mu.Unlock()

	if stale != nil && c.onExpire != nil {
		c.onExpire(stale)
	}
	return out
}
