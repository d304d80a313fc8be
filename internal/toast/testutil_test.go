package toast

import (
	"sync"
	"sync/atomic"
	"time"

	"toastd/internal/a11y"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

// recorder is a previous listener that keeps every event it receives and
// tracks how many deliveries overlap.
type recorder struct {
	mu          sync.Mutex
	events      []a11y.Event
	inflight    atomic.Int32
	maxInflight atomic.Int32
	delay       time.Duration
}

func (r *recorder) OnAccessibilityEvent(ev a11y.Event) {
	n := r.inflight.Add(1)
	for {
		m := r.maxInflight.Load()
		if n <= m || r.maxInflight.CompareAndSwap(m, n) {
			break
		}
	}
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
	r.inflight.Add(-1)
}

func (r *recorder) Events() []a11y.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]a11y.Event(nil), r.events...)
}

func toastEvent(id string, text ...string) a11y.Event {
	return a11y.Event{ID: id, Type: a11y.TypeNotificationStateChanged, Text: text}
}

func newTestListener(prev a11y.Listener) (*Listener, *a11y.Automation, *fakeClock, *MemoryPublisher) {
	slot := a11y.NewAutomation()
	if prev != nil {
		slot.SetListener(prev)
	}
	clock := newFakeClock()
	pub := NewMemoryPublisher()
	l := NewWithConfig(Config{Slot: slot, Now: clock.Now, Publisher: pub})
	return l, slot, clock, pub
}
