package toast

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"toastd/internal/a11y"
)

// Listener captures toast text from notification events. While started it
// sits in the observer slot in front of whatever listener was there before,
// and forwards every event to that previous listener.
type Listener struct {
	slot  a11y.Slot
	cache *Cache
	log   zerolog.Logger
	pub   EventPublisher

	listening atomic.Bool

	// mu guards previous and serializes Start/Stop. It is never held while
	// calling another listener.
	mu       sync.Mutex
	previous a11y.Listener

	// eventMu serializes OnAccessibilityEvent.
	eventMu sync.Mutex
}

// IsListening reports whether the listener is currently installed.
func (l *Listener) IsListening() bool { return l.listening.Load() }

// ExpiryWindow returns how long a captured toast stays readable.
func (l *Listener) ExpiryWindow() time.Duration { return l.cache.Window() }

// Start installs the listener into the slot. The listener already in the
// slot is remembered and receives every event from now on. Calling Start
// while listening is a no-op.
func (l *Listener) Start() {
	if !l.start() {
		l.log.Debug().Msg("toast notification listener is already started")
		return
	}
	listeningGauge.Set(1)
	l.pub.Publish(Event{Name: EventListenerStart})
}

func (l *Listener) start() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.listening.Load() {
		return false
	}
	l.log.Info().Msg("starting toast notification listener")
	prev := l.slot.Listener()
	if self, ok := prev.(*Listener); ok && self == l {
		prev = nil
	}
	l.previous = prev
	l.listening.Store(true)
	if prev != nil {
		l.log.Debug().Str("previous", describe(prev)).Msg("chaining to previous listener")
	}
	l.slot.SetListener(l)
	return true
}

// Stop puts the previously installed listener (possibly none) back into the
// slot. Calling Stop while not listening is a no-op.
func (l *Listener) Stop() {
	if !l.stop() {
		l.log.Debug().Msg("toast notification listener is already stopped")
		return
	}
	listeningGauge.Set(0)
	l.pub.Publish(Event{Name: EventListenerStop})
}

func (l *Listener) stop() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.listening.Load() {
		return false
	}
	l.log.Info().Msg("stopping toast notification listener")
	l.listening.Store(false)
	l.slot.SetListener(l.previous)
	return true
}

// OnAccessibilityEvent records the text of notification events and then
// forwards ev unchanged to the previous listener. A panic raised by the
// previous listener propagates to the caller.
func (l *Listener) OnAccessibilityEvent(ev a11y.Event) {
	l.eventMu.Lock()
	defer l.eventMu.Unlock()

	eventsSeenTotal.WithLabelValues(ev.Type.String()).Inc()
	if ev.Type == a11y.TypeNotificationStateChanged {
		l.log.Debug().Str("event_id", ev.ID).Str("package", ev.PackageName).
			Strs("text", ev.Text).Msg("caught toast message")
		if len(ev.Text) > 0 {
			l.cache.Write(ev.Text)
			capturedTotal.Inc()
			l.pub.Publish(Event{Name: EventCaptured, Messages: append([]string(nil), ev.Text...),
				Fields: map[string]any{"event_id": ev.ID, "package": ev.PackageName}})
		}
	}

	if prev := l.previousListener(); prev != nil {
		prev.OnAccessibilityEvent(ev)
	}
}

// ToastMessage returns the text of the most recent toast, or an empty slice
// when none was captured or the last one has expired. The returned slice is
// a copy.
func (l *Listener) ToastMessage() []string { return l.cache.Read() }

func (l *Listener) previousListener() a11y.Listener {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.previous
}

func (l *Listener) expired(stale []string) {
	l.log.Info().Strs("text", stale).Msg("clearing the outdated toast message")
	expiredTotal.Inc()
	l.pub.Publish(Event{Name: EventExpired, Messages: stale})
}

func describe(l a11y.Listener) string {
	if s, ok := l.(interface{ String() string }); ok {
		return s.String()
	}
	return "listener"
}
