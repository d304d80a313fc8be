// Package session wires the accessibility observer slot to the toast
// listener and exposes the pair as the service behind the HTTP API.
package session

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"toastd/internal/a11y"
	"toastd/internal/toast"
	"toastd/pkg/types"
)

// Config encapsulates the tunables for a Session.
type Config struct {
	// ExpiryWindow overrides toast.DefaultExpiryWindow when positive.
	ExpiryWindow time.Duration
	// Autostart installs the toast listener during construction.
	Autostart bool
	Logger    *zerolog.Logger
	// Publisher additionally receives every toast lifecycle event.
	Publisher toast.EventPublisher
	// Now defaults to time.Now.
	Now func() time.Time
}

// Session owns one observer slot and the toast listener attached to it.
// There is normally one per automation process.
type Session struct {
	slot  *a11y.Automation
	toast *toast.Listener
	log   zerolog.Logger
	now   func() time.Time
	extra toast.EventPublisher

	startTime time.Time

	// observeMu serializes Observe against Start so an observer cannot be
	// swapped in underneath a running listener.
	observeMu sync.Mutex

	dispatched  atomic.Uint64
	undelivered atomic.Uint64
	captured    atomic.Uint64
	expired     atomic.Uint64
	lastCapture atomic.Int64
}

// New builds a Session from cfg.
func New(cfg Config) *Session {
	s := &Session{
		slot:  a11y.NewAutomation(),
		log:   zerolog.Nop(),
		now:   cfg.Now,
		extra: cfg.Publisher,
	}
	if cfg.Logger != nil {
		s.log = cfg.Logger.With().Str("component", "session").Logger()
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.startTime = s.now()
	s.toast = toast.NewWithConfig(toast.Config{
		Slot:         s.slot,
		ExpiryWindow: cfg.ExpiryWindow,
		Logger:       cfg.Logger,
		Publisher:    s,
		Now:          s.now,
	})
	if cfg.Autostart {
		s.Start()
	}
	return s
}

// Slot exposes the observer slot, mostly for tests and embedding.
func (s *Session) Slot() *a11y.Automation { return s.slot }

// Observe installs l as the platform's own observer. It must happen while
// the toast listener is stopped; the listener chains to l once started.
func (s *Session) Observe(l a11y.Listener) error {
	s.observeMu.Lock()
	defer s.observeMu.Unlock()
	if s.toast.IsListening() {
		return ErrAlreadyListening()
	}
	s.slot.SetListener(l)
	return nil
}

func (s *Session) Start() {
	s.observeMu.Lock()
	defer s.observeMu.Unlock()
	s.toast.Start()
}

func (s *Session) Stop() { s.toast.Stop() }

func (s *Session) IsListening() bool { return s.toast.IsListening() }

// ToastMessage returns the current non-expired toast text, possibly empty.
func (s *Session) ToastMessage() []string { return s.toast.ToastMessage() }

// Toast is ToastMessage with an optional requirement that the listener be
// installed. In strict mode a stopped listener yields ErrNotListening.
func (s *Session) Toast(strict bool) ([]string, error) {
	if strict && !s.toast.IsListening() {
		return nil, ErrNotListening()
	}
	return s.toast.ToastMessage(), nil
}

// Dispatch assigns a missing id and timestamp, then hands ev to whichever
// listener occupies the slot. It returns the stamped event and whether a
// listener received it.
func (s *Session) Dispatch(ev a11y.Event) (a11y.Event, bool) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.Time.IsZero() {
		ev.Time = s.now()
	}
	s.dispatched.Add(1)
	delivered := s.slot.Dispatch(ev)
	if !delivered {
		s.undelivered.Add(1)
		s.log.Debug().Str("event_id", ev.ID).Str("type", ev.Type.String()).Msg("no listener installed; event dropped")
	}
	return ev, delivered
}

// Ready reports whether the session can accept events. It always can; the
// method exists for the /readyz probe.
func (s *Session) Ready() bool { return true }

// Status summarizes listener state and counters.
func (s *Session) Status() types.StatusResponse {
	now := s.now()
	return types.StatusResponse{
		Listening:         s.toast.IsListening(),
		ExpiryMS:          s.toast.ExpiryWindow().Milliseconds(),
		EventsDispatched:  s.dispatched.Load(),
		EventsUndelivered: s.undelivered.Load(),
		ToastsCaptured:    s.captured.Load(),
		ToastsExpired:     s.expired.Load(),
		LastCaptureUnixMS: s.lastCapture.Load(),
		UptimeSeconds:     int64(now.Sub(s.startTime).Seconds()),
		ServerTimeUnix:    now.Unix(),
	}
}

// Publish implements toast.EventPublisher to keep the status counters.
func (s *Session) Publish(e toast.Event) {
	switch e.Name {
	case toast.EventCaptured:
		s.captured.Add(1)
		s.lastCapture.Store(s.now().UnixMilli())
	case toast.EventExpired:
		s.expired.Add(1)
	}
	if s.extra != nil {
		s.extra.Publish(e)
	}
}
