package toast

import (
	"time"

	"github.com/rs/zerolog"

	"toastd/internal/a11y"
)

// Config encapsulates all tunables for Listener construction.
type Config struct {
	// Slot is the observer slot the listener installs itself into. Required.
	Slot a11y.Slot
	// ExpiryWindow overrides DefaultExpiryWindow when positive.
	ExpiryWindow time.Duration
	// Logger defaults to a disabled logger.
	Logger *zerolog.Logger
	// Publisher receives lifecycle events; defaults to a no-op.
	Publisher EventPublisher
	// Now is the clock used for expiry; defaults to time.Now.
	Now func() time.Time
}

// New constructs a Listener for slot with package defaults.
func New(slot a11y.Slot) *Listener {
	return NewWithConfig(Config{Slot: slot})
}

// NewWithConfig constructs a Listener from Config, applying defaults.
func NewWithConfig(cfg Config) *Listener {
	l := &Listener{
		slot:  cfg.Slot,
		cache: NewCache(cfg.ExpiryWindow, cfg.Now),
		log:   zerolog.Nop(),
		pub:   noopPublisher{},
	}
	if cfg.Logger != nil {
		l.log = cfg.Logger.With().Str("component", "toast").Logger()
	}
	if cfg.Publisher != nil {
		l.pub = cfg.Publisher
	}
	l.cache.onExpire = l.expired
	return l
}
