package session

import (
	"github.com/rs/zerolog"

	"toastd/internal/a11y"
)

// LogObserver returns a listener that logs every event at debug level. The
// daemon installs it as the platform's own observer so the chain behind the
// toast listener is never empty.
func LogObserver(log zerolog.Logger) a11y.Listener {
	log = log.With().Str("component", "observer").Logger()
	return a11y.ListenerFunc(func(ev a11y.Event) {
		log.Debug().
			Str("event_id", ev.ID).
			Str("type", ev.Type.String()).
			Str("package", ev.PackageName).
			Str("class", ev.ClassName).
			Strs("text", ev.Text).
			Msg("accessibility event")
	})
}
