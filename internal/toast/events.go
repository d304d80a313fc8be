package toast

// Event names published by Listener.
const (
	EventListenerStart = "listener_start"
	EventListenerStop  = "listener_stop"
	EventCaptured      = "toast_captured"
	EventExpired       = "toast_expired"
)

// Event represents a toast listener lifecycle event.
// Minimal and stable: name, the toast text involved (if any), and optional
// fields via key/values.
type Event struct {
	Name     string
	Messages []string
	Fields   map[string]any
}

// EventPublisher receives events from the listener. Implementations should be
// lightweight and non-blocking; Publish must not panic.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}
