package a11y

import (
	"strconv"
	"strings"
	"time"
)

// EventType identifies the kind of accessibility event. Values match the
// platform's numeric event type constants so bridges can forward them as-is.
type EventType int

const (
	TypeViewClicked              EventType = 1
	TypeViewLongClicked          EventType = 2
	TypeViewSelected             EventType = 4
	TypeViewFocused              EventType = 8
	TypeViewTextChanged          EventType = 16
	TypeWindowStateChanged       EventType = 32
	TypeNotificationStateChanged EventType = 64
	TypeWindowContentChanged     EventType = 2048
)

var typeNames = map[EventType]string{
	TypeViewClicked:              "view_clicked",
	TypeViewLongClicked:          "view_long_clicked",
	TypeViewSelected:             "view_selected",
	TypeViewFocused:              "view_focused",
	TypeViewTextChanged:          "view_text_changed",
	TypeWindowStateChanged:       "window_state_changed",
	TypeNotificationStateChanged: "notification_state_changed",
	TypeWindowContentChanged:     "window_content_changed",
}

func (t EventType) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return "type_" + strconv.Itoa(int(t))
}

// ParseEventType accepts a snake_case name ("notification_state_changed"),
// the platform constant name ("TYPE_NOTIFICATION_STATE_CHANGED"), or a
// decimal value of a known type.
func ParseEventType(s string) (EventType, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.TrimPrefix(v, "type_")
	if n, err := strconv.Atoi(v); err == nil {
		if _, ok := typeNames[EventType(n)]; ok {
			return EventType(n), nil
		}
		return 0, ErrUnknownEventType(s)
	}
	for t, name := range typeNames {
		if name == v {
			return t, nil
		}
	}
	return 0, ErrUnknownEventType(s)
}

// Event is a single accessibility event as delivered by the platform.
type Event struct {
	ID          string
	Type        EventType
	Text        []string
	PackageName string
	ClassName   string
	Time        time.Time
}

// Listener receives accessibility events. It mirrors the platform's
// single-method observer callback.
type Listener interface {
	OnAccessibilityEvent(Event)
}

// ListenerFunc adapts a plain function to a Listener.
type ListenerFunc func(Event)

func (f ListenerFunc) OnAccessibilityEvent(ev Event) { f(ev) }
