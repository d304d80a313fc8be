package a11y

// unknownEventTypeError is returned when an event type name cannot be resolved.
type unknownEventTypeError struct{ name string }

func (e unknownEventTypeError) Error() string { return "unknown event type: " + e.name }

// ErrUnknownEventType constructs an unknownEventTypeError for the given input.
func ErrUnknownEventType(name string) error { return unknownEventTypeError{name: name} }

// IsUnknownEventType reports whether err indicates an unrecognized event type.
func IsUnknownEventType(err error) bool {
	_, ok := err.(unknownEventTypeError)
	return ok
}
