package session

// notListeningError signals a strict toast read while the listener is stopped.
type notListeningError struct{}

func (notListeningError) Error() string { return "toast listener is not started" }

func ErrNotListening() error { return notListeningError{} }

// IsNotListening reports whether err indicates the listener is stopped (409).
func IsNotListening(err error) bool {
	_, ok := err.(notListeningError)
	return ok
}

// alreadyListeningError is returned by Observe while the toast listener is
// installed.
type alreadyListeningError struct{}

func (alreadyListeningError) Error() string {
	return "toast listener is started; stop it before replacing the observer"
}

func ErrAlreadyListening() error { return alreadyListeningError{} }

// IsAlreadyListening reports whether err came from Observe on a started session.
func IsAlreadyListening(err error) bool {
	_, ok := err.(alreadyListeningError)
	return ok
}
