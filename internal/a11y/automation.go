// Package a11y models the platform side of UI automation: accessibility
// events and the single observer slot that receives them.
package a11y

import "sync"

// Slot is the platform's single registration point for the current
// accessibility event listener. A nil Listener means no observer.
type Slot interface {
	Listener() Listener
	SetListener(Listener)
}

// Automation is an in-memory observer slot. Events handed to Dispatch are
// delivered to whichever listener is installed at that moment.
type Automation struct {
	mu       sync.RWMutex
	listener Listener
}

func NewAutomation() *Automation { return &Automation{} }

func (a *Automation) Listener() Listener {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.listener
}

func (a *Automation) SetListener(l Listener) {
	a.mu.Lock()
	a.listener = l
	a.mu.Unlock()
}

// Dispatch delivers ev to the installed listener, if any. It reports whether
// a listener received the event. The slot lock is not held during delivery,
// so a listener may swap the slot from inside its callback.
func (a *Automation) Dispatch(ev Event) bool {
	l := a.Listener()
	if l == nil {
		return false
	}
	l.OnAccessibilityEvent(ev)
	return true
}
