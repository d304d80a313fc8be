// Package types holds the JSON payloads of the toastd HTTP API.
package types

// ToastResponse is returned by GET /toast.
type ToastResponse struct {
	// Whether the toast listener is currently installed.
	// example: true
	Listening bool `json:"listening" example:"true"`
	// Text fragments of the most recent toast, in event order. Empty when no
	// toast was captured or the last one expired.
	// example: ["Saved"]
	Messages []string `json:"messages" example:"Saved"`
}

// AccessibilityEvent is the wire form of a platform accessibility event, as
// posted to /events or sent as a frame on /events/ws.
type AccessibilityEvent struct {
	// Optional event id; the server assigns one when empty.
	// example: 3f0c2a4e-5d7b-4c1e-9a55-0c3b8f6c2d11
	ID string `json:"id,omitempty" example:"3f0c2a4e-5d7b-4c1e-9a55-0c3b8f6c2d11"`
	// Event type: snake_case name, TYPE_* constant name, or numeric value.
	// example: notification_state_changed
	Type string `json:"type" example:"notification_state_changed"`
	// Text carried by the event.
	// example: ["Saved"]
	Text []string `json:"text,omitempty" example:"Saved"`
	// Package that raised the event.
	// example: com.example.app
	PackageName string `json:"package_name,omitempty" example:"com.example.app"`
	// Class name of the source view.
	// example: android.widget.Toast$TN
	ClassName string `json:"class_name,omitempty" example:"android.widget.Toast$TN"`
	// Event time in unix milliseconds; the server uses its own clock when zero.
	// example: 1700000000000
	TimeUnixMS int64 `json:"time_unix_ms,omitempty" example:"1700000000000"`
}

// EventAck acknowledges an ingested event. On /events/ws a rejected frame is
// acknowledged with Error set instead.
type EventAck struct {
	// Id assigned to the event.
	// example: 3f0c2a4e-5d7b-4c1e-9a55-0c3b8f6c2d11
	ID string `json:"id,omitempty" example:"3f0c2a4e-5d7b-4c1e-9a55-0c3b8f6c2d11"`
	// Whether a listener was installed in the observer slot to receive it.
	// example: true
	Delivered bool `json:"delivered" example:"true"`
	// Error message for a rejected frame.
	Error string `json:"error,omitempty"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: invalid JSON body
	Error string `json:"error" example:"invalid JSON body"`
	// HTTP status code.
	// example: 400
	Code int `json:"code" example:"400"`
}

// StatusResponse is returned by GET /status and by the start/stop endpoints.
type StatusResponse struct {
	// Whether the toast listener is currently installed.
	// example: true
	Listening bool `json:"listening" example:"true"`
	// Expiry window for captured toasts, in milliseconds.
	// example: 3500
	ExpiryMS int64 `json:"expiry_ms" example:"3500"`
	// Events handed to the observer slot since startup.
	// example: 42
	EventsDispatched uint64 `json:"events_dispatched" example:"42"`
	// Events dispatched while no listener was installed.
	// example: 0
	EventsUndelivered uint64 `json:"events_undelivered" example:"0"`
	// Toasts captured since startup.
	// example: 3
	ToastsCaptured uint64 `json:"toasts_captured" example:"3"`
	// Toasts cleared on read after expiring.
	// example: 1
	ToastsExpired uint64 `json:"toasts_expired" example:"1"`
	// Time of the last capture in unix milliseconds (0 if none).
	// example: 1700000000000
	LastCaptureUnixMS int64 `json:"last_capture_unix_ms,omitempty" example:"1700000000000"`
	// Uptime of the server in seconds.
	// example: 3600
	UptimeSeconds int64 `json:"uptime_seconds" example:"3600"`
	// Server time in unix seconds.
	// example: 1700000000
	ServerTimeUnix int64 `json:"server_time_unix" example:"1700000000"`
}
