// Package toast captures transient toast text from accessibility events.
//
//   - listener.go: Listener, the interceptor that sits in the observer slot,
//     records notification text, and forwards every event to the listener
//     that was installed before it.
//   - cache.go: Cache, the single-entry store with lazy expiry on read.
//   - config.go: Config and constructors; NewWithConfig applies defaults.
//   - events.go, eventpub_memory.go: lifecycle events (start, stop, capture,
//     expiry) and an in-memory publisher for tests.
//   - metrics.go: Prometheus counters for events seen, captures and expiries.
//
// Two locks are involved. OnAccessibilityEvent holds the event lock for the
// whole handler, including the call into the previous listener, and takes the
// cache lock only inside Cache.Write. Readers take only the cache lock.
package toast
