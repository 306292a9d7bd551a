package ports

import "time"

// Clock abstracts wall-clock time and deferred execution so that rush-hour
// detection and the pickup auto-completion delay are testable.
type Clock interface {
	// Now returns the current local time.
	Now() time.Time

	// After runs fn once after the given delay, off the caller's goroutine.
	After(d time.Duration, fn func())
}
