// Package sysclock implements the clock port with real wall-clock time.
package sysclock

import (
	"time"

	"oshxona/internal/core/ports"
)

// Clock is the production ports.Clock.
type Clock struct{}

// New creates a system clock.
func New() Clock {
	return Clock{}
}

var _ ports.Clock = Clock{}

// Now returns the current local time.
func (Clock) Now() time.Time {
	return time.Now()
}

// After runs fn once after the given delay, off the caller's goroutine.
func (Clock) After(d time.Duration, fn func()) {
	time.AfterFunc(d, fn)
}
