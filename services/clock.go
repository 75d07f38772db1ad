package services

import "time"

// Clock supplies the current time. It is injected into the lifecycle
// services so tests can control time-dependent behavior.
type Clock interface {
	Now() time.Time
}

// SystemClock returns the real wall-clock time
type SystemClock struct{}

// Now returns the current time
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant (for testing)
type FixedClock struct {
	Time time.Time
}

// Now returns the fixed instant
func (c FixedClock) Now() time.Time {
	return c.Time
}
