// Package clock abstracts the time source behind backup snapshot names, so
// tests can pin timestamps instead of sleeping between writes.
package clock

import "time"

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system time.
type RealClock struct{}

// Now returns the current system time.
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// FakeClock holds a fixed time for deterministic tests.
type FakeClock struct {
	current time.Time
}

// NewFakeClock returns a FakeClock pinned to t.
func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{current: t}
}

// Now returns the pinned time.
func (c *FakeClock) Now() time.Time {
	return c.current
}

// Set moves the pinned time to t.
func (c *FakeClock) Set(t time.Time) {
	c.current = t
}

// Advance moves the pinned time forward by d.
func (c *FakeClock) Advance(d time.Duration) {
	c.current = c.current.Add(d)
}
