package testutil

import (
	"sync"
	"time"
)

// DeterministicClock hands out timestamps one second apart, starting from
// a fixed instant.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type DeterministicClock struct {
	mu    sync.Mutex
	start time.Time
	ticks int
}

// DefaultClockStart is the first instant returned by a clock created with
// a zero start.
var DefaultClockStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// NewDeterministicClock creates a clock starting at start.
//
// The first call to Now() returns start itself.
func NewDeterministicClock(start time.Time) *DeterministicClock {
	if start.IsZero() {
		start = DefaultClockStart
	}
	return &DeterministicClock{start: start}
}

// Now returns the next timestamp.
//
// Implements store.Clock.
func (c *DeterministicClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.start.Add(time.Duration(c.ticks) * time.Second)
	c.ticks++
	return t
}

// Reset rewinds the clock to its start.
func (c *DeterministicClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ticks = 0
}
