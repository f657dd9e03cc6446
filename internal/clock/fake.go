package clock

import (
	"sync"
	"time"
)

// FakeClock is a manually driven Clock for tests. The wall and monotonic
// readings can be moved independently to simulate wall clock steps.
type FakeClock struct {
	mu   sync.Mutex
	wall time.Time
	mono int64
}

// NewFakeClock returns a FakeClock whose wall clock starts at wall and whose
// monotonic clock starts at mono nanoseconds
func NewFakeClock(wall time.Time, mono int64) *FakeClock {
	return &FakeClock{wall: wall, mono: mono}
}

// Now returns the fake wall time
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wall
}

// WallMillis returns the fake wall time in milliseconds
func (c *FakeClock) WallMillis() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return float64(c.wall.UnixMilli())
}

// Nanotime returns the fake monotonic reading
func (c *FakeClock) Nanotime() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mono
}

// Advance moves both clocks forward by d
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.wall = c.wall.Add(d)
	c.mono += int64(d)
}

// StepWall moves only the wall clock, as an NTP or manual adjustment would
func (c *FakeClock) StepWall(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.wall = c.wall.Add(d)
}
