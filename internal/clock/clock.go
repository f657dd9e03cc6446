package clock

import (
	"time"

	"github.com/zgpcy/flowclock-exporter/internal/sysutil"
)

// Clock provides time-related functions that can be mocked for testing
type Clock interface {
	// Now returns the current wall time
	Now() time.Time

	// WallMillis returns the wall clock in whole milliseconds since the Unix epoch
	WallMillis() float64

	// Nanotime returns the monotonic clock in nanoseconds since an arbitrary origin
	Nanotime() int64
}

// RealClock implements Clock using actual system time
type RealClock struct{}

// Now returns the current system time
func (RealClock) Now() time.Time {
	return time.Now()
}

// WallMillis returns the system wall clock in milliseconds
func (RealClock) WallMillis() float64 {
	return sysutil.MilliSinceEpoch()
}

// Nanotime returns the system monotonic clock
func (RealClock) Nanotime() int64 {
	return sysutil.NanoTime()
}
