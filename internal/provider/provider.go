package provider

import (
	"context"
)

// ReadingProvider is the interface every source of clock and flag readings implements
type ReadingProvider interface {
	// Read samples the clocks and evaluates all configured flags
	Read(ctx context.Context) (Reading, error)

	// Name returns the provider name used as a metric label
	Name() string

	// FlagCount returns the number of flags evaluated per reading
	FlagCount() int
}

// FlagState is the value of one environment feature flag at read time
type FlagState struct {
	Name    string `json:"name"`    // Metric-friendly flag name
	Env     string `json:"env"`     // Environment variable backing the flag
	Enabled bool   `json:"enabled"` // True only when the variable is exactly "1"
}

// Reading is a single sample of the wall clock, the monotonic clock and the flags.
// Wall and monotonic values come from different clocks and must only be
// compared against earlier readings of the same clock.
type Reading struct {
	WallSeconds float64     `json:"wall_seconds"` // Unix seconds, millisecond precision
	WallMillis  float64     `json:"wall_millis"`  // Unix milliseconds
	MonoNanos   int64       `json:"mono_nanos"`   // Monotonic nanoseconds, arbitrary origin
	Flags       []FlagState `json:"flags"`
}

// WallElapsed returns the wall clock time elapsed since prev, in nanoseconds
func (r Reading) WallElapsed(prev Reading) int64 {
	return int64((r.WallMillis - prev.WallMillis) * 1e6)
}

// MonoElapsed returns the monotonic time elapsed since prev, in nanoseconds
func (r Reading) MonoElapsed(prev Reading) int64 {
	return r.MonoNanos - prev.MonoNanos
}
