package sysutil

import (
	"time"
	_ "unsafe" // required for go:linkname
)

//go:linkname runtimeNanotime runtime.nanotime
func runtimeNanotime() int64

// SecSinceEpoch returns the wall clock as seconds since the Unix epoch,
// with millisecond precision.
func SecSinceEpoch() float64 {
	return float64(time.Now().UnixMilli()) / 1000.0
}

// MilliSinceEpoch returns the wall clock as whole milliseconds since the
// Unix epoch.
func MilliSinceEpoch() float64 {
	return float64(time.Now().UnixMilli())
}

// NanoTime returns the monotonic clock in nanoseconds since an unspecified
// origin. Only the difference between two readings is meaningful.
func NanoTime() int64 {
	return runtimeNanotime()
}
