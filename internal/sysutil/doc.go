// Package sysutil reads feature flags from the process environment and
// samples the wall and monotonic clocks.
//
// All functions are safe for concurrent use and never fail.
//
// The wall clock functions (SecSinceEpoch, MilliSinceEpoch) report Unix
// time and may jump when the system time is adjusted. NanoTime reads the
// monotonic clock, whose origin is unrelated to the Unix epoch. Readings
// from the two sources must not be subtracted from each other; compare
// deltas of the same clock instead.
//
// Example usage:
//
//	if sysutil.BoolEnv("FEATURE_X") {
//		start := sysutil.NanoTime()
//		doWork()
//		elapsed := time.Duration(sysutil.NanoTime() - start)
//		fmt.Printf("took %s at %.3f\n", elapsed, sysutil.SecSinceEpoch())
//	}
package sysutil
