// Package provider defines the source of clock and feature flag readings.
//
// A ReadingProvider returns Reading values that carry three clock samples
// and the state of each configured flag:
//   - WallSeconds: Unix time in seconds (derived from WallMillis)
//   - WallMillis: Unix time in whole milliseconds
//   - MonoNanos: monotonic nanoseconds from an arbitrary origin
//   - Flags: one FlagState per configured environment variable
//
// SystemProvider is the implementation backed by the local host. It reads
// flags through sysutil.BoolEnv, so a flag is enabled only when its variable
// is exactly "1".
//
// Wall and monotonic values have unrelated origins. Use WallElapsed and
// MonoElapsed to compare a reading against an earlier one.
//
// Example usage:
//
//	p := provider.NewSystemProvider(cfg, log)
//	reading, err := p.Read(ctx)
//	if err != nil {
//		return err
//	}
//	fmt.Printf("wall=%.3f mono=%d\n", reading.WallSeconds, reading.MonoNanos)
package provider
