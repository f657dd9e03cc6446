// Package collector implements a Prometheus collector for clock and feature flag metrics.
//
// The collector samples a provider.ReadingProvider in the background and
// serves the cached reading on every Prometheus scrape.
//
// The collector exposes the following metrics:
//   - flowclock_feature_flag_enabled: 1 when the flag's variable is exactly "1"
//   - flowclock_wall_clock_seconds: Wall clock at the last sample
//   - flowclock_monotonic_uptime_seconds: Monotonic time between first and last sample
//   - flowclock_wall_clock_drift_seconds: Wall elapsed minus monotonic elapsed since the first sample
//   - flowclock_clock_steps_total: Samples whose wall/monotonic divergence reached the step threshold
//   - up: Health status (1 = success, 0 = failure)
//   - flowclock_exporter_sample_duration_seconds: Duration of the last sample
//   - flowclock_exporter_last_sample_timestamp_seconds: Unix timestamp of the last sample attempt
//   - flowclock_exporter_sample_errors_total: Total number of failed samples
//   - flowclock_exporter_build_info: Build version information
//
// Drift is measured by comparing deltas: between two readings the wall
// delta and the monotonic delta should agree. A difference means the wall
// clock was adjusted. Absolute wall and monotonic values are never mixed.
//
// Example usage:
//
//	p := provider.NewSystemProvider(cfg, log)
//	c := collector.NewClockCollector(p, cfg, log)
//	prometheus.MustRegister(c)
//	c.StartBackgroundSampling(ctx)
package collector
