// Package config provides configuration management for the flowclock exporter.
//
// Configuration sources (in order of precedence):
//  1. Environment variables (highest priority)
//  2. YAML configuration file
//  3. Default values (lowest priority)
//
// Supported environment variables:
//   - FLOWCLOCK_HTTP_PORT: HTTP server port (1-65535)
//   - FLOWCLOCK_LOG_LEVEL: Log level (debug, info, warn, error)
//   - FLOWCLOCK_SAMPLE_INTERVAL: Seconds between samples (1-3600)
//   - FLOWCLOCK_CLOCK_STEP_THRESHOLD_MS: Wall/monotonic divergence that counts as a clock step
//   - FLOWCLOCK_FLAGS: Comma-separated ENV or ENV:name pairs
//   - FLOWCLOCK_DEBUG: "1" forces the debug log level
//
// Example configuration file (config.yaml):
//
//	http_port: 9464
//	log_level: "info"
//	sample_interval: 15
//	clock_step_threshold_ms: 1000
//
//	flags:
//	  - env: FEATURE_X
//	    name: feature_x
//	  - env: USE_GPU   # name defaults to "use_gpu"
package config
