// Package server provides the HTTP server of the flowclock exporter.
//
// Available endpoints:
//   - /           : Status page with the latest flags and clock readings
//   - /metrics    : Prometheus metrics endpoint
//   - /now        : Latest reading as JSON (503 before the first sample)
//   - /health     : Liveness probe (always returns 200)
//   - /ready      : Readiness probe (200 only when the last sample succeeded)
//
// Timeouts: read 15s, write 15s, idle 60s.
//
// Example usage:
//
//	srv := server.NewServer(cfg, collector, prometheus.DefaultGatherer, log)
//
//	serverErrors := make(chan error, 1)
//	go func() {
//		serverErrors <- srv.Start()
//	}()
//
//	<-ctx.Done()
//	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
//	defer cancel()
//	if err := srv.Shutdown(shutdownCtx); err != nil {
//		log.Error("Error during shutdown", "error", err)
//	}
package server
