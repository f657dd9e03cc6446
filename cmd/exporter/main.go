package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/zgpcy/flowclock-exporter/internal/collector"
	"github.com/zgpcy/flowclock-exporter/internal/config"
	"github.com/zgpcy/flowclock-exporter/internal/logger"
	"github.com/zgpcy/flowclock-exporter/internal/provider"
	"github.com/zgpcy/flowclock-exporter/internal/server"
	"github.com/zgpcy/flowclock-exporter/internal/version"
)

const (
	// DefaultShutdownTimeout is the maximum time to wait for graceful shutdown
	DefaultShutdownTimeout = 30 * time.Second
)

var (
	configPath  = flag.String("config", "config.yaml", "Path to configuration file")
	once        = flag.Bool("once", false, "Print a single reading as JSON and exit")
	showVersion = flag.Bool("version", false, "Print version information and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	// Load configuration first (need log level from config)
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logger.New(cfg.LogLevel)
	readingProvider := provider.NewSystemProvider(cfg, logger)

	if *once {
		if err := printReading(readingProvider); err != nil {
			logger.Error("Failed to read clocks", "error", err)
			os.Exit(1)
		}
		return
	}

	logger.Info("Flowclock exporter starting",
		"version", version.Version,
		"config_path", *configPath)

	logger.Info("Configuration loaded successfully",
		"flags", len(cfg.Flags),
		"sample_interval_seconds", cfg.SampleInterval,
		"clock_step_threshold_ms", cfg.ClockStepThresholdMS,
		"http_port", cfg.HTTPPort)

	logger.Info("Creating Prometheus collector")
	clockCollector := collector.NewClockCollector(readingProvider, cfg, logger)

	if err := prometheus.Register(clockCollector); err != nil {
		logger.Error("Failed to register collector", "error", err)
		os.Exit(1)
	}
	logger.Info("Collector registered with Prometheus")

	// The default registry already carries the Go and process collectors
	logger.Info("Go runtime and process metrics available from default registry")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.Info("Starting background sampling")
	clockCollector.StartBackgroundSampling(ctx)

	logger.Info("Creating HTTP server", "port", cfg.HTTPPort)
	srv := server.NewServer(cfg, clockCollector, prometheus.DefaultGatherer, logger)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- srv.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error("Server error", "error", err)
		os.Exit(1)

	case sig := <-shutdown:
		logger.Info("Received shutdown signal, starting graceful shutdown", "signal", sig.String())

		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), DefaultShutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error during server shutdown", "error", err)
			os.Exit(1)
		}

		logger.Info("Server stopped gracefully")
	}
}

// printReading writes one reading to stdout as indented JSON
func printReading(p provider.ReadingProvider) error {
	reading, err := p.Read(context.Background())
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reading); err != nil {
		return fmt.Errorf("failed to encode reading: %w", err)
	}
	return nil
}
