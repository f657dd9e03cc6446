package collector

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/zgpcy/flowclock-exporter/internal/clock"
	"github.com/zgpcy/flowclock-exporter/internal/config"
	"github.com/zgpcy/flowclock-exporter/internal/logger"
	"github.com/zgpcy/flowclock-exporter/internal/provider"
	"github.com/zgpcy/flowclock-exporter/internal/version"
)

// ClockCollector implements prometheus.Collector for clock and feature flag metrics
type ClockCollector struct {
	readingProvider provider.ReadingProvider
	cfg             *config.Config
	logger          *logger.Logger
	clock           clock.Clock // Time provider for testing

	// Metrics
	flagMetric           *prometheus.Desc
	wallClockMetric      *prometheus.Desc
	uptimeMetric         *prometheus.Desc
	driftMetric          *prometheus.Desc
	upMetric             *prometheus.Desc
	sampleDurationMetric *prometheus.Desc
	lastSampleTimeMetric *prometheus.Desc
	clockStepsTotal      *prometheus.CounterVec
	sampleErrorsTotal    *prometheus.CounterVec
	buildInfo            *prometheus.GaugeVec

	// State
	mu                 sync.RWMutex
	first              provider.Reading
	latest             provider.Reading
	hasReading         bool
	driftNanos         int64 // Cumulative wall minus monotonic elapsed since first reading
	lastError          error
	lastSample         time.Time
	lastSampleDuration time.Duration
	samplingStarted    atomic.Bool // Prevent multiple sampling goroutines
	isReady            bool
}

// NewClockCollector creates a new ClockCollector
func NewClockCollector(readingProvider provider.ReadingProvider, cfg *config.Config, log *logger.Logger) *ClockCollector {
	clockStepsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flowclock_clock_steps_total",
			Help: "Number of samples where the wall clock diverged from the monotonic clock by at least the step threshold",
		},
		[]string{"provider"},
	)

	sampleErrorsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flowclock_exporter_sample_errors_total",
			Help: "Total number of failed samples since startup",
		},
		[]string{"provider"},
	)

	buildInfo := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "flowclock_exporter_build_info",
			Help: "Build version information",
		},
		[]string{"version", "git_commit", "build_date", "go_version"},
	)

	versionInfo := version.Info()
	buildInfo.With(prometheus.Labels{
		"version":    versionInfo["version"],
		"git_commit": versionInfo["git_commit"],
		"build_date": versionInfo["build_date"],
		"go_version": versionInfo["go_version"],
	}).Set(1)

	return &ClockCollector{
		readingProvider: readingProvider,
		cfg:             cfg,
		logger:          log,
		clock:           clock.RealClock{},
		flagMetric: prometheus.NewDesc(
			"flowclock_feature_flag_enabled",
			"Whether the environment variable backing the flag is exactly \"1\" (1 = enabled, 0 = disabled or unset)",
			[]string{"provider", "flag", "env"},
			nil,
		),
		wallClockMetric: prometheus.NewDesc(
			"flowclock_wall_clock_seconds",
			"Wall clock at the last sample, in seconds since the Unix epoch",
			[]string{"provider"},
			nil,
		),
		uptimeMetric: prometheus.NewDesc(
			"flowclock_monotonic_uptime_seconds",
			"Monotonic time elapsed between the first and the last sample",
			[]string{"provider"},
			nil,
		),
		driftMetric: prometheus.NewDesc(
			"flowclock_wall_clock_drift_seconds",
			"Wall clock elapsed minus monotonic elapsed since the first sample. Non-zero after wall clock adjustments.",
			[]string{"provider"},
			nil,
		),
		upMetric: prometheus.NewDesc(
			"up",
			"Was the last sample successful (1 = success, 0 = failure)",
			[]string{"provider"},
			nil,
		),
		sampleDurationMetric: prometheus.NewDesc(
			"flowclock_exporter_sample_duration_seconds",
			"Duration of the last sample in seconds",
			[]string{"provider"},
			nil,
		),
		lastSampleTimeMetric: prometheus.NewDesc(
			"flowclock_exporter_last_sample_timestamp_seconds",
			"Unix timestamp of the last sample attempt",
			[]string{"provider"},
			nil,
		),
		clockStepsTotal:   clockStepsTotal,
		sampleErrorsTotal: sampleErrorsTotal,
		buildInfo:         buildInfo,
	}
}

// Describe implements prometheus.Collector
func (c *ClockCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.flagMetric
	ch <- c.wallClockMetric
	ch <- c.uptimeMetric
	ch <- c.driftMetric
	ch <- c.upMetric
	ch <- c.sampleDurationMetric
	ch <- c.lastSampleTimeMetric
	c.clockStepsTotal.Describe(ch)
	c.sampleErrorsTotal.Describe(ch)
	c.buildInfo.Describe(ch)
}

// Collect implements prometheus.Collector
func (c *ClockCollector) Collect(ch chan<- prometheus.Metric) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	providerName := c.readingProvider.Name()

	if c.hasReading {
		for _, flag := range c.latest.Flags {
			value := 0.0
			if flag.Enabled {
				value = 1.0
			}
			ch <- prometheus.MustNewConstMetric(
				c.flagMetric,
				prometheus.GaugeValue,
				value,
				providerName,
				flag.Name,
				flag.Env,
			)
		}

		ch <- prometheus.MustNewConstMetric(
			c.wallClockMetric,
			prometheus.GaugeValue,
			c.latest.WallSeconds,
			providerName,
		)

		ch <- prometheus.MustNewConstMetric(
			c.uptimeMetric,
			prometheus.GaugeValue,
			time.Duration(c.latest.MonoElapsed(c.first)).Seconds(),
			providerName,
		)

		ch <- prometheus.MustNewConstMetric(
			c.driftMetric,
			prometheus.GaugeValue,
			time.Duration(c.driftNanos).Seconds(),
			providerName,
		)
	}

	upValue := 0.0
	if c.lastError == nil && c.isReady {
		upValue = 1.0
	}
	ch <- prometheus.MustNewConstMetric(
		c.upMetric,
		prometheus.GaugeValue,
		upValue,
		providerName,
	)

	ch <- prometheus.MustNewConstMetric(
		c.sampleDurationMetric,
		prometheus.GaugeValue,
		c.lastSampleDuration.Seconds(),
		providerName,
	)

	if !c.lastSample.IsZero() {
		ch <- prometheus.MustNewConstMetric(
			c.lastSampleTimeMetric,
			prometheus.GaugeValue,
			float64(c.lastSample.Unix()),
			providerName,
		)
	}

	c.clockStepsTotal.Collect(ch)
	c.sampleErrorsTotal.Collect(ch)
	c.buildInfo.Collect(ch)
}

// StartBackgroundSampling takes an initial sample, then samples every
// sample_interval seconds until ctx is cancelled
func (c *ClockCollector) StartBackgroundSampling(ctx context.Context) {
	if !c.samplingStarted.CompareAndSwap(false, true) {
		c.logger.Warn("Background sampling already started, skipping")
		return
	}

	c.sample(ctx)

	ticker := time.NewTicker(time.Duration(c.cfg.SampleInterval) * time.Second)
	go func() {
		defer ticker.Stop()
		defer c.samplingStarted.Store(false)
		for {
			select {
			case <-ctx.Done():
				c.logger.Info("Stopping background sampling")
				return
			case <-ticker.C:
				c.sample(ctx)
			}
		}
	}()
}

// Sample takes one reading immediately and updates the cached state
func (c *ClockCollector) Sample(ctx context.Context) {
	c.sample(ctx)
}

// sample reads the provider and updates the cached data
func (c *ClockCollector) sample(ctx context.Context) {
	providerName := c.readingProvider.Name()
	c.logger.Debug("Sampling clocks and flags", "provider", providerName)
	start := c.clock.Nanotime()

	reading, err := c.readingProvider.Read(ctx)
	duration := time.Duration(c.clock.Nanotime() - start)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.lastSample = c.clock.Now()
	c.lastSampleDuration = duration
	c.lastError = err

	if err != nil {
		c.sampleErrorsTotal.With(prometheus.Labels{"provider": providerName}).Inc()
		c.logger.Error("Failed to sample clocks", "provider", providerName, "error", err)
		c.isReady = false
		return
	}

	if !c.hasReading {
		c.first = reading
		c.hasReading = true
	} else {
		c.trackDrift(providerName, reading)
	}
	c.latest = reading
	c.isReady = true

	c.logger.Debug("Sampled clocks",
		"provider", providerName,
		"wall_seconds", reading.WallSeconds,
		"mono_nanos", reading.MonoNanos,
		"flag_count", len(reading.Flags),
		"drift_seconds", time.Duration(c.driftNanos).Seconds())
}

// trackDrift compares the wall and monotonic deltas since the previous reading.
// Callers must hold c.mu.
func (c *ClockCollector) trackDrift(providerName string, reading provider.Reading) {
	wallDelta := reading.WallElapsed(c.latest)
	monoDelta := reading.MonoElapsed(c.latest)
	step := wallDelta - monoDelta
	c.driftNanos += step

	threshold := time.Duration(c.cfg.ClockStepThresholdMS) * time.Millisecond
	if abs(step) >= int64(threshold) {
		c.clockStepsTotal.With(prometheus.Labels{"provider": providerName}).Inc()
		c.logger.Warn("Wall clock step detected",
			"provider", providerName,
			"step_seconds", time.Duration(step).Seconds(),
			"wall_elapsed_seconds", time.Duration(wallDelta).Seconds(),
			"monotonic_elapsed_seconds", time.Duration(monoDelta).Seconds(),
			"threshold_ms", c.cfg.ClockStepThresholdMS)
	}
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// IsReady returns true if the last sample succeeded
func (c *ClockCollector) IsReady() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isReady
}

// LastError returns the last error encountered during sampling
func (c *ClockCollector) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

// LastSampleTime returns the time of the last sample attempt
func (c *ClockCollector) LastSampleTime() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastSample
}

// LatestReading returns the most recent successful reading.
// The second return value is false until the first sample succeeds.
func (c *ClockCollector) LatestReading() (provider.Reading, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.latest, c.hasReading
}

// Drift returns the cumulative wall minus monotonic elapsed time since the first reading
func (c *ClockCollector) Drift() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.driftNanos)
}

// FlagCount returns the number of flags the provider evaluates
func (c *ClockCollector) FlagCount() int {
	return c.readingProvider.FlagCount()
}
