package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/zgpcy/flowclock-exporter/internal/sysutil"
	"gopkg.in/yaml.v3"
)

// Configuration validation constants
const (
	MinSampleInterval = 1     // Minimum sample interval in seconds
	MaxSampleInterval = 3600  // Maximum sample interval in seconds
	MinPort           = 1     // Minimum valid port number
	MaxPort           = 65535 // Maximum valid port number

	// Default values
	DefaultSampleInterval       = 15 // seconds
	DefaultClockStepThresholdMS = 1000
	DefaultHTTPPort             = 9464
	DefaultLogLevel             = "info"
)

// Environment variable names
const (
	EnvPrefix               = "FLOWCLOCK_"
	EnvHTTPPort             = EnvPrefix + "HTTP_PORT"
	EnvLogLevel             = EnvPrefix + "LOG_LEVEL"
	EnvSampleInterval       = EnvPrefix + "SAMPLE_INTERVAL"
	EnvClockStepThresholdMS = EnvPrefix + "CLOCK_STEP_THRESHOLD_MS"
	EnvFlags                = EnvPrefix + "FLAGS"
	EnvDebug                = EnvPrefix + "DEBUG"
)

// Flag names an environment variable exported as a boolean feature flag
type Flag struct {
	Env  string `yaml:"env"`
	Name string `yaml:"name"`
}

// Config represents the application configuration
type Config struct {
	Flags                []Flag `yaml:"flags"`
	SampleInterval       int    `yaml:"sample_interval"`         // seconds
	ClockStepThresholdMS int    `yaml:"clock_step_threshold_ms"` // wall/monotonic divergence per sample
	HTTPPort             int    `yaml:"http_port"`
	LogLevel             string `yaml:"log_level"`
}

// Load loads configuration from a YAML file and applies environment variable overrides
func Load(path string) (*Config, error) {
	// #nosec G304 -- Config file path is provided by administrator via CLI flag, not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse builds a configuration from YAML bytes, then applies defaults,
// environment overrides and validation in that order
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := applyEnvOverrides(&cfg); err != nil {
		return nil, fmt.Errorf("environment variable error: %w", err)
	}

	// Flags added through the environment need names too
	applyFlagNames(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for configuration
func applyDefaults(cfg *Config) {
	if cfg.SampleInterval == 0 {
		cfg.SampleInterval = DefaultSampleInterval
	}
	if cfg.ClockStepThresholdMS == 0 {
		cfg.ClockStepThresholdMS = DefaultClockStepThresholdMS
	}
	if cfg.HTTPPort == 0 {
		cfg.HTTPPort = DefaultHTTPPort
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
}

// applyFlagNames derives missing flag names from their environment variable
func applyFlagNames(cfg *Config) {
	for i := range cfg.Flags {
		cfg.Flags[i].Env = strings.TrimSpace(cfg.Flags[i].Env)
		cfg.Flags[i].Name = strings.TrimSpace(cfg.Flags[i].Name)
		if cfg.Flags[i].Name == "" {
			cfg.Flags[i].Name = strings.ToLower(cfg.Flags[i].Env)
		}
	}
}

// applyEnvOverrides applies environment variable overrides to configuration
func applyEnvOverrides(cfg *Config) error {
	if val := os.Getenv(EnvHTTPPort); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid %s: must be an integer, got %q", EnvHTTPPort, val)
		}
		cfg.HTTPPort = i
	}

	if val := os.Getenv(EnvLogLevel); val != "" {
		cfg.LogLevel = val
	}

	if val := os.Getenv(EnvSampleInterval); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid %s: must be an integer, got %q", EnvSampleInterval, val)
		}
		cfg.SampleInterval = i
	}

	if val := os.Getenv(EnvClockStepThresholdMS); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid %s: must be an integer, got %q", EnvClockStepThresholdMS, val)
		}
		cfg.ClockStepThresholdMS = i
	}

	// Comma-separated ENV or ENV:name pairs
	// Example: FLOWCLOCK_FLAGS="FEATURE_X:feature_x,USE_GPU"
	if val := os.Getenv(EnvFlags); val != "" {
		flags := []Flag{}
		for _, pair := range strings.Split(val, ",") {
			parts := strings.SplitN(pair, ":", 2)
			env := strings.TrimSpace(parts[0])
			if env == "" {
				continue
			}
			flag := Flag{Env: env}
			if len(parts) == 2 {
				flag.Name = strings.TrimSpace(parts[1])
			}
			flags = append(flags, flag)
		}
		if len(flags) > 0 {
			cfg.Flags = flags
		}
	}

	// Debug is a strict "1" toggle, same as the exported flags
	if sysutil.BoolEnv(EnvDebug) {
		cfg.LogLevel = "debug"
	}

	return nil
}

// validate validates the configuration
func validate(cfg *Config) error {
	seen := make(map[string]int, len(cfg.Flags))
	for i, flag := range cfg.Flags {
		if flag.Env == "" {
			return fmt.Errorf("flag at index %d has empty env", i)
		}
		if prev, ok := seen[flag.Name]; ok {
			return fmt.Errorf("flag name %q used at index %d and %d", flag.Name, prev, i)
		}
		seen[flag.Name] = i
	}

	if cfg.SampleInterval < MinSampleInterval || cfg.SampleInterval > MaxSampleInterval {
		return fmt.Errorf("sample_interval must be between %d and %d seconds, got %d",
			MinSampleInterval, MaxSampleInterval, cfg.SampleInterval)
	}

	if cfg.ClockStepThresholdMS <= 0 {
		return fmt.Errorf("clock_step_threshold_ms must be positive, got %d", cfg.ClockStepThresholdMS)
	}

	if cfg.HTTPPort < MinPort || cfg.HTTPPort > MaxPort {
		return fmt.Errorf("http_port must be between %d and %d", MinPort, MaxPort)
	}

	return nil
}
