package provider

import (
	"context"

	"github.com/zgpcy/flowclock-exporter/internal/clock"
	"github.com/zgpcy/flowclock-exporter/internal/config"
	"github.com/zgpcy/flowclock-exporter/internal/logger"
	"github.com/zgpcy/flowclock-exporter/internal/sysutil"
)

// SystemProviderName is the provider label for readings of the local host
const SystemProviderName = "system"

// SystemProvider reads the local process environment and system clocks
type SystemProvider struct {
	flags  []config.Flag
	clock  clock.Clock
	lookup func(key string) bool
	logger *logger.Logger
}

// NewSystemProvider creates a provider for the given flags
func NewSystemProvider(cfg *config.Config, log *logger.Logger) *SystemProvider {
	flags := make([]config.Flag, len(cfg.Flags))
	copy(flags, cfg.Flags)

	return &SystemProvider{
		flags:  flags,
		clock:  clock.RealClock{},
		lookup: sysutil.BoolEnv,
		logger: log,
	}
}

// Read samples the wall clock once, the monotonic clock once, then every flag
func (p *SystemProvider) Read(ctx context.Context) (Reading, error) {
	if err := ctx.Err(); err != nil {
		return Reading{}, err
	}

	ms := p.clock.WallMillis()
	reading := Reading{
		WallSeconds: ms / 1000.0,
		WallMillis:  ms,
		MonoNanos:   p.clock.Nanotime(),
		Flags:       make([]FlagState, 0, len(p.flags)),
	}

	for _, flag := range p.flags {
		enabled := p.lookup(flag.Env)
		reading.Flags = append(reading.Flags, FlagState{
			Name:    flag.Name,
			Env:     flag.Env,
			Enabled: enabled,
		})
		p.logger.Debug("Evaluated flag", "flag", flag.Name, "env", flag.Env, "enabled", enabled)
	}

	return reading, nil
}

// Name returns the provider name
func (p *SystemProvider) Name() string {
	return SystemProviderName
}

// FlagCount returns the number of configured flags
func (p *SystemProvider) FlagCount() int {
	return len(p.flags)
}
