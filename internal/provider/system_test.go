package provider

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zgpcy/flowclock-exporter/internal/clock"
	"github.com/zgpcy/flowclock-exporter/internal/config"
	"github.com/zgpcy/flowclock-exporter/internal/logger"
)

func testLogger() *logger.Logger {
	return logger.New("error")
}

func testConfig(flags ...config.Flag) *config.Config {
	return &config.Config{Flags: flags}
}

func TestSystemProvider_Read_UsesClock(t *testing.T) {
	wall := time.UnixMilli(1_700_000_000_123)
	p := NewSystemProvider(testConfig(), testLogger())
	p.clock = clock.NewFakeClock(wall, 42)

	reading, err := p.Read(context.Background())
	require.NoError(t, err)

	assert.Equal(t, float64(1_700_000_000_123), reading.WallMillis)
	assert.Equal(t, 1_700_000_000.123, reading.WallSeconds)
	assert.Equal(t, int64(42), reading.MonoNanos)
	assert.Empty(t, reading.Flags)
}

func TestSystemProvider_Read_EvaluatesFlags(t *testing.T) {
	t.Setenv("PROVIDER_TEST_ON", "1")
	t.Setenv("PROVIDER_TEST_TRUE", "true")

	p := NewSystemProvider(testConfig(
		config.Flag{Env: "PROVIDER_TEST_ON", Name: "on"},
		config.Flag{Env: "PROVIDER_TEST_TRUE", Name: "true_word"},
		config.Flag{Env: "PROVIDER_TEST_UNSET", Name: "unset"},
	), testLogger())

	reading, err := p.Read(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []FlagState{
		{Name: "on", Env: "PROVIDER_TEST_ON", Enabled: true},
		{Name: "true_word", Env: "PROVIDER_TEST_TRUE", Enabled: false},
		{Name: "unset", Env: "PROVIDER_TEST_UNSET", Enabled: false},
	}, reading.Flags)
}

func TestSystemProvider_Read_FollowsEnvironmentChanges(t *testing.T) {
	p := NewSystemProvider(testConfig(config.Flag{Env: "FEATURE_X", Name: "feature_x"}), testLogger())

	t.Setenv("FEATURE_X", "1")
	reading, err := p.Read(context.Background())
	require.NoError(t, err)
	assert.True(t, reading.Flags[0].Enabled)

	t.Setenv("FEATURE_X", "yes")
	reading, err = p.Read(context.Background())
	require.NoError(t, err)
	assert.False(t, reading.Flags[0].Enabled)
}

func TestSystemProvider_Read_CancelledContext(t *testing.T) {
	p := NewSystemProvider(testConfig(), testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Read(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSystemProvider_CopiesFlags(t *testing.T) {
	cfg := testConfig(config.Flag{Env: "A", Name: "a"})
	p := NewSystemProvider(cfg, testLogger())

	cfg.Flags[0].Name = "mutated"

	assert.Equal(t, "a", p.flags[0].Name)
	assert.Equal(t, 1, p.FlagCount())
	assert.Equal(t, SystemProviderName, p.Name())
}

func TestReading_Elapsed(t *testing.T) {
	prev := Reading{WallMillis: 1_000, MonoNanos: 5_000_000}
	next := Reading{WallMillis: 1_250, MonoNanos: 255_000_000}

	assert.Equal(t, int64(250*time.Millisecond), next.WallElapsed(prev))
	assert.Equal(t, int64(250*time.Millisecond), next.MonoElapsed(prev))
}

func TestSystemProvider_RealClocksAreConsistent(t *testing.T) {
	p := NewSystemProvider(testConfig(), testLogger())

	first, err := p.Read(context.Background())
	require.NoError(t, err)
	second, err := p.Read(context.Background())
	require.NoError(t, err)

	assert.GreaterOrEqual(t, second.MonoNanos, first.MonoNanos)
	assert.InDelta(t, first.WallMillis, first.WallSeconds*1000, 0.5)
}
