package sysutil

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSecSinceEpoch_MatchesMillis(t *testing.T) {
	sec := SecSinceEpoch()
	ms := MilliSinceEpoch()

	// Back-to-back samples may straddle a few milliseconds on a busy machine.
	assert.InDelta(t, ms, sec*1000, 50)
}

func TestSecSinceEpoch_TracksWallClock(t *testing.T) {
	before := float64(time.Now().UnixMilli()) / 1000.0
	got := SecSinceEpoch()
	after := float64(time.Now().UnixMilli()) / 1000.0

	assert.GreaterOrEqual(t, got, before)
	assert.LessOrEqual(t, got, after)
}

func TestMilliSinceEpoch_WholeMilliseconds(t *testing.T) {
	ms := MilliSinceEpoch()

	assert.Equal(t, math.Trunc(ms), ms, "millisecond reading must not carry a fraction")
	assert.Greater(t, ms, float64(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()))
}

func TestNanoTime_NonDecreasing(t *testing.T) {
	prev := NanoTime()
	for range 1000 {
		next := NanoTime()
		if next < prev {
			t.Fatalf("NanoTime went backwards: %d then %d", prev, next)
		}
		prev = next
	}
}

func TestNanoTime_MeasuresElapsed(t *testing.T) {
	start := NanoTime()
	time.Sleep(10 * time.Millisecond)
	elapsed := time.Duration(NanoTime() - start)

	assert.GreaterOrEqual(t, elapsed, 10*time.Millisecond)
	assert.Less(t, elapsed, 5*time.Second)
}
