package ktime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AltOS-Rust/altos-go/tick"
)

func TestClock_Now(t *testing.T) {
	var counter tick.Counter
	c := NewClock(&counter, 10)

	counter.SetForTest(12345)

	seconds, millis := c.Now()
	assert.Equal(t, uint64(1), seconds)
	assert.Equal(t, uint64(234), millis)
}

func TestClock_ZeroResolutionTreatedAsOne(t *testing.T) {
	var counter tick.Counter
	c := NewClock(&counter, 0)
	require.Equal(t, uint64(1), c.TicksPerMillis())
}

func TestClock_SetResolution(t *testing.T) {
	var counter tick.Counter
	c := NewClock(&counter, 1)

	c.SetResolution(100)
	require.Equal(t, uint64(100), c.TicksPerMillis())
	assert.Equal(t, uint64(500), c.MillisToTicks(5))
	assert.Equal(t, uint64(100000), c.SecondsToTicks(1))
}

func TestClock_SetResolutionZeroTreatedAsOne(t *testing.T) {
	var counter tick.Counter
	c := NewClock(&counter, 100)

	c.SetResolution(0)
	require.Equal(t, uint64(1), c.TicksPerMillis())
}

func TestClock_MillisAndSecondsToTicks(t *testing.T) {
	var counter tick.Counter
	c := NewClock(&counter, 10)

	assert.Equal(t, uint64(50), c.MillisToTicks(5))
	assert.Equal(t, uint64(10000), c.SecondsToTicks(1))
}

func TestClock_Ticks(t *testing.T) {
	var counter tick.Counter
	c := NewClock(&counter, 1)

	counter.Tick()
	counter.Tick()
	assert.Equal(t, uint64(2), c.Ticks())
}
