// Package ktime derives wall-clock-shaped readings from the kernel's single
// tick counter, and offers SleepFor-based delay helpers for application
// code that doesn't want to reach into sched directly.
package ktime

import (
	"sync/atomic"

	"github.com/AltOS-Rust/altos-go/tick"
)

// Clock wraps a tick.Counter with a resolution (ticks per millisecond) so
// callers can read elapsed time in familiar units instead of raw ticks.
//
// The resolution is an atomic.Uint64 rather than a plain field: set_resolution
// is a named, stable-API operation (spec §6) and must be safe to call from any
// context concurrently with Now/MillisToTicks/SecondsToTicks reads, the same
// way tick.Counter's own value is.
type Clock struct {
	counter        *tick.Counter
	ticksPerMillis atomic.Uint64
}

// NewClock builds a Clock over counter at the given resolution. A
// ticksPerMillis of 0 is treated as 1 (one tick per millisecond).
func NewClock(counter *tick.Counter, ticksPerMillis uint64) *Clock {
	c := &Clock{counter: counter}
	c.SetResolution(ticksPerMillis)
	return c
}

// SetResolution changes the clock's ticks-per-millisecond resolution at
// runtime (spec §6's set_resolution(ticks_per_ms)). A ticksPerMillis of 0 is
// treated as 1, matching NewClock's zero-value handling. Safe to call
// concurrently with any other Clock method.
func (c *Clock) SetResolution(ticksPerMillis uint64) {
	if ticksPerMillis == 0 {
		ticksPerMillis = 1
	}
	c.ticksPerMillis.Store(ticksPerMillis)
}

// Now returns the elapsed time since boot as (seconds, millis-remainder).
func (c *Clock) Now() (seconds, millis uint64) {
	totalMillis := c.counter.Get() / c.ticksPerMillis.Load()
	return totalMillis / 1000, totalMillis % 1000
}

// Ticks returns the raw tick count the clock is derived from.
func (c *Clock) Ticks() uint64 { return c.counter.Get() }

// TicksPerMillis returns the configured resolution.
func (c *Clock) TicksPerMillis() uint64 { return c.ticksPerMillis.Load() }

// MillisToTicks converts a millisecond duration to a tick count at this
// clock's resolution, for callers computing a SleepFor deadline.
func (c *Clock) MillisToTicks(ms uint64) uint64 { return ms * c.ticksPerMillis.Load() }

// SecondsToTicks converts a second duration to a tick count.
func (c *Clock) SecondsToTicks(s uint64) uint64 { return s * 1000 * c.ticksPerMillis.Load() }
