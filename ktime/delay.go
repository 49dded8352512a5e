package ktime

import (
	"unsafe"

	"github.com/AltOS-Rust/altos-go/sched"
	"github.com/AltOS-Rust/altos-go/task"
)

// delayChannel is a private, unexported sleep channel so concurrent callers
// of DelayMS/DelayS on the same Clock don't collide on the same wake
// address — each is woken individually by its own sleep_for timeout, never
// by an explicit Wake. It has a non-zero size so that every allocation of it
// gets its own address.
type delayChannel struct{ _ byte }

// Delayer wraps a Scheduler and Clock to offer application-facing
// millisecond/second delay helpers (spec §6), implemented as SleepFor
// against a channel private to the Delayer.
type Delayer struct {
	sched *sched.Scheduler
	clock *Clock
	ch    *delayChannel
}

// NewDelayer builds a Delayer over s, deriving tick counts from clock.
func NewDelayer(s *sched.Scheduler, clock *Clock) *Delayer {
	d := &Delayer{sched: s, clock: clock}
	d.ch = new(delayChannel)
	return d
}

func (d *Delayer) channel() task.Channel { return task.Channel(uintptr(unsafe.Pointer(d.ch))) }

// DelayMS blocks the calling task for approximately ms milliseconds.
func (d *Delayer) DelayMS(ms uint64) {
	ticks := d.clock.MillisToTicks(ms)
	if ticks == 0 {
		return
	}
	d.sched.SleepFor(d.channel(), ticks)
}

// DelayS blocks the calling task for approximately s seconds.
func (d *Delayer) DelayS(s uint64) {
	ticks := d.clock.SecondsToTicks(s)
	if ticks == 0 {
		return
	}
	d.sched.SleepFor(d.channel(), ticks)
}
