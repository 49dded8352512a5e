// Package tick implements the kernel's single monotonic time source.
//
// A Counter is incremented once per timer interrupt and read from any
// context (syscalls, application code, the scheduler). Only the increment
// is restricted to the timer ISR; reads are unrestricted.
package tick

import (
	"fmt"
	"sync/atomic"
)

// Counter is a process-wide, wrap-around tick count.
//
// The zero value is ready to use, starting at 0.
type Counter struct {
	v atomic.Uint64
}

// Tick atomically increments the counter and returns the new value.
//
// Callable only from the timer ISR (or, in the host simulation, the
// goroutine standing in for it). Concurrent calls to Tick are not
// supported — the timer line is never reentrant.
func (c *Counter) Tick() uint64 {
	return c.v.Add(1)
}

// Get atomically reads the current tick count. Safe from any context.
func (c *Counter) Get() uint64 {
	return c.v.Load()
}

// JustWrapped reports whether value is the tick immediately following a
// wrap to zero, i.e. value == 0 having just been produced by Tick. The
// scheduler uses this to know when to migrate the overflow delay queue.
func JustWrapped(value uint64) bool {
	return value == 0
}

// String renders the counter for debug logging.
func (c *Counter) String() string {
	return fmt.Sprintf("tick(%d)", c.Get())
}

// SetForTest forces the counter's value, for exercising wraparound behavior
// without millions of real Tick calls.
func (c *Counter) SetForTest(v uint64) { c.v.Store(v) }
