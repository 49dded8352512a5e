// Package ksync provides the kernel-internal synchronization primitives the
// scheduler core is built from: a busy-wait spin mutex for the short
// sections that protect queue state on a simulated multi-context host, and
// a RAII-style wrapper over an architecture's critical-section mask.
package ksync

import (
	"runtime"
	"sync/atomic"
)

// SpinMutex is a busy-wait mutual exclusion lock with no architecture
// dependency. It exists for state that must be protected even from the
// host port's simulated ISR goroutine, where a real kernel would rely on
// masked interrupts alone; the spin loop itself never blocks on the Go
// runtime scheduler, matching the "never sleeps" contract a real spinlock
// on bare metal would have.
type SpinMutex struct {
	locked atomic.Bool
}

// Lock spins until the mutex is acquired.
func (m *SpinMutex) Lock() {
	for !m.locked.CompareAndSwap(false, true) {
		runtime.Gosched()
	}
}

// Unlock releases the mutex. Unlock of an unlocked SpinMutex is a no-op,
// unlike sync.Mutex, for which that is a run-time error.
func (m *SpinMutex) Unlock() {
	m.locked.Store(false)
}

// TryLock attempts to acquire the mutex without spinning, reporting success.
func (m *SpinMutex) TryLock() bool {
	return m.locked.CompareAndSwap(false, true)
}
