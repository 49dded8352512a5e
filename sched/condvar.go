package sched

import (
	"unsafe"

	"github.com/AltOS-Rust/altos-go/ksync"
	"github.com/AltOS-Rust/altos-go/task"
)

// Condvar is the kernel's condition variable: its sleep channel is its own
// address, and it is pinned to the first mutex it is ever waited with for
// the rest of its lifetime (spec §4.8).
type Condvar struct {
	sched *Scheduler
	addr  task.Channel
	mutex *Mutex
}

// NewCondvar constructs a Condvar bound to this scheduler.
func (s *Scheduler) NewCondvar() *Condvar {
	cv := &Condvar{sched: s}
	cv.addr = task.Channel(uintptr(unsafe.Pointer(cv)))
	return cv
}

// Wait atomically unlocks m and sleeps on the condvar's address, then
// re-acquires m before returning. The caller must already hold m. Pairing
// the same Condvar with a second, distinct Mutex across its lifetime is a
// fatal CondvarMutexMismatch fault.
func (cv *Condvar) Wait(m *Mutex) {
	s := cv.sched
	ksync.Critical(s.arch, func() {
		s.trace("condvar_wait", s.current.ID(), "")
		if cv.mutex == nil {
			cv.mutex = m
		} else if cv.mutex != m {
			raise(CondvarMutexMismatch, s.current.Name(), "condvar waited on with a second distinct mutex", nil)
		}

		if m.locked && m.owner == s.current {
			m.locked = false
			m.owner = nil
			s.wakeLocked(m.addr)
		}

		s.current.State = task.Blocked
		s.current.Channel = cv.addr
		s.current.DelayKind = task.Sleep
		s.arch.YieldCPU()
	})
	m.Lock()
}

// Broadcast wakes every task waiting on the condvar.
func (cv *Condvar) Broadcast() {
	s := cv.sched
	ksync.Critical(s.arch, func() {
		s.trace("condvar_broadcast", 0, "")
		s.wakeLocked(cv.addr)
	})
}
