package sched

import (
	"errors"
	"unsafe"

	"github.com/AltOS-Rust/altos-go/ksync"
	"github.com/AltOS-Rust/altos-go/task"
)

// ErrWouldBlock is returned by Mutex.TryLock when the mutex is already held
// by a different task. Expected, non-fatal (spec §4.10/§7).
var ErrWouldBlock = errors.New("altos: would block")

// Mutex is the kernel's sleeping mutex: a boolean lock whose sleep channel
// is its own address (spec §4.8). Lock on contention sleeps on that
// address; Unlock clears the flag and wakes it. Fairness is only the weak
// guarantee that every waiter is made Ready when the owner releases — no
// ordering among waiters is promised.
type Mutex struct {
	sched *Scheduler
	addr  task.Channel

	locked bool
	owner  *task.TCB
}

// NewMutex constructs a Mutex bound to this scheduler. The returned
// Mutex's address (used as its sleep channel) is derived from its own
// memory address, guaranteeing uniqueness among kernel-internal channels
// for its lifetime.
func (s *Scheduler) NewMutex() *Mutex {
	m := &Mutex{sched: s}
	m.addr = task.Channel(uintptr(unsafe.Pointer(m)))
	return m
}

// Lock blocks until the mutex is acquired. Re-acquisition by the task that
// already holds it is a fatal DoubleLock fault (spec §4.10) — only TryLock
// treats that case as a successful no-op.
func (m *Mutex) Lock() {
	s := m.sched
	for {
		acquired := false
		ksync.Critical(s.arch, func() {
			s.trace("mutex_lock", s.current.ID(), "")
			switch {
			case !m.locked:
				m.locked = true
				m.owner = s.current
				acquired = true
			case m.owner == s.current:
				raise(DoubleLock, s.current.Name(), "mutex re-locked by its own owner", nil)
			default:
				s.current.State = task.Blocked
				s.current.Channel = m.addr
				s.current.DelayKind = task.Sleep
				s.arch.YieldCPU()
			}
		})
		if acquired {
			return
		}
	}
}

// TryLock never blocks. It treats re-acquisition by the current owner as
// success (spec §4.5), returning ErrWouldBlock only when a different task
// holds the mutex.
func (m *Mutex) TryLock() error {
	s := m.sched
	var blocked bool
	ksync.Critical(s.arch, func() {
		s.trace("mutex_try_lock", s.current.ID(), "")
		switch {
		case !m.locked:
			m.locked = true
			m.owner = s.current
		case m.owner == s.current:
			// already ours; no-op success
		default:
			blocked = true
		}
	})
	if blocked {
		return ErrWouldBlock
	}
	return nil
}

// Unlock releases the mutex and wakes its address. A no-op if the mutex
// isn't held; fatal (UnlockNotOwner) if called by a task other than the
// current owner.
func (m *Mutex) Unlock() {
	s := m.sched
	ksync.Critical(s.arch, func() {
		s.trace("mutex_unlock", s.current.ID(), "")
		if !m.locked {
			return
		}
		if m.owner != s.current {
			raise(UnlockNotOwner, s.current.Name(), "unlock called by a task that doesn't hold the mutex", nil)
		}
		m.locked = false
		m.owner = nil
		s.wakeLocked(m.addr)
	})
}
