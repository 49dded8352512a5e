package task

import "errors"

// ErrDestroyed is returned by a TaskHandle accessor once the task it refers
// to has been destroyed. Per spec §4.3, a handle is a plain copyable value;
// this is the only signal that the task behind it is gone, there is no
// memory-safety consequence to holding a stale handle.
var ErrDestroyed = errors.New("altos: task destroyed")

// TaskHandle is a copyable, cookie-gated reference to a task. Unlike a raw
// *TCB, a TaskHandle remains safe to hold and compare after the task it
// names has been destroyed: every accessor re-checks the cookie and returns
// ErrDestroyed rather than reading through a possibly-reused TCB.
type TaskHandle struct {
	tcb    *TCB
	cookie uint32
}

// HandleOf returns a TaskHandle pinned to t's current validity cookie.
func HandleOf(t *TCB) TaskHandle {
	return TaskHandle{tcb: t, cookie: t.Cookie()}
}

// valid reports whether the handle's pinned cookie still matches the
// referenced TCB's live cookie.
func (h TaskHandle) valid() bool {
	return h.tcb != nil && h.cookie != 0 && h.tcb.Cookie() == h.cookie
}

// IsValid reports whether the handle still refers to a live task.
func (h TaskHandle) IsValid() bool { return h.valid() }

// Priority returns the task's priority, or ErrDestroyed.
func (h TaskHandle) Priority() (Priority, error) {
	if !h.valid() {
		return 0, ErrDestroyed
	}
	return h.tcb.Priority, nil
}

// State returns the task's life-cycle state, or ErrDestroyed.
func (h TaskHandle) State() (State, error) {
	if !h.valid() {
		return 0, ErrDestroyed
	}
	return h.tcb.State, nil
}

// ID returns the task's id, or ErrDestroyed.
func (h TaskHandle) ID() (uint64, error) {
	if !h.valid() {
		return 0, ErrDestroyed
	}
	return h.tcb.ID(), nil
}

// Name returns the task's static name, or ErrDestroyed.
func (h TaskHandle) Name() (string, error) {
	if !h.valid() {
		return "", ErrDestroyed
	}
	return h.tcb.Name(), nil
}

// StackRemaining reports how much of the task's stack depth has not been
// consumed (per the host port's simulated accounting), or ErrDestroyed.
func (h TaskHandle) StackRemaining() (int, error) {
	if !h.valid() {
		return 0, ErrDestroyed
	}
	return h.tcb.sp, nil
}

// Destroy marks the referenced task destroyed and invalidates its validity
// cookie (spec §4.6, §5 — "the only cancellation primitive is
// TaskHandle::destroy"). Idempotent; a handle that is already stale (the
// task was destroyed by itself via Exit, or by a prior Destroy call, or the
// handle was never valid) returns ErrDestroyed rather than panicking, per
// spec §4.10/§7's "operating on a destroyed TaskHandle... non-fatal".
func (h TaskHandle) Destroy() error {
	if !h.valid() {
		return ErrDestroyed
	}
	h.tcb.Destroy()
	return nil
}

// tcbOrNil returns the underlying TCB if the handle is still valid,
// otherwise nil. Used internally by sched, which holds the real mutual
// exclusion guaranteeing the TCB can't be concurrently destroyed mid-call.
func (h TaskHandle) tcbOrNil() *TCB {
	if !h.valid() {
		return nil
	}
	return h.tcb
}

// TCB exposes the underlying control block for package sched's internal
// use. Not intended for use outside the kernel's own core.
func (h TaskHandle) TCB() *TCB { return h.tcbOrNil() }
