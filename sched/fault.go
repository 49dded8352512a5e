package sched

import "fmt"

// FaultKind enumerates the fatal, unrecoverable conditions the scheduler
// core can detect. Every one of these corresponds to a "traps" clause in
// the syscall surface: the kernel has no way to continue, so it panics with
// a Fault rather than returning an error a caller could ignore.
type FaultKind int

const (
	// StackOverflow means a task's saved stack pointer reached its stack
	// base.
	StackOverflow FaultKind = iota
	// ExitReturned means a task's entry function returned instead of
	// calling Exit.
	ExitReturned
	// DoubleLock means a task called Mutex.Lock while already holding the
	// same mutex. (Mutex.TryLock by the holder succeeds instead.)
	DoubleLock
	// UnlockNotOwner means a task called Unlock on a mutex it does not
	// hold.
	UnlockNotOwner
	// CondvarMutexMismatch means a Condvar was used with a mutex other
	// than the first one it was waited with.
	CondvarMutexMismatch
	// OutOfMemory means the task allocator could not satisfy a request.
	OutOfMemory
	// InvariantViolation covers any other internal consistency check
	// failing (e.g. scheduling with no ready task and no idle task
	// installed).
	InvariantViolation
)

// String renders the fault kind for logging and Fault.Error.
func (k FaultKind) String() string {
	switch k {
	case StackOverflow:
		return "StackOverflow"
	case ExitReturned:
		return "ExitReturned"
	case DoubleLock:
		return "DoubleLock"
	case UnlockNotOwner:
		return "UnlockNotOwner"
	case CondvarMutexMismatch:
		return "CondvarMutexMismatch"
	case OutOfMemory:
		return "OutOfMemory"
	case InvariantViolation:
		return "InvariantViolation"
	default:
		return "Unknown"
	}
}

// Fault is the panic value the scheduler raises for any unrecoverable
// programming error. It carries an optional cause so errors.Is/errors.As
// still see through to e.g. task.ErrOutOfMemory.
type Fault struct {
	Kind    FaultKind
	Task    string // the offending task's name, if known
	Message string
	Cause   error
}

// Error implements error.
func (f *Fault) Error() string {
	if f.Task != "" {
		return fmt.Sprintf("altos: fault %s in task %q: %s", f.Kind, f.Task, f.Message)
	}
	return fmt.Sprintf("altos: fault %s: %s", f.Kind, f.Message)
}

// Unwrap exposes the underlying cause, if any, for errors.Is/errors.As.
func (f *Fault) Unwrap() error { return f.Cause }

// raise panics with a freshly constructed Fault.
func raise(kind FaultKind, taskName, message string, cause error) {
	panic(&Fault{Kind: kind, Task: taskName, Message: message, Cause: cause})
}
