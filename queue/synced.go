package queue

import "github.com/AltOS-Rust/altos-go/ksync"

// Synced serializes access to an intrusive container shared between kernel
// contexts that aren't already mutually excluded by the scheduler's own
// critical section — e.g. a queue touched by both task-context syscalls and
// a simulated timer ISR. C is the container pointer type, typically
// *Queue[T] or *SortedList[T]; Synced has no opinion on which operations it
// exposes, it only guarantees at most one Do call runs against inner at a
// time.
type Synced[C any] struct {
	mu    ksync.SpinMutex
	inner C
}

// NewSynced wraps inner for serialized access.
func NewSynced[C any](inner C) *Synced[C] {
	return &Synced[C]{inner: inner}
}

// Do runs fn with exclusive access to the wrapped container.
func (s *Synced[C]) Do(fn func(C)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.inner)
}
