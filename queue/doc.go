// Package queue implements the kernel's intrusive list primitives: a FIFO
// queue and a sorted list, both operating directly on the caller's own
// linked elements so that moving an element between queues never allocates.
//
// An element participates in exactly one queue (or list) at a time, or is
// held outside any queue (e.g. as the scheduler's current task) — this
// invariant is the caller's responsibility, not the queue's.
package queue
