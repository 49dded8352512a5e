package sched

import (
	"github.com/AltOS-Rust/altos-go/arch"
	"github.com/AltOS-Rust/altos-go/ksync"
	"github.com/AltOS-Rust/altos-go/queue"
	"github.com/AltOS-Rust/altos-go/task"
)

// trap is the scheduler's single context-switch entry point (spec §4.4),
// invoked by the architecture port once it has saved the outgoing task's
// context. It always runs with the critical section already held by the
// caller (arch/host's EndCritical calls it at depth 0; a real port's
// assembly trampoline would call Schedule under masked interrupts the same
// way), so no further locking is needed here.
func (s *Scheduler) trap() (prevFrame, nextFrame arch.Frame) {
	prev := s.current
	prevFrame = prev.Frame()

	if prev.IsStackOverflowed() {
		raise(StackOverflow, prev.Name(), "saved stack pointer reached the stack base", nil)
	}

	switch {
	case prev.Destroyed():
		// Drop it: not re-enqueued anywhere, so the scheduler holds no
		// reference to it once this function returns and the TCB is left
		// to the Go garbage collector. Its stack bytes stay allocated in
		// the bump allocator's region.
	case prev.State == task.Blocked:
		switch prev.DelayKind {
		case task.Sleep:
			s.sleepQueue.Do(func(q *queue.Queue[*task.TCB]) { q.Enqueue(prev) })
		case task.Overflowed:
			s.overflowDelayQueue.Do(func(l *queue.SortedList[*task.TCB]) { l.Insert(prev) })
		default: // Timeout
			s.delayQueue.Do(func(l *queue.SortedList[*task.TCB]) { l.Insert(prev) })
		}
	default:
		prev.State = task.Ready
		s.ready[prev.Priority].Do(func(q *queue.Queue[*task.TCB]) { q.Enqueue(prev) })
	}

	next := s.pickNext()
	s.metrics.ContextSwitches++
	return prevFrame, next.Frame()
}

// pickNext dequeues the first non-destroyed task from the highest-priority
// non-empty ready queue, drops any destroyed tasks it encounters along the
// way, and installs it as current. Panics with InvariantViolation if every
// queue is empty — this should never happen once the idle task is
// installed, since the idle task never blocks or exits.
func (s *Scheduler) pickNext() *task.TCB {
	for p := 0; p < task.NumPriorities; p++ {
		for {
			var t *task.TCB
			var ok bool
			s.ready[p].Do(func(q *queue.Queue[*task.TCB]) { t, ok = q.Dequeue() })
			if !ok {
				break
			}
			if t.Destroyed() {
				continue
			}
			t.State = task.Running
			s.current = t
			return t
		}
	}
	raise(InvariantViolation, "", "no ready task found — is the idle task installed?", nil)
	return nil
}

// Schedule runs the scheduler core entry point directly. Deterministic
// tests that don't use arch/host call this (and SystemTick) synchronously
// instead of going through a real architecture trap, exercising the exact
// same code path a context-switch interrupt would.
func (s *Scheduler) Schedule() {
	ksync.Critical(s.arch, func() {
		s.trap()
	})
}

// StartScheduler installs the idle task at the lowest priority and
// transfers control to the highest-priority Ready task. Never returns.
func (s *Scheduler) StartScheduler() {
	var first *task.TCB
	ksync.Critical(s.arch, func() {
		s.installIdleTask()
		first = s.pickNext()
	})
	s.arch.StartFirstTask(first.Frame())
}

// installIdleTask creates the task guaranteeing pickNext's selection loop
// always finds something: wait for an interrupt, then yield, forever.
func (s *Scheduler) installIdleTask() {
	entry := func(any) {
		for {
			s.arch.WaitForEvent()
			s.SchedYield()
		}
	}
	tcb, err := task.New(s.arch, s.alloc, entry, nil, s.idleStackDepth, task.Idle, "idle")
	if err != nil {
		raise(OutOfMemory, "idle", "failed to allocate idle task stack", err)
	}
	tcb.State = task.Ready
	s.ready[task.Idle].Do(func(q *queue.Queue[*task.TCB]) { q.Enqueue(tcb) })
}
