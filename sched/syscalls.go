package sched

import (
	"github.com/AltOS-Rust/altos-go/altoslog"
	"github.com/AltOS-Rust/altos-go/ksync"
	"github.com/AltOS-Rust/altos-go/queue"
	"github.com/AltOS-Rust/altos-go/task"
	"github.com/AltOS-Rust/altos-go/tick"
)

func (s *Scheduler) trace(syscall string, taskID uint64, msg string) {
	if !s.log.IsEnabled(altoslog.LevelDebug) {
		return
	}
	s.log.Log(altoslog.Entry{Level: altoslog.LevelDebug, Syscall: syscall, TaskID: taskID, Message: msg})
}

// NewTask allocates and initializes a task under critical section, enqueues
// it Ready in its priority's queue, and returns a handle. Heap exhaustion
// while allocating its stack is fatal (spec §4.10), not an error return.
func (s *Scheduler) NewTask(entry func(args any), args any, depth int, priority task.Priority, name string) task.TaskHandle {
	wrapped := func(a any) {
		entry(a)
		raise(ExitReturned, name, "task entry returned without calling Exit", nil)
	}

	var handle task.TaskHandle
	ksync.Critical(s.arch, func() {
		tcb, err := task.New(s.arch, s.alloc, wrapped, args, depth, priority, name)
		if err != nil {
			raise(OutOfMemory, name, "failed to allocate task stack", err)
		}
		tcb.State = task.Ready
		s.ready[priority].Do(func(q *queue.Queue[*task.TCB]) { q.Enqueue(tcb) })
		handle = task.HandleOf(tcb)
		s.trace("new_task", tcb.ID(), name)
	})
	return handle
}

// Exit marks the current task destroyed and yields. Never returns: the
// goroutine backing this task (on arch/host) parks forever the moment the
// scheduler hands the CPU to another task, since a destroyed task is never
// re-enqueued or resumed.
func (s *Scheduler) Exit() {
	ksync.Critical(s.arch, func() {
		s.trace("exit", s.current.ID(), "")
		s.current.Destroy()
		s.arch.YieldCPU()
	})
}

// SchedYield requests a context switch and returns once this task is next
// scheduled.
func (s *Scheduler) SchedYield() {
	ksync.Critical(s.arch, func() {
		s.trace("sched_yield", s.current.ID(), "")
		s.arch.YieldCPU()
	})
}

// Sleep blocks the current task on ch indefinitely. ch must be non-zero; 0
// is the reserved forever-channel and sleeping on it is undefined (this
// implementation traps rather than silently misbehaving).
func (s *Scheduler) Sleep(ch task.Channel) {
	ksync.Critical(s.arch, func() {
		if ch == 0 {
			raise(InvariantViolation, s.current.Name(), "sleep(0) is undefined", nil)
		}
		s.trace("sleep", s.current.ID(), "")
		s.current.State = task.Blocked
		s.current.Channel = ch
		s.current.DelayKind = task.Sleep
		s.arch.YieldCPU()
	})
}

// SleepFor blocks the current task until ch is woken or delay ticks elapse,
// whichever comes first. delay==0 with a non-zero channel behaves as a
// plain indefinite Sleep. If now+delay overflows the tick counter's value
// space, the task is marked Overflowed and parked in the overflow delay
// queue until the counter itself wraps.
func (s *Scheduler) SleepFor(ch task.Channel, delay uint64) {
	ksync.Critical(s.arch, func() {
		s.trace("sleep_for", s.current.ID(), "")
		if delay == 0 && ch != 0 {
			s.current.State = task.Blocked
			s.current.Channel = ch
			s.current.DelayKind = task.Sleep
			s.arch.YieldCPU()
			return
		}

		now := s.counter.Get()
		wake := now + delay
		s.current.State = task.Blocked
		s.current.Channel = ch
		s.current.WakeTick = wake
		if wake < now {
			s.current.DelayKind = task.Overflowed
		} else {
			s.current.DelayKind = task.Timeout
		}
		s.arch.YieldCPU()
	})
}

// Wake extracts every task waiting on ch from the sleep, delay, and
// overflow-delay queues, resets it to Ready, and enqueues it in its
// priority's ready queue. Does not itself request a context switch.
func (s *Scheduler) Wake(ch task.Channel) {
	ksync.Critical(s.arch, func() {
		s.trace("wake", 0, "")
		s.wakeLocked(ch)
	})
}

// wakeLocked is Wake's body, callable from other syscalls (Unlock,
// Broadcast) that already hold the critical section.
func (s *Scheduler) wakeLocked(ch task.Channel) {
	match := func(t *task.TCB) bool { return t.Channel == ch }

	type dequeuer interface{ Dequeue() (*task.TCB, bool) }
	var lists [3]dequeuer
	s.sleepQueue.Do(func(q *queue.Queue[*task.TCB]) { lists[0] = q.Remove(match) })
	s.delayQueue.Do(func(l *queue.SortedList[*task.TCB]) { lists[1] = l.Remove(match) })
	s.overflowDelayQueue.Do(func(l *queue.SortedList[*task.TCB]) { lists[2] = l.Remove(match) })

	for _, l := range lists {
		for t, ok := l.Dequeue(); ok; t, ok = l.Dequeue() {
			t.State = task.Ready
			t.Channel = 0
			t.DelayKind = task.Invalid
			s.ready[t.Priority].Do(func(q *queue.Queue[*task.TCB]) { q.Enqueue(t) })
		}
	}
}

// SystemTick is the timer ISR entry point: increments the tick counter,
// wakes every task whose wake-tick has elapsed, migrates the overflow
// delay queue into the main one on wraparound, and requests a context
// switch if a same-or-higher priority task just became Ready.
func (s *Scheduler) SystemTick() {
	ksync.Critical(s.arch, func() {
		newTick := s.counter.Tick()
		s.metrics.Ticks++

		var due *queue.SortedList[*task.TCB]
		s.delayQueue.Do(func(l *queue.SortedList[*task.TCB]) {
			due = l.Remove(func(t *task.TCB) bool { return t.WakeTick <= newTick })
		})
		for t, ok := due.Dequeue(); ok; t, ok = due.Dequeue() {
			t.State = task.Ready
			t.DelayKind = task.Invalid
			s.ready[t.Priority].Do(func(q *queue.Queue[*task.TCB]) { q.Enqueue(t) })
		}

		if tick.JustWrapped(newTick) {
			s.delayQueue, s.overflowDelayQueue = s.overflowDelayQueue, s.delayQueue
		}

		if s.shouldPreempt() {
			s.arch.YieldCPU()
		}
	})
}

// shouldPreempt reports whether any priority at or above the current
// task's own has a non-empty ready queue. Lower numeric Priority values
// are higher priority, so "at or above" means index <= current's index.
func (s *Scheduler) shouldPreempt() bool {
	if s.current == nil {
		return false
	}
	for p := 0; p <= int(s.current.Priority); p++ {
		var empty bool
		s.ready[p].Do(func(q *queue.Queue[*task.TCB]) { empty = q.Empty() })
		if !empty {
			return true
		}
	}
	return false
}
