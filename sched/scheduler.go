// Package sched implements the scheduler core and syscall surface: task
// lifecycle, the fixed-priority context-switch entry point, tick handling,
// and the sleeping mutex/condvar built on top of sleep/wake.
package sched

import (
	"github.com/AltOS-Rust/altos-go/altoslog"
	"github.com/AltOS-Rust/altos-go/arch"
	"github.com/AltOS-Rust/altos-go/arch/host"
	"github.com/AltOS-Rust/altos-go/ksync"
	"github.com/AltOS-Rust/altos-go/queue"
	"github.com/AltOS-Rust/altos-go/task"
	"github.com/AltOS-Rust/altos-go/tick"
)

// Scheduler is the kernel state: the tick counter, the global queue set,
// and current_task. Nothing limits a program to one; the tests and
// cmd/altossim build a separate Scheduler per scenario. The zero value is
// not usable; use New.
type Scheduler struct {
	arch  arch.Arch
	alloc task.Allocator
	log   altoslog.Logger

	idleStackDepth int

	counter tick.Counter

	// Every queue is wrapped in queue.Synced: the scheduler's own critical
	// section already serializes every syscall and SystemTick, and the
	// SpinMutex is a second, independent layer that serializes each queue
	// operation on its own.
	ready              [task.NumPriorities]*queue.Synced[*queue.Queue[*task.TCB]]
	delayQueue         *queue.Synced[*queue.SortedList[*task.TCB]]
	overflowDelayQueue *queue.Synced[*queue.SortedList[*task.TCB]]
	sleepQueue         *queue.Synced[*queue.Queue[*task.TCB]]

	current *task.TCB

	metrics Metrics
}

// Option configures a Scheduler at construction, grounded in the teacher's
// functional-options convention (eventloop.LoopOption).
type Option interface{ apply(*Scheduler) }

type optionFunc func(*Scheduler)

func (f optionFunc) apply(s *Scheduler) { f(s) }

// WithLogger attaches a structured logger; every syscall except SystemTick
// then traces its entry at LevelDebug. Omitted, syscalls log nowhere.
func WithLogger(l altoslog.Logger) Option {
	return optionFunc(func(s *Scheduler) { s.log = l })
}

// WithAllocator overrides the task-stack allocator. Defaults to a 64KiB
// bump allocator, sufficient for test and demo use; real deployments
// should supply the integrator's own heap region.
func WithAllocator(a task.Allocator) Option {
	return optionFunc(func(s *Scheduler) { s.alloc = a })
}

// WithIdleStackDepth overrides the idle task's stack depth in bytes.
// Default 256.
func WithIdleStackDepth(n int) Option {
	return optionFunc(func(s *Scheduler) { s.idleStackDepth = n })
}

// WithInitialTick seeds the tick counter instead of starting it at 0. Real
// deployments have no reason to use this; it exists so callers exercising
// wraparound behavior (cmd/altossim's overflow scenario) don't need
// millions of real SystemTick calls to reach it.
func WithInitialTick(v uint64) Option {
	return optionFunc(func(s *Scheduler) { s.counter.SetForTest(v) })
}

// New constructs a Scheduler over the given architecture port. If a is an
// *arch/host.Host, New registers itself as that host's context-switch trap
// automatically; any other Arch implementation (e.g. a real Cortex-M port)
// is expected to call Scheduler.Schedule directly from its trap handler.
func New(a arch.Arch, opts ...Option) *Scheduler {
	s := &Scheduler{
		arch:               a,
		alloc:              task.NewBumpAllocator(make([]byte, 64*1024)),
		log:                altoslog.NoOpLogger{},
		idleStackDepth:     256,
		delayQueue:         queue.NewSynced(&queue.SortedList[*task.TCB]{}),
		overflowDelayQueue: queue.NewSynced(&queue.SortedList[*task.TCB]{}),
		sleepQueue:         queue.NewSynced(&queue.Queue[*task.TCB]{}),
	}
	for p := range s.ready {
		s.ready[p] = queue.NewSynced(&queue.Queue[*task.TCB]{})
	}
	for _, o := range opts {
		o.apply(s)
	}
	if h, ok := a.(*host.Host); ok {
		h.SetTrap(s.trap)
	}
	return s
}

// Current returns the running task's handle. Panics with an
// InvariantViolation Fault if called before StartScheduler.
func (s *Scheduler) Current() task.TaskHandle {
	var h task.TaskHandle
	ksync.Critical(s.arch, func() {
		if s.current == nil {
			raise(InvariantViolation, "", "Current called with no running task", nil)
		}
		h = task.HandleOf(s.current)
	})
	return h
}

// Metrics is a point-in-time snapshot of scheduler activity, grounded in
// the teacher's counter-struct observability style (eventloop/metrics.go).
type Metrics struct {
	ContextSwitches uint64
	Ticks           uint64
	ReadyDepth      [task.NumPriorities]int
	DelayDepth      int
	OverflowDepth   int
	SleepDepth      int
}

// Metrics returns a snapshot of the scheduler's current activity counters
// and queue depths.
func (s *Scheduler) Metrics() Metrics {
	var m Metrics
	ksync.Critical(s.arch, func() {
		m = s.metrics
		for p := range s.ready {
			s.ready[p].Do(func(q *queue.Queue[*task.TCB]) { m.ReadyDepth[p] = q.Len() })
		}
		s.delayQueue.Do(func(l *queue.SortedList[*task.TCB]) { m.DelayDepth = l.Len() })
		s.overflowDelayQueue.Do(func(l *queue.SortedList[*task.TCB]) { m.OverflowDepth = l.Len() })
		s.sleepQueue.Do(func(q *queue.Queue[*task.TCB]) { m.SleepDepth = q.Len() })
	})
	return m
}
