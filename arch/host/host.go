// Package host implements arch.Arch as a single-threaded simulation: each
// task is a goroutine, but at most one of them is ever runnable at a time,
// with control handed off baton-style through a per-task channel. This is
// the "single-threaded host stub" spec §4.7 calls for — it satisfies the
// full Arch contract well enough to drive every scheduler invariant under
// test, without writing a single line of architecture assembly.
//
// The design is a generalization of the toy goroutine-as-task schedulers
// used to teach Go's own runtime model: there, a G/M/P sketch hands a baton
// between cooperating goroutines to imitate the Go scheduler's run queue.
// Here the baton hand-off is driven by the kernel's own fixed-priority
// scheduler core instead of round robin.
package host

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/AltOS-Rust/altos-go/arch"
)

// TrapFunc is invoked by the host whenever a pending yield is taken (i.e.
// whenever the outermost critical section ends with a yield pending). It
// must run the scheduler's core entry point and report which frame was
// current beforehand and which is current afterward.
type TrapFunc func() (prev, next arch.Frame)

// frame is the host's concrete arch.Frame: a goroutine, its entry point,
// and the channel used to grant it the baton.
type frame struct {
	resume  chan struct{}
	entry   func(args any)
	args    any
	started bool
}

// wakeSource lets WaitForEvent park without spinning or polling, and lets
// an external "interrupt" (any caller of WakeCPU) wake it promptly. Platform-specific implementations live in wakeup_linux.go
// (eventfd) and wakeup_other.go (channel fallback).
type wakeSource interface {
	wait()
	signal()
	close()
}

// Host is a single arch.Arch instance. The zero value is not usable; use
// New.
type Host struct {
	waitQuantum time.Duration

	trap TrapFunc

	mu      sync.Mutex
	holder  int64
	depth   int32
	pending atomic.Bool

	wake wakeSource

	fault   atomic.Value
	faultCh chan any
}

// Option configures a Host at construction, grounded in the teacher's
// functional-options convention (eventloop.LoopOption).
type Option interface{ apply(*Host) }

type optionFunc func(*Host)

func (f optionFunc) apply(h *Host) { f(h) }

// WithWaitQuantum sets the sleep duration WaitForEvent uses to stand in for
// a real "wait for interrupt" instruction. A non-zero quantum takes
// precedence over the wakeup source. Default 0: WaitForEvent parks on the
// wakeup source, or calls runtime.Gosched if none could be created.
func WithWaitQuantum(d time.Duration) Option {
	return optionFunc(func(h *Host) { h.waitQuantum = d })
}

// New constructs a Host. SetTrap must be called (typically by sched.New)
// before StartFirstTask.
func New(opts ...Option) *Host {
	h := &Host{faultCh: make(chan any, 1)}
	for _, o := range opts {
		o.apply(h)
	}
	if w, err := newWakeSource(); err == nil {
		h.wake = w
	}
	return h
}

// Fault returns the panic value of the first task whose entry trapped (a
// real port's equivalent of a debugger breakpoint), or nil if none has.
// Safe to call from any goroutine.
func (h *Host) Fault() any { return h.fault.Load() }

// WaitForFault blocks until a task traps, then returns its panic value.
// Integration tests use this instead of racily polling Fault.
func (h *Host) WaitForFault() any { return <-h.faultCh }

// launch starts fr's goroutine such that a panicking entry function
// traps instead of crashing the whole process: the panic is recorded and
// the goroutine parks forever, standing in for "breakpoint, then infinite
// loop" (spec §4.10/§7) without taking the rest of the simulation down
// with it.
func (h *Host) launch(fr *frame) {
	fr.started = true
	go func() {
		defer func() {
			if r := recover(); r != nil {
				h.fault.Store(r)
				select {
				case h.faultCh <- r:
				default:
				}
				select {} // the trap: park forever
			}
		}()
		fr.entry(fr.args)
	}()
}

// WakeCPU signals any goroutine currently parked in WaitForEvent, standing
// in for a real interrupt line going pending and waking a core out of WFI.
// Safe to call from a simulated ISR goroutine.
func (h *Host) WakeCPU() {
	if h.wake != nil {
		h.wake.signal()
	}
}

// Close releases the host's wakeup source. Only meaningful for the
// eventfd-backed Linux implementation; a no-op otherwise.
func (h *Host) Close() {
	if h.wake != nil {
		h.wake.close()
	}
}

// SetTrap registers the scheduler's context-switch entry point. Must be
// called exactly once, before the scheduler starts.
func (h *Host) SetTrap(fn TrapFunc) { h.trap = fn }

// InitializeStack stubs stack initialization per spec §4.7's own allowance:
// the host never writes a real register frame, it just remembers the
// task's entry point and args behind a resume channel. savedSP is reported
// as len(stack), i.e. "nothing used yet"; TCB.IsStackOverflowed compares
// against this the same way a real port would compare a real pointer.
func (h *Host) InitializeStack(stack []byte, entry func(args any), args any) (arch.Frame, int) {
	return &frame{resume: make(chan struct{}, 1), entry: entry, args: args}, len(stack)
}

// StartFirstTask launches f's goroutine and blocks forever; the boot
// context never resumes, matching the real trampoline's "never returns".
func (h *Host) StartFirstTask(f arch.Frame) {
	h.launch(f.(*frame))
	select {}
}

// InKernelMode reports whether the calling goroutine currently holds the
// host's critical section, i.e. is executing kernel code rather than task
// code.
func (h *Host) InKernelMode() bool {
	return atomic.LoadInt32(&h.depth) > 0 && atomic.LoadInt64(&h.holder) == goroutineID()
}

// BeginCritical acquires the host's single critical-section slot. Nestable
// within the same goroutine; blocks if a different goroutine (e.g. the
// timer ISR simulation) currently holds it, faithfully modeling "the
// interrupt line is masked" as mutual exclusion between whichever context
// is currently 'in the kernel'.
func (h *Host) BeginCritical() uint32 {
	gid := goroutineID()
	if atomic.LoadInt64(&h.holder) == gid && atomic.LoadInt32(&h.depth) > 0 {
		return uint32(atomic.AddInt32(&h.depth, 1) - 1)
	}
	h.mu.Lock()
	atomic.StoreInt64(&h.holder, gid)
	atomic.StoreInt32(&h.depth, 1)
	return 0
}

// EndCritical releases one nesting level. On the outermost exit it takes
// any pending yield (spec §4.4's "trap is taken at the next
// interrupt-enabled instruction") before actually unmasking. The critical
// section itself is released before parking on the outgoing task's resume
// channel, so the newly current goroutine's own syscalls never wait on a
// lock this goroutine is still sitting on.
func (h *Host) EndCritical(mask uint32) {
	if atomic.AddInt32(&h.depth, -1) != 0 {
		return
	}
	var park chan struct{}
	if h.pending.CompareAndSwap(true, false) {
		park = h.runTrap()
	}
	atomic.StoreInt64(&h.holder, 0)
	h.mu.Unlock()
	if park != nil {
		<-park
	}
}

// YieldCPU marks a context switch as pending. Per spec it has no immediate
// effect while interrupts are disabled — the switch is taken by the
// matching EndCritical once nesting returns to zero.
func (h *Host) YieldCPU() {
	h.pending.Store(true)
}

// WaitForEvent stands in for a "wait for interrupt" instruction. If a wait
// quantum is configured it sleeps for that long. Otherwise, with a wakeup
// source available, it parks until WakeCPU is called, same as a real core
// executing WFI; with neither, it calls runtime.Gosched so other goroutines
// get a turn.
func (h *Host) WaitForEvent() {
	if h.waitQuantum > 0 {
		time.Sleep(h.waitQuantum)
		return
	}
	if h.wake != nil {
		h.wake.wait()
		return
	}
	runtime.Gosched()
}

// runTrap calls into the scheduler and performs the goroutine hand-off: the
// newly current task's goroutine is granted the baton (or launched, if this
// is its first run). It returns the outgoing task's resume channel when a
// switch actually happened (nil if the scheduler picked the same task back),
// which the caller parks on only after releasing the critical section.
func (h *Host) runTrap() chan struct{} {
	prev, next := h.trap()
	prevFr := prev.(*frame)
	nextFr := next.(*frame)
	if prevFr == nextFr {
		return nil
	}
	if !nextFr.started {
		h.launch(nextFr)
	} else {
		nextFr.resume <- struct{}{}
	}
	return prevFr.resume
}
