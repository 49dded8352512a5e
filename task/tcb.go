package task

import (
	"fmt"
	"sync/atomic"

	"github.com/AltOS-Rust/altos-go/arch"
)

// Channel identifies a sleep/wake rendezvous point. By convention it is the
// address of the object being waited on; 0 is reserved to mean "no
// channel" (the forever-channel used by bounded sleeps with no named
// channel).
type Channel uintptr

// cookieSentinel is XORed with the low byte of a task's id to produce its
// validity cookie (spec §4.6). Destroy zeroes the cookie so any later
// accessor, even one racing a concurrent destroy, observes a mismatch
// rather than a stale-but-plausible value.
const cookieSentinel uint32 = 0x5A5A5A00

var nextID atomic.Uint64

// TCB is the kernel's per-task control block. Spec §3 requires the saved
// stack pointer to be the first field so a real architecture port's
// assembly trampoline can treat a *TCB as a pointer-to-stack-pointer; the
// host port never dereferences it as a real pointer; it is this field's
// position that matters, not a real port's absence here.
type TCB struct {
	sp int // saved "stack pointer": bytes of headroom remaining, host-simulated

	frame      arch.Frame
	stackDepth int
	args       any

	id   uint64
	name string

	cookie atomic.Uint32

	Channel   Channel
	WakeTick  uint64
	DelayKind DelayKind

	destroy atomic.Bool

	Priority Priority
	State    State

	next *TCB
}

// New allocates a task's stack via alloc, lays out its initial register
// frame via a, and returns a TCB in state Embryo. entry is invoked with
// args once the task is first scheduled.
//
// Callers (the sched package) are responsible for wrapping entry so that a
// normal return traps per spec §4.10 — TCB itself has no opinion on that,
// it only carries the frame arch produces.
func New(a arch.Arch, alloc Allocator, entry func(args any), args any, depth int, priority Priority, name string) (*TCB, error) {
	stack, err := alloc.Alloc(depth)
	if err != nil {
		return nil, err
	}
	frame, sp := a.InitializeStack(stack, entry, args)

	t := &TCB{
		sp:         sp,
		frame:      frame,
		stackDepth: depth,
		args:       args,
		id:         nextID.Add(1),
		name:       name,
		Priority:   priority,
		State:      Embryo,
	}
	t.cookie.Store(cookieSentinel | uint32(byte(t.id)))
	return t, nil
}

// ID returns the task's unique, monotonically assigned id.
func (t *TCB) ID() uint64 { return t.id }

// Name returns the task's static name.
func (t *TCB) Name() string { return t.name }

// Frame returns the architecture-opaque register frame backing this task,
// for use only by the arch implementation that produced it.
func (t *TCB) Frame() arch.Frame { return t.frame }

// Destroyed reports whether Destroy has been called.
func (t *TCB) Destroyed() bool { return t.destroy.Load() }

// Destroy marks the task destroyed and invalidates its validity cookie
// (spec §3 invariant 4, §4.3). Idempotent.
func (t *TCB) Destroy() {
	t.destroy.Store(true)
	t.cookie.Store(0)
}

// Cookie returns the current validity cookie (0 once destroyed).
func (t *TCB) Cookie() uint32 { return t.cookie.Load() }

// ExpectedCookie returns the cookie value a live task with this id must
// carry.
func (t *TCB) ExpectedCookie() uint32 { return cookieSentinel | uint32(byte(t.id)) }

// Valid reports whether the task's cookie still matches its id, i.e. it has
// not been destroyed.
func (t *TCB) Valid() bool { return t.Cookie() == t.ExpectedCookie() }

// IsStackOverflowed reports whether the saved stack pointer has reached or
// passed the stack base (spec §3 invariant 5). The host port never writes
// real stack memory, so this is always false unless SetStackPointerForTest
// is used to exercise the check.
func (t *TCB) IsStackOverflowed() bool { return t.sp <= 0 }

// SetStackPointerForTest forces the saved stack pointer, for exercising
// IsStackOverflowed. Not meaningful on a real architecture port, where the
// value comes from actual register state.
func (t *TCB) SetStackPointerForTest(sp int) { t.sp = sp }

// Next implements queue.Linkable.
func (t *TCB) Next() *TCB { return t.next }

// SetNext implements queue.Linkable.
func (t *TCB) SetNext(n *TCB) { t.next = n }

// LessOrEqual implements queue.Ordered for the delay queues, ordering by
// absolute wake tick.
func (t *TCB) LessOrEqual(other *TCB) bool { return t.WakeTick <= other.WakeTick }

// String renders the TCB for debug logging.
func (t *TCB) String() string {
	return fmt.Sprintf("task(tid=%d name=%q pri=%s state=%s)", t.id, t.name, t.Priority, t.State)
}
