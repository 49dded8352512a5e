// Package arch defines the kernel's architecture-port contract (spec §4.7):
// the primitives a concrete target must supply so the scheduler core,
// syscalls, and synchronization primitives never reference hardware
// directly.
//
// A real Cortex-M port would implement Arch with PendSV-trampoline
// assembly, SysTick wiring, and NVIC priority masking; that port is out of
// scope here (board bring-up, linker symbols, and peripheral register
// wrappers are external collaborators per the kernel's scope). The
// implementation shipped with this module is arch/host, a single-threaded
// simulation sufficient to drive every scheduler invariant under test.
package arch

// Frame is an opaque, architecture-defined initial register frame as
// produced by InitializeStack. The scheduler never inspects its contents;
// it only ever hands a Frame back to the same Arch that produced it.
type Frame any

// Arch is the entire porting surface named in spec §4.7.
type Arch interface {
	// YieldCPU requests a context switch at the next opportunity. It has
	// no immediate effect if the calling context has interrupts disabled;
	// the switch happens once interrupts are next re-enabled.
	YieldCPU()

	// StartFirstTask installs the register frame of the current task and
	// transfers control to it. Called exactly once, from kernel bring-up.
	// Never returns.
	StartFirstTask(frame Frame)

	// InitializeStack lays out an initial register frame within a task's
	// stack region such that resuming it will begin executing
	// entry(args), and returns the frame plus the saved-stack-pointer
	// value the TCB should record.
	InitializeStack(stack []byte, entry func(args any), args any) (frame Frame, savedSP int)

	// InKernelMode reports whether the calling context is running on the
	// kernel (interrupt) stack, as opposed to a task's own stack.
	InKernelMode() bool

	// BeginCritical masks the primary interrupt line and returns an
	// opaque mask token to pass to EndCritical. Nestable.
	BeginCritical() (mask uint32)

	// EndCritical restores the interrupt-enable state captured by the
	// matching BeginCritical call.
	EndCritical(mask uint32)

	// WaitForEvent stands in for a "wait for interrupt" instruction: it
	// gives up the processor until the next interrupt, without busy
	// spinning. The scheduler's idle task body is exactly this call.
	WaitForEvent()
}
