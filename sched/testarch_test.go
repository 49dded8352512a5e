package sched

import "github.com/AltOS-Rust/altos-go/arch"

// testArch is a single-threaded, synchronous arch.Arch double: it never
// runs a goroutine and YieldCPU has no side effect of its own. Deterministic
// tests drive context switches explicitly via Scheduler.Schedule/SystemTick
// instead of relying on a real trap, so all testArch needs to do is hand
// out harmless frames and track critical-section nesting depth for
// InKernelMode.
type testArch struct {
	depth        int
	startedFirst arch.Frame
}

type testFrame struct {
	entry func(args any)
	args  any
}

func (a *testArch) YieldCPU() {}

func (a *testArch) StartFirstTask(f arch.Frame) { a.startedFirst = f }

func (a *testArch) InitializeStack(stack []byte, entry func(args any), args any) (arch.Frame, int) {
	return &testFrame{entry: entry, args: args}, len(stack)
}

func (a *testArch) InKernelMode() bool { return a.depth > 0 }

func (a *testArch) BeginCritical() uint32 {
	a.depth++
	return 0
}

func (a *testArch) EndCritical(uint32) { a.depth-- }

func (a *testArch) WaitForEvent() {}
