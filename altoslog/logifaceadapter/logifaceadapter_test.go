package logifaceadapter

import (
	"bytes"
	"strconv"
	"testing"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AltOS-Rust/altos-go/altoslog"
	"github.com/AltOS-Rust/altos-go/arch"
	"github.com/AltOS-Rust/altos-go/sched"
	"github.com/AltOS-Rust/altos-go/task"
)

func noop(any) {}

// TestAdapter_TracesSchedulerSyscalls builds a real sched.Scheduler wired to
// an Adapter and asserts that syscall tracing actually reaches stumpy's JSON
// encoder end to end, rather than exercising the adapter in isolation.
func TestAdapter_TracesSchedulerSyscalls(t *testing.T) {
	var buf bytes.Buffer
	a := New(
		stumpy.L.WithStumpy(stumpy.WithWriter(&buf)),
		logiface.WithLevel[*stumpy.Event](logiface.LevelDebug),
	)

	s := sched.New(&testArch{}, sched.WithLogger(a))
	h := s.NewTask(noop, nil, 64, task.Normal, "logged")
	require.True(t, h.IsValid())

	id, err := h.ID()
	require.NoError(t, err)

	out := buf.String()
	require.NotEmpty(t, out, "adapter must have written at least one event")
	assert.Contains(t, out, `"syscall":"new_task"`)
	// stumpy serializes Uint64 fields as quoted strings.
	assert.Contains(t, out, `"task":"`+strconv.FormatUint(id, 10)+`"`)
}

func TestAdapter_IsEnabledRespectsConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	a := New(stumpy.L.WithStumpy(stumpy.WithWriter(&buf)))

	// Default logiface level is LevelInformational; Debug-level syscall
	// tracing must be suppressed unless explicitly raised.
	assert.False(t, a.IsEnabled(altoslog.LevelDebug))
}

// testArch is a single-threaded, synchronous arch.Arch double, mirroring
// sched's own internal test double (sched/testarch_test.go): this package
// can't import that unexported type, so it keeps a minimal one of its own.
type testArch struct{ depth int }

func (a *testArch) YieldCPU() {}

func (a *testArch) StartFirstTask(arch.Frame) {}

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

type testFrame struct {
	entry func(args any)
	args  any
}
