package ksync

import "github.com/AltOS-Rust/altos-go/arch"

// Critical runs fn with the given architecture's critical section held,
// restoring the prior interrupt-enable state on return even if fn panics.
// This is the RAII-shaped wrapper every kernel entry point uses instead of
// pairing BeginCritical/EndCritical by hand.
func Critical(a arch.Arch, fn func()) {
	mask := a.BeginCritical()
	defer a.EndCritical(mask)
	fn()
}

// CriticalVal is Critical for a function that returns a value.
func CriticalVal[T any](a arch.Arch, fn func() T) T {
	mask := a.BeginCritical()
	defer a.EndCritical(mask)
	return fn()
}
