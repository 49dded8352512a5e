// Package cortexm documents the porting surface a real ARM Cortex-M target
// would implement to satisfy arch.Arch. It intentionally contains no
// assembly or register access: board bring-up (reset vector, .data/.bss
// copy, clock tree, linker symbols), SysTick/NVIC/PendSV wiring, and
// per-chip peripheral register wrappers are external collaborators that
// this kernel treats as out of scope (see SPEC_FULL.md).
//
// A concrete port would, per spec §4.3 and §4.7:
//
//   - InitializeStack: write the hardware-auto-saved scratch region
//     (program-status word, return address = entry, link register = an
//     exit-error trampoline, r0 = pointer to args, remaining scratch
//     registers zero) followed by the callee-saved region (zero), and
//     return a saved stack pointer pointing at the start of the
//     callee-saved region.
//   - StartFirstTask: pop that frame into the CPU and branch, never
//     returning, typically by forging an exception return.
//   - YieldCPU: set PendSV pending (ICSR.PENDSVSET) so the trap is taken
//     at the next interrupt-enabled instruction.
//   - BeginCritical/EndCritical: read-modify-write PRIMASK (or BASEPRI),
//     nestable via the returned mask.
//   - InKernelMode: compare the active stack pointer (MSP/PSP) selector
//     bit in CONTROL, or check the exception-number register.
//   - WaitForEvent: execute WFI (or WFE, paired with an SEV on wake
//     sources), so the idle task parks the core instead of spinning.
//
// None of this is implemented; importing this package only documents the
// contract for a future bring-up effort.
package cortexm
