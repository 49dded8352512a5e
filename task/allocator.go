package task

import "errors"

// ErrOutOfMemory is returned by an Allocator once its backing region is
// exhausted. New treats this as the fatal OutOfMemory condition from spec
// §4.10/§7.
var ErrOutOfMemory = errors.New("altos: heap exhausted")

// Allocator is the external collaborator contract spec §1 assumes: "a
// fixed-address byte region, bump-style allocation". The bump/free-list
// heap implementation proper is out of scope for this kernel; only this
// narrow contract is depended on.
type Allocator interface {
	// Alloc returns a freshly allocated, zeroed byte slice of length n, or
	// ErrOutOfMemory if the region can't satisfy the request.
	Alloc(n int) ([]byte, error)
}

// BumpAllocator is a minimal host-side Allocator: a fixed region, handed
// out front-to-back, never reclaimed. It exists so TCB.New has something
// concrete to call in tests and in the cmd/altossim harness; it is not a
// general-purpose heap.
type BumpAllocator struct {
	region []byte
	offset int
}

// NewBumpAllocator wraps region as a bump allocator. region is owned by the
// allocator for its lifetime.
func NewBumpAllocator(region []byte) *BumpAllocator {
	return &BumpAllocator{region: region}
}

// Alloc implements Allocator.
func (a *BumpAllocator) Alloc(n int) ([]byte, error) {
	if n < 0 || a.offset+n > len(a.region) {
		return nil, ErrOutOfMemory
	}
	b := a.region[a.offset : a.offset+n : a.offset+n]
	a.offset += n
	for i := range b {
		b[i] = 0
	}
	return b, nil
}

// Remaining reports how many bytes are still unallocated.
func (a *BumpAllocator) Remaining() int {
	return len(a.region) - a.offset
}
