package host

import (
	"bytes"
	"runtime"
	"strconv"
)

// goroutineID extracts the runtime-assigned goroutine id from the calling
// goroutine's own stack trace. It exists only so the host simulation can
// tell whether a BeginCritical call is a genuine nested (same control flow)
// call or a new contender for the kernel's single critical-section slot;
// real hardware gets this distinction for free because there's exactly one
// core. Not for use outside this package.
func goroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		b = b[:i]
	}
	id, _ := strconv.ParseInt(string(b), 10, 64)
	return id
}
