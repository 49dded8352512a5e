//go:build linux

package host

import "golang.org/x/sys/unix"

// eventfdWake is the Linux wakeup source, grounded in the teacher's own
// eventfd-based loop wakeup (eventloop/wakeup_linux.go): WaitForEvent
// blocks reading the eventfd instead of polling, and WakeCPU writes to it,
// standing in for "an interrupt line goes pending" waking a real WFI.
type eventfdWake struct {
	fd int
}

func newWakeSource() (wakeSource, error) {
	fd, err := unix.Eventfd(0, unix.EFD_CLOEXEC)
	if err != nil {
		return nil, err
	}
	return &eventfdWake{fd: fd}, nil
}

// wait blocks until signal has been called at least once since the last
// wait, draining the eventfd's counter back to zero.
func (w *eventfdWake) wait() {
	var buf [8]byte
	for {
		_, err := unix.Read(w.fd, buf[:])
		if err != unix.EINTR {
			return
		}
	}
}

func (w *eventfdWake) signal() {
	var buf [8]byte
	buf[0] = 1
	_, _ = unix.Write(w.fd, buf[:])
}

func (w *eventfdWake) close() {
	_ = unix.Close(w.fd)
}
