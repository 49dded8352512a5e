//go:build !linux

package host

// chanWake is the portable fallback wakeup source for platforms without
// eventfd: a buffered channel plays the same role.
type chanWake struct {
	ch chan struct{}
}

func newWakeSource() (wakeSource, error) {
	return &chanWake{ch: make(chan struct{}, 1)}, nil
}

func (w *chanWake) wait() { <-w.ch }

func (w *chanWake) signal() {
	select {
	case w.ch <- struct{}{}:
	default:
	}
}

func (w *chanWake) close() {}
