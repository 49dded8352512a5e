// Command altossim runs the kernel's spec end-to-end scenarios against the
// host simulation and prints what it observes. It is a test harness, not an
// application demo: every scenario builds its own Scheduler and exits once
// its tasks are done.
package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/AltOS-Rust/altos-go/altoslog"
	"github.com/AltOS-Rust/altos-go/arch/host"
	"github.com/AltOS-Rust/altos-go/sched"
	"github.com/AltOS-Rust/altos-go/task"
)

func main() {
	scenarios := []struct {
		name string
		run  func()
	}{
		{"priority preemption", scenarioPriorityPreemption},
		{"round-robin within a level", scenarioRoundRobin},
		{"sleep_for timeout with early wake", scenarioSleepForTimeout},
		{"tick overflow", scenarioTickOverflow},
		{"condvar notify-all", scenarioCondvarNotifyAll},
		{"double-lock traps", scenarioDoubleLockTraps},
	}

	for i, sc := range scenarios {
		fmt.Printf("=== scenario %d: %s ===\n", i+1, sc.name)
		sc.run()
		fmt.Println()
	}
}

func scenarioPriorityPreemption() {
	h := host.New()
	s := sched.New(h, sched.WithLogger(altoslog.NewStdLogger(altoslog.LevelWarn)))

	var wg sync.WaitGroup
	wg.Add(2)
	events := make(chan string, 16)

	s.NewTask(func(any) {
		for i := 0; i < 5; i++ {
			events <- "A"
			s.SchedYield()
		}
		wg.Done()
		s.Exit()
	}, nil, 256, task.Normal, "A")

	s.NewTask(func(any) {
		s.SleepFor(0, 5)
		events <- "B"
		wg.Done()
		s.Exit()
	}, nil, 256, task.Critical, "B")

	go s.StartScheduler()
	driveTicks(s, 5, 2*time.Millisecond)

	waitThen(&wg, func() {
		close(events)
		var seq []string
		for e := range events {
			seq = append(seq, e)
		}
		fmt.Println("tid sequence:", strings.Join(seq, ", "))
	})
}

func scenarioRoundRobin() {
	h := host.New()
	s := sched.New(h)

	const rounds = 2
	var wg sync.WaitGroup
	wg.Add(3)
	events := make(chan string, 3*rounds)

	for _, name := range []string{"T1", "T2", "T3"} {
		name := name
		s.NewTask(func(any) {
			for i := 0; i < rounds; i++ {
				events <- name
				s.SchedYield()
			}
			wg.Done()
			s.Exit()
		}, nil, 256, task.Normal, name)
	}

	go s.StartScheduler()
	waitThen(&wg, func() {
		close(events)
		var seq []string
		for e := range events {
			seq = append(seq, e)
		}
		fmt.Println("tid sequence:", strings.Join(seq, ", "))
	})
}

func scenarioSleepForTimeout() {
	h := host.New()
	s := sched.New(h)

	var wg sync.WaitGroup
	wg.Add(1)
	woke := make(chan time.Time, 1)
	start := time.Now()

	s.NewTask(func(any) {
		s.SleepFor(7, 4)
		woke <- time.Now()
		wg.Done()
		s.Exit()
	}, nil, 256, task.Normal, "T")

	go s.StartScheduler()

	go func() {
		time.Sleep(4 * time.Millisecond)
		s.Wake(7)
	}()
	driveTicks(s, 4, 2*time.Millisecond)

	waitThen(&wg, func() {
		elapsed := (<-woke).Sub(start)
		fmt.Printf("woken after %s (well inside the 4-tick timeout, via explicit wake)\n", elapsed)
	})
}

func scenarioTickOverflow() {
	h := host.New()
	s := sched.New(h, sched.WithInitialTick(^uint64(0)-2)) // MAX-2

	var wg sync.WaitGroup
	wg.Add(1)

	s.NewTask(func(any) {
		s.SleepFor(0, 5) // absolute wake = 2, overflowed
		wg.Done()
		s.Exit()
	}, nil, 256, task.Normal, "T")

	go s.StartScheduler()
	driveTicks(s, 5, time.Millisecond) // 3 ticks wrap the counter, 2 more reach wake=2

	waitThen(&wg, func() {
		fmt.Println("task woke after the counter wrapped and the overflow queue migrated")
	})
}

func scenarioCondvarNotifyAll() {
	h := host.New()
	s := sched.New(h)
	m := s.NewMutex()
	cv := s.NewCondvar()

	ready := false
	const waiters = 3
	var wg sync.WaitGroup
	wg.Add(waiters + 1)
	woke := make(chan string, waiters)

	for _, name := range []string{"W1", "W2", "W3"} {
		name := name
		s.NewTask(func(any) {
			m.Lock()
			for !ready {
				cv.Wait(m)
			}
			m.Unlock()
			woke <- name
			wg.Done()
			s.Exit()
		}, nil, 256, task.Normal, name)
	}
	s.NewTask(func(any) {
		m.Lock()
		ready = true
		m.Unlock()
		cv.Broadcast()
		wg.Done()
		s.Exit()
	}, nil, 256, task.Low, "N")

	go s.StartScheduler()
	waitThen(&wg, func() {
		close(woke)
		var names []string
		for n := range woke {
			names = append(names, n)
		}
		fmt.Println("waiters resumed, each holding the mutex exclusively:", strings.Join(names, ", "))
	})
}

func scenarioDoubleLockTraps() {
	h := host.New()
	s := sched.New(h)
	m := s.NewMutex()

	s.NewTask(func(any) {
		m.Lock()
		m.Lock()
		s.Exit()
	}, nil, 256, task.Normal, "T")

	go s.StartScheduler()
	fault, _ := h.WaitForFault().(*sched.Fault)
	fmt.Printf("trapped: %v\n", fault)
}

// driveTicks simulates a timer ISR: n system ticks, one per interval.
func driveTicks(s *sched.Scheduler, n int, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for i := 0; i < n; i++ {
			<-ticker.C
			s.SystemTick()
		}
	}()
}

// waitThen runs fn once wg completes, bounding the wait so a broken scenario
// fails fast instead of hanging the whole harness.
func waitThen(wg *sync.WaitGroup, fn func()) {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		fn()
	case <-time.After(5 * time.Second):
		fmt.Println("timed out waiting for scenario to finish")
	}
}
