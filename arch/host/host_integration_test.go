package host_test

import (
	"sync"
	"testing"
	"time"

	"github.com/AltOS-Rust/altos-go/arch/host"
	"github.com/AltOS-Rust/altos-go/sched"
	"github.com/AltOS-Rust/altos-go/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests exercise the real goroutine-per-task baton hand-off, unlike
// package sched's own tests which drive the scheduler core synchronously
// through a single-threaded stub. Only here do Mutex contention and
// Condvar waits actually suspend and resume a call stack.

func TestHost_MutexSerializesConcurrentIncrements(t *testing.T) {
	h := host.New()
	s := sched.New(h)
	m := s.NewMutex()

	const iterations = 200
	counter := 0
	var wg sync.WaitGroup
	wg.Add(2)

	worker := func(any) {
		for i := 0; i < iterations; i++ {
			m.Lock()
			counter++
			m.Unlock()
			s.SchedYield()
		}
		wg.Done()
		s.Exit()
	}
	s.NewTask(worker, nil, 256, task.Normal, "a")
	s.NewTask(worker, nil, 256, task.Normal, "b")
	go s.StartScheduler()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for both workers to finish")
	}
	assert.Equal(t, 2*iterations, counter)
}

func TestHost_CondvarBroadcastWakesAllWaiters(t *testing.T) {
	h := host.New()
	s := sched.New(h)
	m := s.NewMutex()
	cv := s.NewCondvar()

	ready := false
	const waiterCount = 4
	woke := make(chan int, waiterCount)

	waiter := func(id int) func(any) {
		return func(any) {
			m.Lock()
			for !ready {
				cv.Wait(m)
			}
			m.Unlock()
			woke <- id
			s.Exit()
		}
	}
	for i := 0; i < waiterCount; i++ {
		s.NewTask(waiter(i), nil, 256, task.Normal, "waiter")
	}
	s.NewTask(func(any) {
		m.Lock()
		ready = true
		m.Unlock()
		cv.Broadcast()
		s.Exit()
	}, nil, 256, task.Low, "notifier")
	go s.StartScheduler()

	seen := map[int]bool{}
	for i := 0; i < waiterCount; i++ {
		select {
		case id := <-woke:
			seen[id] = true
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out after %d of %d waiters woke", len(seen), waiterCount)
		}
	}
	assert.Len(t, seen, waiterCount)
}

func TestHost_SleepForWakesAfterRealTicks(t *testing.T) {
	h := host.New()
	s := sched.New(h)
	woke := make(chan struct{})

	s.NewTask(func(any) {
		s.SleepFor(0, 3)
		close(woke)
		s.Exit()
	}, nil, 256, task.Normal, "sleeper")
	go s.StartScheduler()

	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()
	go func() {
		for i := 0; i < 3; i++ {
			<-ticker.C
			s.SystemTick()
		}
	}()

	select {
	case <-woke:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for the sleeper to wake")
	}
}

func TestHost_DoubleLockTraps(t *testing.T) {
	h := host.New()
	s := sched.New(h)
	m := s.NewMutex()

	s.NewTask(func(any) {
		m.Lock()
		m.Lock() // re-acquiring its own lock: fatal
		s.Exit()
	}, nil, 256, task.Normal, "locker")
	go s.StartScheduler()

	faultVal := h.WaitForFault()
	fault, ok := faultVal.(*sched.Fault)
	require.True(t, ok, "expected a *sched.Fault, got %T", faultVal)
	assert.Equal(t, sched.DoubleLock, fault.Kind)
}
