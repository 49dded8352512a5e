package ksync

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpinMutex_MutualExclusion(t *testing.T) {
	var m SpinMutex
	var counter int
	var wg sync.WaitGroup
	const goroutines, iterations = 8, 1000

	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range iterations {
				m.Lock()
				counter++
				m.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines*iterations, counter)
}

func TestSpinMutex_TryLock(t *testing.T) {
	var m SpinMutex

	require.True(t, m.TryLock())
	assert.False(t, m.TryLock(), "second TryLock while held should fail")

	m.Unlock()
	assert.True(t, m.TryLock(), "TryLock after Unlock should succeed")
}

func TestSpinMutex_UnlockWithoutLockIsNoop(t *testing.T) {
	var m SpinMutex
	assert.NotPanics(t, func() { m.Unlock() })
	assert.True(t, m.TryLock())
}
