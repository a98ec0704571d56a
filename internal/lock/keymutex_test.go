package lock

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockSerializesSameKey(t *testing.T) {
	km := New()
	const workers = 16
	const iterations = 200

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				km.Lock("worker:W1")
				counter++
				km.Unlock("worker:W1")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, workers*iterations, counter)
}

func TestDifferentKeysDoNotBlock(t *testing.T) {
	km := New()
	km.Lock("worker:W1")
	defer km.Unlock("worker:W1")

	done := make(chan struct{})
	go func() {
		km.Lock("worker:W2")
		km.Unlock("worker:W2")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("lock on unrelated key blocked")
	}
}

func TestEntriesAreDroppedWhenUnused(t *testing.T) {
	km := New()
	km.LockAll("complaint:C1", "worker:W1")
	km.UnlockAll("complaint:C1", "worker:W1")

	km.mu.Lock()
	defer km.mu.Unlock()
	require.Empty(t, km.locks)
}
