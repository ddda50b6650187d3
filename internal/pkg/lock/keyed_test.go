package lock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLockSerializesPerKey(t *testing.T) {
	k := NewKeyed()

	var counter int
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.Lock("apt-1")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestTryLockSkipsWhenHeld(t *testing.T) {
	k := NewKeyed()

	unlock, ok := k.TryLock("apt-1/airbnb")
	require.True(t, ok)

	_, ok = k.TryLock("apt-1/airbnb")
	assert.False(t, ok)

	// A different key is independent.
	other, ok := k.TryLock("apt-1/avito")
	require.True(t, ok)
	other()

	unlock()

	unlock2, ok := k.TryLock("apt-1/airbnb")
	assert.True(t, ok)
	unlock2()
}
