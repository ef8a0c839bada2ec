package slotlock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_MutualExclusion(t *testing.T) {
	locker := NewMemory()
	key := Key("2024-06-01", "14:00")

	var inside, maxInside int32
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := locker.Acquire(context.Background(), key)
			if !assert.NoError(t, err) {
				return
			}
			defer release()

			n := atomic.AddInt32(&inside, 1)
			for {
				cur := atomic.LoadInt32(&maxInside)
				if n <= cur || atomic.CompareAndSwapInt32(&maxInside, cur, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
	assert.Equal(t, 0, locker.Len())
}

func TestMemory_Timeout(t *testing.T) {
	locker := NewMemory()
	key := Key("2024-06-01", "10:00")

	release, err := locker.Acquire(context.Background(), key)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = locker.Acquire(ctx, key)
	assert.ErrorIs(t, err, ErrLockTimeout)

	release()
	release() // повторный вызов не должен блокироваться
	assert.Equal(t, 0, locker.Len())
}

func TestMemory_IndependentKeys(t *testing.T) {
	locker := NewMemory()

	r1, err := locker.Acquire(context.Background(), Key("2024-06-01", "10:00"))
	require.NoError(t, err)
	defer r1()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	r2, err := locker.Acquire(ctx, Key("2024-06-01", "10:30"))
	require.NoError(t, err)
	r2()
}
