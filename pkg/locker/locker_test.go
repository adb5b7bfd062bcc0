package locker

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLockerSerialises(t *testing.T) {
	l := NewLocal()
	ctx := context.Background()

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Acquire(ctx, "k")
			require.NoError(t, err)
			defer release()

			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
	assert.Empty(t, l.(*localLocker).entries, "entries are dropped once released")
}

func TestLocalLockerHonoursContext(t *testing.T) {
	l := NewLocal()
	release, err := l.Acquire(context.Background(), "k")
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = l.Acquire(ctx, "k")
	assert.ErrorIs(t, err, ErrNotAcquired)
}

func TestLocalLockerIndependentKeys(t *testing.T) {
	l := NewLocal()
	r1, err := l.Acquire(context.Background(), "a")
	require.NoError(t, err)
	defer r1()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	r2, err := l.Acquire(ctx, "b")
	require.NoError(t, err)
	r2()
}

func TestKeys(t *testing.T) {
	id := uuid.MustParse("7b0c1e2a-4b43-4c43-9f7c-2d8d7f0a1b11")
	assert.Equal(t, "facility-slots:"+id.String(), FacilitySlotsKey(id))
	assert.Equal(t, "booking:"+id.String()+":"+id.String()+":2024-03-06",
		BookingKey(id, id, time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)))
}
