package lock

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisLocker(t *testing.T) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	l := NewRedisLocker(client)
	l.pollInterval = 5 * time.Millisecond
	return l, mr
}

func lockers(t *testing.T) map[string]Locker {
	redisLocker, _ := newRedisLocker(t)
	return map[string]Locker{
		"local": NewLocalLocker(),
		"redis": redisLocker,
	}
}

func TestMutualExclusion(t *testing.T) {
	for name, l := range lockers(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			var inside, maxInside int32
			var wg sync.WaitGroup

			for i := 0; i < 10; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					release, err := l.Acquire(ctx, "idgen:hotel", time.Second)
					if !assert.NoError(t, err) {
						return
					}
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
			assert.EqualValues(t, 1, maxInside)
		})
	}
}

func TestAcquireHonoursContext(t *testing.T) {
	for name, l := range lockers(t) {
		t.Run(name, func(t *testing.T) {
			release, err := l.Acquire(context.Background(), "k", time.Minute)
			require.NoError(t, err)
			defer release()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
			defer cancel()
			_, err = l.Acquire(ctx, "k", time.Minute)
			assert.ErrorIs(t, err, ErrNotAcquired)
		})
	}
}

func TestKeysAreIndependent(t *testing.T) {
	for name, l := range lockers(t) {
		t.Run(name, func(t *testing.T) {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()

			r1, err := l.Acquire(ctx, "idgen:user:1000000001:3", time.Minute)
			require.NoError(t, err)
			defer r1()
			r2, err := l.Acquire(ctx, "idgen:user:1000000001:4", time.Minute)
			require.NoError(t, err)
			r2()
			r2() // idempotent
		})
	}
}

func TestRedisReleaseKeepsForeignToken(t *testing.T) {
	l, mr := newRedisLocker(t)
	ctx := context.Background()

	release, err := l.Acquire(ctx, "k", time.Second)
	require.NoError(t, err)

	// our lease expired and another holder took the key
	mr.FastForward(2 * time.Second)
	require.NoError(t, mr.Set(keyPrefix+"k", "someone-else"))

	release()
	got, err := mr.Get(keyPrefix + "k")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}

func TestRedisLockExpires(t *testing.T) {
	l, mr := newRedisLocker(t)
	ctx := context.Background()

	_, err := l.Acquire(ctx, "k", time.Second)
	require.NoError(t, err)
	assert.True(t, mr.Exists(keyPrefix+"k"))

	mr.FastForward(1500 * time.Millisecond)
	release, err := l.Acquire(ctx, "k", time.Second)
	require.NoError(t, err)
	release()
	assert.False(t, mr.Exists(keyPrefix+"k"))
}

func TestLocalLockerDropsIdleSlots(t *testing.T) {
	l := NewLocalLocker()
	release, err := l.Acquire(context.Background(), "k", 0)
	require.NoError(t, err)
	release()

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.Empty(t, l.slots)
}
