package lease

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

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return s, client
}

func TestRedis_ExclusiveUntilReleased(t *testing.T) {
	s, client := newRedis(t)
	l := NewRedis(client, RedisConfig{Wait: 100 * time.Millisecond})
	ctx := context.Background()

	unlock, err := l.Lock(ctx, []string{"res:alice", "svc:cut"})
	require.NoError(t, err)
	assert.True(t, s.Exists("slothold:lease:svc:cut"))

	_, err = l.Lock(ctx, []string{"svc:cut"})
	assert.ErrorIs(t, err, ErrBusy)

	unlock()
	assert.False(t, s.Exists("slothold:lease:svc:cut"))

	unlock2, err := l.Lock(ctx, []string{"svc:cut"})
	require.NoError(t, err)
	unlock2()
}

func TestRedis_PartialAcquireIsRolledBack(t *testing.T) {
	s, client := newRedis(t)
	l := NewRedis(client, RedisConfig{Wait: 50 * time.Millisecond})
	ctx := context.Background()

	unlock, err := l.Lock(ctx, []string{"svc:cut"})
	require.NoError(t, err)
	defer unlock()

	_, err = l.Lock(ctx, []string{"res:alice", "svc:cut"})
	require.ErrorIs(t, err, ErrBusy)
	assert.False(t, s.Exists("slothold:lease:res:alice"))
}

func TestRedis_ReleaseOnlyOwnToken(t *testing.T) {
	s, client := newRedis(t)
	l := NewRedis(client, RedisConfig{TTL: time.Second, Wait: 50 * time.Millisecond})
	ctx := context.Background()

	unlock, err := l.Lock(ctx, []string{"k"})
	require.NoError(t, err)

	// The lease lapses and another holder takes it.
	s.FastForward(2 * time.Second)
	unlock2, err := l.Lock(ctx, []string{"k"})
	require.NoError(t, err)

	unlock()
	assert.True(t, s.Exists("slothold:lease:k"), "stale unlock must not free another holder's lease")
	unlock2()
	assert.False(t, s.Exists("slothold:lease:k"))
}

func TestLocal_SerializesSharedKeys(t *testing.T) {
	l := NewLocal()
	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			keys := []string{"svc:cut"}
			if i%2 == 0 {
				keys = []string{"res:alice", "svc:cut"}
			}
			unlock, err := l.Lock(context.Background(), keys)
			if !assert.NoError(t, err) {
				return
			}
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			unlock()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxInside)
	assert.Empty(t, l.locks)
}

func TestLocal_ContextCancel(t *testing.T) {
	l := NewLocal()
	unlock, err := l.Lock(context.Background(), []string{"k"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, []string{"k"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	unlock2, err := l.Lock(context.Background(), []string{"k"})
	require.NoError(t, err)
	unlock2()
}
