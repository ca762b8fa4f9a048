// Package lease guards hold scopes across booking-service replicas.
package lease

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrBusy = errors.New("lease: scope is busy")

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

// Redis is a best-effort per-key lease built on SET NX PX. The store
// transaction remains the source of truth; the lease only keeps contending
// replicas from piling onto the same scope.
type Redis struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
	wait   time.Duration
	retry  time.Duration
}

type RedisConfig struct {
	Prefix string
	// TTL bounds how long a crashed holder blocks the scope.
	TTL time.Duration
	// Wait is how long Lock keeps retrying before returning ErrBusy.
	Wait time.Duration
}

func NewRedis(client redis.Cmdable, cfg RedisConfig) *Redis {
	if cfg.Prefix == "" {
		cfg.Prefix = "slothold:lease"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Second
	}
	if cfg.Wait <= 0 {
		cfg.Wait = 2 * time.Second
	}
	return &Redis{client: client, prefix: cfg.Prefix, ttl: cfg.TTL, wait: cfg.Wait, retry: 20 * time.Millisecond}
}

// Lock acquires every key in order, releasing what it holds if any key
// cannot be taken within the wait budget.
func (l *Redis) Lock(ctx context.Context, keys []string) (func(), error) {
	token := uuid.NewString()
	ctx, cancel := context.WithTimeout(ctx, l.wait)
	defer cancel()

	var held []string
	release := func() {
		// Release must outlive a cancelled request context.
		rctx, rcancel := context.WithTimeout(context.Background(), time.Second)
		defer rcancel()
		for _, k := range held {
			_ = releaseScript.Run(rctx, l.client, []string{k}, token).Err()
		}
	}

	for _, key := range keys {
		k := l.prefix + ":" + key
		if err := l.acquire(ctx, k, token); err != nil {
			release()
			return nil, err
		}
		held = append(held, k)
	}
	return release, nil
}

func (l *Redis) acquire(ctx context.Context, key, token string) error {
	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return ErrBusy
			}
			return fmt.Errorf("lease %s: %w", key, err)
		}
		if ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return ErrBusy
		case <-time.After(l.retry):
		}
	}
}
