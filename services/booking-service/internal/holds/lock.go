package holds

import (
	"context"
	"fmt"
)

// Locker guards scope keys across processes before a store transaction starts.
type Locker interface {
	Lock(ctx context.Context, keys []string) (unlock func(), err error)
}

// Guard runs fn while holding keys on locker. A nil locker runs fn directly.
func Guard(ctx context.Context, locker Locker, keys []string, fn func(ctx context.Context) error) error {
	if locker == nil {
		return fn(ctx)
	}
	unlock, err := locker.Lock(ctx, keys)
	if err != nil {
		return fmt.Errorf("acquire scope lease: %w", err)
	}
	defer unlock()
	return fn(ctx)
}
