package catalog

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/model"
)

// Cached keeps recently read services and business hours for ttl. Blackouts
// are always read through.
type Cached struct {
	next     Reader
	services *expirable.LRU[string, model.Service]
	hours    *expirable.LRU[string, model.BusinessHours]
}

func NewCached(next Reader, size int, ttl time.Duration) *Cached {
	if size <= 0 {
		size = 512
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cached{
		next:     next,
		services: expirable.NewLRU[string, model.Service](size, nil, ttl),
		hours:    expirable.NewLRU[string, model.BusinessHours](size, nil, ttl),
	}
}

func (c *Cached) GetService(ctx context.Context, serviceID string) (model.Service, error) {
	if svc, ok := c.services.Get(serviceID); ok {
		return svc, nil
	}
	svc, err := c.next.GetService(ctx, serviceID)
	if err != nil {
		return model.Service{}, err
	}
	c.services.Add(serviceID, svc)
	return svc, nil
}

func (c *Cached) GetBusinessHours(ctx context.Context, serviceID string) (model.BusinessHours, error) {
	if h, ok := c.hours.Get(serviceID); ok {
		return h, nil
	}
	h, err := c.next.GetBusinessHours(ctx, serviceID)
	if err != nil {
		return model.BusinessHours{}, err
	}
	c.hours.Add(serviceID, h)
	return h, nil
}

func (c *Cached) ListBlackouts(ctx context.Context, serviceID string, from, to time.Time) ([]model.Blackout, error) {
	return c.next.ListBlackouts(ctx, serviceID, from, to)
}

// Purge drops one service's cached entries and reports whether any existed.
func (c *Cached) Purge(serviceID string) bool {
	a := c.services.Remove(serviceID)
	b := c.hours.Remove(serviceID)
	return a || b
}

func (c *Cached) PurgeAll() {
	c.services.Purge()
	c.hours.Purge()
}
