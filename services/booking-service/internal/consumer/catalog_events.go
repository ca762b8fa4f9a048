package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/metrics"
)

// CatalogChange is published whenever a service, its hours or its blackouts
// change. An empty ServiceID means the whole catalog.
type CatalogChange struct {
	ServiceID string `json:"service_id"`
}

// Purger drops cached catalog entries.
type Purger interface {
	Purge(serviceID string) bool
	PurgeAll()
}

// CatalogInvalidation returns a handler that evicts changed services from cache.
func CatalogInvalidation(cache Purger, logger *slog.Logger) Handler {
	return func(ctx context.Context, msg kafka.Message) error {
		var change CatalogChange
		if len(msg.Value) > 0 {
			if err := json.Unmarshal(msg.Value, &change); err != nil {
				return fmt.Errorf("decode catalog change: %w", err)
			}
		}
		if change.ServiceID == "" {
			cache.PurgeAll()
			logger.InfoContext(ctx, "catalog cache purged")
		} else if cache.Purge(change.ServiceID) {
			logger.InfoContext(ctx, "catalog cache entry purged", "service_id", change.ServiceID)
		}
		metrics.IncCacheInvalidation()
		return nil
	}
}
