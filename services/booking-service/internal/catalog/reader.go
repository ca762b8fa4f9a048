// Package catalog reads the services, business hours and blackouts that
// availability and holds are computed against.
package catalog

import (
	"context"
	"time"

	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/model"
)

// Reader is implemented by Static, the Postgres catalog repository and Cached.
type Reader interface {
	// GetService returns model.ErrServiceNotFound for unknown ids.
	GetService(ctx context.Context, serviceID string) (model.Service, error)
	GetBusinessHours(ctx context.Context, serviceID string) (model.BusinessHours, error)
	// ListBlackouts returns blackouts of the service overlapping [from, to).
	ListBlackouts(ctx context.Context, serviceID string, from, to time.Time) ([]model.Blackout, error)
}

// ActiveService is GetService that also rejects inactive services.
func ActiveService(ctx context.Context, r Reader, serviceID string) (model.Service, error) {
	svc, err := r.GetService(ctx, serviceID)
	if err != nil {
		return model.Service{}, err
	}
	if !svc.Active {
		return model.Service{}, model.ErrServiceInactive
	}
	return svc, nil
}
