package booking

import (
	"context"
	"time"

	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/holds"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/model"
)

// Store adds appointments to the hold store; both live in one transaction domain.
type Store interface {
	holds.Store
	// InsertAppointment returns model.ErrOverlap when the store itself detects
	// a conflicting appointment.
	InsertAppointment(ctx context.Context, a model.Appointment) error
	// GetAppointment returns model.ErrAppointmentNotFound for unknown ids.
	GetAppointment(ctx context.Context, id string) (model.Appointment, error)
	GetAppointmentByHold(ctx context.Context, holdID string) (model.Appointment, error)
	CancelAppointment(ctx context.Context, id, reason string, at time.Time) error
	// ListAppointments returns appointments starting in [from, to), ordered by start.
	ListAppointments(ctx context.Context, from, to time.Time) ([]model.Appointment, error)
}
