package outbox

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	otelx "github.com/md-rashed-zaman/slothold/libs/otel"
)

const (
	AggregateHold        = "hold"
	AggregateAppointment = "appointment"

	HoldCreated          = "booking.hold.created.v1"
	HoldReleased         = "booking.hold.released.v1"
	HoldExpired          = "booking.hold.expired.v1"
	AppointmentBooked    = "booking.appointment.booked.v1"
	AppointmentCancelled = "booking.appointment.cancelled.v1"
)

// Event is the domain event envelope written to the outbox in the same
// transaction as the state change it describes.
type Event struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	OccurredAt    time.Time
	Traceparent   string
	Tracestate    string
}

// Record is an Event as stored, with its position in the outbox.
type Record struct {
	Seq int64
	Event
}

// NewEvent marshals payload as JSON and captures the trace context of ctx.
func NewEvent(ctx context.Context, aggregateType, aggregateID, eventType string, payload any, at time.Time) (Event, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	tp, ts := otelx.TraceContextStrings(ctx)
	return Event{
		ID:            uuid.NewString(),
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Payload:       b,
		OccurredAt:    at,
		Traceparent:   tp,
		Tracestate:    ts,
	}, nil
}

// HoldPayload is the body of hold events.
type HoldPayload struct {
	HoldID          string    `json:"hold_id"`
	ServiceID       string    `json:"service_id"`
	ResourceID      string    `json:"resource_id,omitempty"`
	SessionID       string    `json:"session_id,omitempty"`
	Start           time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	ExpiresAt       time.Time `json:"expires_at"`
}

// AppointmentPayload is the body of appointment events.
type AppointmentPayload struct {
	AppointmentID   string    `json:"appointment_id"`
	HoldID          string    `json:"hold_id,omitempty"`
	ServiceID       string    `json:"service_id"`
	ResourceID      string    `json:"resource_id,omitempty"`
	CustomerID      string    `json:"customer_id"`
	Start           time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	PriceCents      int64     `json:"price_cents"`
	Status          string    `json:"status"`
	Reason          string    `json:"reason,omitempty"`
}
