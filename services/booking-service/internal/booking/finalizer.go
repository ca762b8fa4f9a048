package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/clock"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/holds"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/metrics"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/model"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/outbox"
)

type Finalizer struct {
	store  Store
	clock  clock.Clock
	logger *slog.Logger
	policy model.ScopePolicy
	locker holds.Locker
	tracer trace.Tracer
}

type Option func(*Finalizer)

func WithScopePolicy(p model.ScopePolicy) Option {
	return func(f *Finalizer) {
		if p != "" {
			f.policy = p
		}
	}
}

func WithLocker(l holds.Locker) Option {
	return func(f *Finalizer) { f.locker = l }
}

func NewFinalizer(store Store, clk clock.Clock, logger *slog.Logger, opts ...Option) *Finalizer {
	f := &Finalizer{
		store:  store,
		clock:  clk,
		logger: logger,
		policy: model.ScopeServiceWide,
		tracer: otel.Tracer("booking-service/booking"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type FinalizeInput struct {
	HoldID     string
	CustomerID string
	Customer   model.Customer
	// PriceCents is the price charged, snapshotted onto the appointment.
	PriceCents  int64
	AutoConfirm bool
}

func (in FinalizeInput) validate() error {
	var problems []string
	if strings.TrimSpace(in.HoldID) == "" {
		problems = append(problems, "hold_id is required")
	}
	if strings.TrimSpace(in.CustomerID) == "" {
		problems = append(problems, "customer_id is required")
	}
	if in.PriceCents < 0 {
		problems = append(problems, "price must not be negative")
	}
	if len(problems) > 0 {
		return &model.Error{Code: model.CodeInvalidArgument, Message: strings.Join(problems, "; ")}
	}
	return nil
}

// FinalizeFromHold converts an active, unexpired hold into an appointment in
// one transaction. A lapsed hold is recorded as expired and the call fails
// with model.ErrHoldExpired. Finalizing an already finalized hold again for
// the same customer returns the existing appointment.
func (f *Finalizer) FinalizeFromHold(ctx context.Context, in FinalizeInput) (appt model.Appointment, err error) {
	ctx, span := f.tracer.Start(ctx, "booking.FinalizeFromHold", trace.WithAttributes(attribute.String("hold_id", in.HoldID)))
	defer func() { endSpan(span, err); metrics.ObserveHoldOp("finalize", outcome(err)) }()

	if err := in.validate(); err != nil {
		return model.Appointment{}, err
	}

	// The hold's scope is needed for the lease before the transaction starts.
	pre, err := f.store.GetHold(ctx, in.HoldID)
	if err != nil {
		return model.Appointment{}, err
	}
	keys := pre.Scope().LockKeys(f.policy)
	began := time.Now()

	var expired bool
	err = holds.Guard(ctx, f.locker, keys, func(ctx context.Context) error {
		return f.store.WithTx(ctx, func(ctx context.Context) error {
			expired = false
			if err := f.store.LockScope(ctx, keys); err != nil {
				return err
			}
			h, err := f.store.GetHold(ctx, in.HoldID)
			if err != nil {
				return err
			}
			now := f.clock.Now()

			switch {
			case h.Status == model.HoldFinalized:
				existing, err := f.store.GetAppointmentByHold(ctx, h.ID)
				if err != nil {
					return err
				}
				if existing.CustomerID != in.CustomerID {
					return model.ErrHoldInactive
				}
				appt = existing
				return nil
			case h.Status == model.HoldExpired:
				return model.ErrHoldExpired
			case h.Status != model.HoldActive:
				return model.ErrHoldInactive
			case h.Expired(now):
				// Commit the lazy rewrite; the caller still sees E_HOLD_EXPIRED.
				if err := f.store.SetHoldStatus(ctx, h.ID, model.HoldExpired, now); err != nil {
					return err
				}
				h.Status = model.HoldExpired
				expired = true
				return f.appendEvent(ctx, outbox.AggregateHold, h.ID, outbox.HoldExpired, holds.HoldPayload(h), now)
			}

			blockers, err := f.store.ListBlocking(ctx, holds.BlockingQuery{
				Scope: h.Scope(), Policy: f.policy, Start: h.Start, End: h.End(), Now: now,
				ExcludeHoldID: h.ID, SkipHolds: true,
			})
			if err != nil {
				return fmt.Errorf("list blocking: %w", err)
			}
			if len(blockers) > 0 {
				return &model.Error{Code: model.CodeOverlap, Message: fmt.Sprintf("hold %s overlaps appointment %s", h.ID, blockers[0].ID)}
			}

			status := model.AppointmentConfirmed
			if !in.AutoConfirm {
				status = model.AppointmentPending
			}
			appt = model.Appointment{
				ID:              uuid.NewString(),
				HoldID:          h.ID,
				ServiceID:       h.ServiceID,
				ResourceID:      h.ResourceID,
				CustomerID:      in.CustomerID,
				Customer:        in.Customer,
				Start:           h.Start,
				DurationMinutes: h.DurationMinutes,
				PriceCents:      in.PriceCents,
				Status:          status,
				CreatedAt:       now,
			}
			if err := f.store.SetHoldStatus(ctx, h.ID, model.HoldFinalized, now); err != nil {
				return err
			}
			if err := f.store.InsertAppointment(ctx, appt); err != nil {
				return err
			}
			return f.appendEvent(ctx, outbox.AggregateAppointment, appt.ID, outbox.AppointmentBooked, appointmentPayload(appt, ""), now)
		})
	})
	metrics.ObserveTx("finalize", began)
	if err != nil {
		return model.Appointment{}, err
	}
	if expired {
		return model.Appointment{}, model.ErrHoldExpired
	}
	f.logger.Info("appointment booked", "appointment_id", appt.ID, "hold_id", appt.HoldID, "status", appt.Status)
	return appt, nil
}

// CancelAppointment frees the appointment's interval. Cancelling twice is a no-op.
func (f *Finalizer) CancelAppointment(ctx context.Context, id, reason string) (err error) {
	ctx, span := f.tracer.Start(ctx, "booking.CancelAppointment", trace.WithAttributes(attribute.String("appointment_id", id)))
	defer func() { endSpan(span, err); metrics.ObserveHoldOp("cancel", outcome(err)) }()

	if strings.TrimSpace(id) == "" {
		return &model.Error{Code: model.CodeInvalidArgument, Message: "appointment_id is required"}
	}
	return f.store.WithTx(ctx, func(ctx context.Context) error {
		a, err := f.store.GetAppointment(ctx, id)
		if err != nil {
			return err
		}
		if a.Status == model.AppointmentCancelled {
			return nil
		}
		now := f.clock.Now()
		if err := f.store.CancelAppointment(ctx, id, reason, now); err != nil {
			return err
		}
		a.Status = model.AppointmentCancelled
		return f.appendEvent(ctx, outbox.AggregateAppointment, a.ID, outbox.AppointmentCancelled, appointmentPayload(a, reason), now)
	})
}

func (f *Finalizer) ListAppointments(ctx context.Context, from, to time.Time) ([]model.Appointment, error) {
	if !to.After(from) {
		return nil, &model.Error{Code: model.CodeInvalidArgument, Message: "empty time range"}
	}
	return f.store.ListAppointments(ctx, from, to)
}

func (f *Finalizer) appendEvent(ctx context.Context, aggregate, id, eventType string, payload any, at time.Time) error {
	ev, err := outbox.NewEvent(ctx, aggregate, id, eventType, payload, at)
	if err != nil {
		return err
	}
	return f.store.AppendEvent(ctx, ev)
}

func appointmentPayload(a model.Appointment, reason string) outbox.AppointmentPayload {
	return outbox.AppointmentPayload{
		AppointmentID:   a.ID,
		HoldID:          a.HoldID,
		ServiceID:       a.ServiceID,
		ResourceID:      a.ResourceID,
		CustomerID:      a.CustomerID,
		Start:           a.Start,
		DurationMinutes: a.DurationMinutes,
		PriceCents:      a.PriceCents,
		Status:          a.Status,
		Reason:          reason,
	}
}

func outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return string(model.CodeOf(err))
}

func endSpan(span trace.Span, err error) {
	var domainErr *model.Error
	switch {
	case err == nil:
	case errors.As(err, &domainErr):
		span.SetAttributes(attribute.String("error.code", string(domainErr.Code)))
	default:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
