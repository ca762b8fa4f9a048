package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/availability"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/catalog"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/clock"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/holds"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/metrics"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/model"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/tzclock"
)

// Desk is what the HTTP and gRPC transports call: it resolves the catalog
// around the hold manager and the finalizer.
type Desk struct {
	catalog   catalog.Reader
	store     Store
	holds     *holds.Manager
	finalizer *Finalizer
	clock     clock.Clock
}

func NewDesk(cat catalog.Reader, store Store, manager *holds.Manager, finalizer *Finalizer, clk clock.Clock) *Desk {
	return &Desk{catalog: cat, store: store, holds: manager, finalizer: finalizer, clock: clk}
}

type SlotQuery struct {
	ServiceID  string
	ResourceID string
	Date       tzclock.Date
	// IncludePast keeps slots that have already started.
	IncludePast bool
}

type Slot struct {
	Start time.Time
	End   time.Time
}

// Slots lists bookable slots for the service on the date in its business
// timezone. Live holds, non-cancelled appointments and blackouts are busy.
func (d *Desk) Slots(ctx context.Context, q SlotQuery) ([]Slot, error) {
	svc, err := catalog.ActiveService(ctx, d.catalog, q.ServiceID)
	if err != nil {
		return nil, err
	}
	hours, err := d.catalog.GetBusinessHours(ctx, svc.ID)
	if err != nil {
		return nil, err
	}
	from, to, err := tzclock.DayBounds(q.Date, hours.Timezone)
	if err != nil {
		return nil, err
	}
	now := d.clock.Now()
	scope := model.Scope{ServiceID: svc.ID, ResourceID: q.ResourceID}

	blockers, err := d.store.ListBlocking(ctx, holds.BlockingQuery{
		Scope: scope, Policy: d.holds.Policy(), Start: from, End: to, Now: now,
	})
	if err != nil {
		return nil, fmt.Errorf("list busy: %w", err)
	}
	busy := holds.Intervals(blockers)

	blackouts, err := d.catalog.ListBlackouts(ctx, svc.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list blackouts: %w", err)
	}
	for _, b := range blackouts {
		if b.Applies(scope) {
			busy = append(busy, availability.Interval{Start: b.Start, End: b.End})
		}
	}

	starts, err := availability.ComputeSlots(q.Date, svc.DurationMinutes, hours, busy)
	if err != nil {
		return nil, err
	}
	if !q.IncludePast {
		starts = availability.FilterFrom(starts, now)
	}
	metrics.ObserveSlots(len(starts))

	duration := time.Duration(svc.DurationMinutes) * time.Minute
	out := make([]Slot, len(starts))
	for i, s := range starts {
		out[i] = Slot{Start: s, End: s.Add(duration)}
	}
	return out, nil
}

// PlaceHold checks the request against the catalog and creates the hold. A
// zero DurationMinutes takes the service duration.
func (d *Desk) PlaceHold(ctx context.Context, in holds.CreateHoldInput) (model.Hold, error) {
	svc, err := catalog.ActiveService(ctx, d.catalog, in.ServiceID)
	if err != nil {
		return model.Hold{}, err
	}
	if in.DurationMinutes == 0 {
		in.DurationMinutes = svc.DurationMinutes
	}
	if in.DurationMinutes < 0 || in.DurationMinutes > holds.MaxHoldMinutes {
		return model.Hold{}, &model.Error{Code: model.CodeInvalidArgument, Message: "duration_minutes out of range"}
	}
	if !in.Start.IsZero() {
		if err := d.checkOpen(ctx, in); err != nil {
			return model.Hold{}, err
		}
	}
	return d.holds.CreateHold(ctx, in)
}

// checkOpen rejects holds outside business hours or inside a blackout.
func (d *Desk) checkOpen(ctx context.Context, in holds.CreateHoldInput) error {
	hours, err := d.catalog.GetBusinessHours(ctx, in.ServiceID)
	if err != nil {
		return err
	}
	loc, err := time.LoadLocation(hours.Timezone)
	if err != nil {
		return fmt.Errorf("%w: unknown timezone %q", model.ErrInvalidArgument, hours.Timezone)
	}
	want := availability.Interval{Start: in.Start, End: in.Start.Add(time.Duration(in.DurationMinutes) * time.Minute)}
	day := tzclock.DateOf(in.Start.In(loc))

	open := false
	for _, w := range hours.Weekly[day.Weekday()] {
		startMin, err := model.ParseClock(w.Start)
		if err != nil {
			return err
		}
		endMin, err := model.ParseClock(w.End)
		if err != nil {
			return err
		}
		ws, we := tzclock.At(day, startMin, loc), tzclock.At(day, endMin, loc)
		if !want.Start.Before(ws) && !want.End.After(we) {
			open = true
			break
		}
	}
	if !open {
		return &model.Error{Code: model.CodeInvalidArgument, Message: "requested interval is outside business hours"}
	}

	blackouts, err := d.catalog.ListBlackouts(ctx, in.ServiceID, want.Start, want.End)
	if err != nil {
		return fmt.Errorf("list blackouts: %w", err)
	}
	scope := model.Scope{ServiceID: in.ServiceID, ResourceID: in.ResourceID}
	for _, b := range blackouts {
		if b.Applies(scope) {
			return &model.Error{Code: model.CodeOverlap, Message: "requested interval is blacked out"}
		}
	}
	return nil
}

type FinalizeRequest struct {
	HoldID     string
	CustomerID string
	Customer   model.Customer
	// PriceCents defaults to the current service price when nil.
	PriceCents  *int64
	AutoConfirm bool
}

func (d *Desk) Finalize(ctx context.Context, req FinalizeRequest) (model.Appointment, error) {
	in := FinalizeInput{
		HoldID:      req.HoldID,
		CustomerID:  req.CustomerID,
		Customer:    req.Customer,
		AutoConfirm: req.AutoConfirm,
	}
	if req.PriceCents != nil {
		in.PriceCents = *req.PriceCents
	} else if req.HoldID != "" {
		h, err := d.store.GetHold(ctx, req.HoldID)
		if err != nil {
			return model.Appointment{}, err
		}
		svc, err := d.catalog.GetService(ctx, h.ServiceID)
		if err != nil {
			return model.Appointment{}, err
		}
		in.PriceCents = svc.PriceCents
	}
	return d.finalizer.FinalizeFromHold(ctx, in)
}

func (d *Desk) ReleaseHold(ctx context.Context, holdID string) error {
	return d.holds.ReleaseHold(ctx, holdID)
}

func (d *Desk) GetHold(ctx context.Context, holdID string) (model.Hold, error) {
	return d.holds.GetHold(ctx, holdID)
}

func (d *Desk) CancelAppointment(ctx context.Context, id, reason string) error {
	return d.finalizer.CancelAppointment(ctx, id, reason)
}

// AppointmentsOn lists appointments starting on date in tz.
func (d *Desk) AppointmentsOn(ctx context.Context, date tzclock.Date, tz string) ([]model.Appointment, error) {
	from, to, err := tzclock.DayBounds(date, tz)
	if err != nil {
		return nil, err
	}
	return d.finalizer.ListAppointments(ctx, from, to)
}
