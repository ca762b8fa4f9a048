package booking_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/booking"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/catalog"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/clock"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/holds"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/model"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/outbox"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/storage"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/tzclock"
)

const catalogYAML = `
services:
  - id: cut
    name: Haircut
    duration_minutes: 30
    price_cents: 2500
    active: true
    hours:
      timezone: UTC
      slot_interval_minutes: 15
      weekly:
        monday:
          - {start: "09:00", end: "12:00"}
    blackouts:
      - resource_id: bob
        start: 2026-03-02T11:00:00Z
        end: 2026-03-02T12:00:00Z
        reason: lunch
  - id: retired
    name: Retired
    duration_minutes: 30
    active: false
    hours:
      timezone: UTC
`

var (
	monday = tzclock.Date{Year: 2026, Month: time.March, Day: 2}
	now    = time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

type fixture struct {
	desk      *booking.Desk
	finalizer *booking.Finalizer
	manager   *holds.Manager
	store     *storage.MemoryStore
	clock     *clock.Manual
}

func newFixture(t *testing.T, policy model.ScopePolicy) fixture {
	t.Helper()
	cat, err := catalog.Parse([]byte(catalogYAML))
	require.NoError(t, err)
	store := storage.NewMemoryStore()
	clk := clock.NewManual(now)
	manager := holds.NewManager(store, clk, logger, holds.WithScopePolicy(policy))
	finalizer := booking.NewFinalizer(store, clk, logger, booking.WithScopePolicy(policy))
	return fixture{
		desk:      booking.NewDesk(cat, store, manager, finalizer, clk),
		finalizer: finalizer,
		manager:   manager,
		store:     store,
		clock:     clk,
	}
}

func (f fixture) hold(t *testing.T, start time.Time, session string) model.Hold {
	t.Helper()
	h, err := f.desk.PlaceHold(context.Background(), holds.CreateHoldInput{ServiceID: "cut", Start: start, SessionID: session})
	require.NoError(t, err)
	return h
}

func starts(slots []booking.Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Start.Format("15:04")
	}
	return out
}

func TestFinalizeFromHold(t *testing.T) {
	f := newFixture(t, model.ScopeServiceWide)
	ctx := context.Background()
	h := f.hold(t, at(10, 0), "s1")

	appt, err := f.finalizer.FinalizeFromHold(ctx, booking.FinalizeInput{
		HoldID: h.ID, CustomerID: "c1", Customer: model.Customer{Name: "Ada"}, PriceCents: 1999, AutoConfirm: true,
	})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentConfirmed, appt.Status)
	assert.Equal(t, h.ID, appt.HoldID)
	assert.Equal(t, at(10, 0), appt.Start)
	assert.Equal(t, 30, appt.DurationMinutes)
	assert.EqualValues(t, 1999, appt.PriceCents)

	got, err := f.manager.GetHold(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, model.HoldFinalized, got.Status)

	// Retrying for the same customer is idempotent; another customer is refused.
	again, err := f.finalizer.FinalizeFromHold(ctx, booking.FinalizeInput{HoldID: h.ID, CustomerID: "c1", AutoConfirm: true})
	require.NoError(t, err)
	assert.Equal(t, appt.ID, again.ID)
	_, err = f.finalizer.FinalizeFromHold(ctx, booking.FinalizeInput{HoldID: h.ID, CustomerID: "c2"})
	assert.ErrorIs(t, err, model.ErrHoldInactive)

	recs, err := f.store.FetchUnpublished(ctx, 10)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, outbox.AppointmentBooked, recs[1].EventType)
}

func TestFinalizeFromHold_Pending(t *testing.T) {
	f := newFixture(t, model.ScopeServiceWide)
	h := f.hold(t, at(9, 0), "s1")
	appt, err := f.finalizer.FinalizeFromHold(context.Background(), booking.FinalizeInput{HoldID: h.ID, CustomerID: "c1"})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentPending, appt.Status)
	assert.True(t, appt.Blocking())
}

func TestFinalizeFromHold_Expired(t *testing.T) {
	f := newFixture(t, model.ScopeServiceWide)
	ctx := context.Background()
	h := f.hold(t, at(10, 0), "s1")
	f.clock.Set(h.ExpiresAt.Add(time.Second))

	_, err := f.finalizer.FinalizeFromHold(ctx, booking.FinalizeInput{HoldID: h.ID, CustomerID: "c1", AutoConfirm: true})
	require.ErrorIs(t, err, model.ErrHoldExpired)
	assert.Equal(t, model.CodeHoldExpired, model.CodeOf(err))

	stored, err := f.store.GetHold(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, model.HoldExpired, stored.Status, "the expiry is committed")

	appts, err := f.finalizer.ListAppointments(ctx, at(0, 0), at(23, 0))
	require.NoError(t, err)
	assert.Empty(t, appts)

	_, err = f.finalizer.FinalizeFromHold(ctx, booking.FinalizeInput{HoldID: h.ID, CustomerID: "c1"})
	assert.ErrorIs(t, err, model.ErrHoldExpired)
}

func TestFinalizeFromHold_Errors(t *testing.T) {
	f := newFixture(t, model.ScopeServiceWide)
	ctx := context.Background()

	_, err := f.finalizer.FinalizeFromHold(ctx, booking.FinalizeInput{HoldID: "nope", CustomerID: "c1"})
	assert.ErrorIs(t, err, model.ErrHoldNotFound)

	_, err = f.finalizer.FinalizeFromHold(ctx, booking.FinalizeInput{HoldID: "x"})
	assert.ErrorIs(t, err, model.ErrInvalidArgument)

	h := f.hold(t, at(10, 0), "s1")
	require.NoError(t, f.manager.ReleaseHold(ctx, h.ID))
	_, err = f.finalizer.FinalizeFromHold(ctx, booking.FinalizeInput{HoldID: h.ID, CustomerID: "c1"})
	assert.ErrorIs(t, err, model.ErrHoldInactive)
}

func TestCancelAppointment(t *testing.T) {
	f := newFixture(t, model.ScopeServiceWide)
	ctx := context.Background()
	h := f.hold(t, at(10, 0), "s1")
	appt, err := f.desk.Finalize(ctx, booking.FinalizeRequest{HoldID: h.ID, CustomerID: "c1", AutoConfirm: true})
	require.NoError(t, err)

	_, err = f.desk.PlaceHold(ctx, holds.CreateHoldInput{ServiceID: "cut", Start: at(10, 0), SessionID: "s2"})
	require.ErrorIs(t, err, model.ErrOverlap)

	require.NoError(t, f.desk.CancelAppointment(ctx, appt.ID, "customer request"))
	require.NoError(t, f.desk.CancelAppointment(ctx, appt.ID, "again"))
	assert.ErrorIs(t, f.desk.CancelAppointment(ctx, "missing", ""), model.ErrAppointmentNotFound)

	stored, err := f.store.GetAppointment(ctx, appt.ID)
	require.NoError(t, err)
	assert.Equal(t, "customer request", stored.CancelReason)

	f.hold(t, at(10, 0), "s2")
}

func TestDesk_BookingRemovesOverlappingSlots(t *testing.T) {
	f := newFixture(t, model.ScopeServiceWide)
	ctx := context.Background()

	slots, err := f.desk.Slots(ctx, booking.SlotQuery{ServiceID: "cut", Date: monday})
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:15", "09:30", "09:45", "10:00", "10:15", "10:30", "10:45", "11:00", "11:15", "11:30"}, starts(slots))
	assert.Equal(t, at(9, 30), slots[0].End)

	h := f.hold(t, at(10, 0), "s1")
	slots, err = f.desk.Slots(ctx, booking.SlotQuery{ServiceID: "cut", Date: monday})
	require.NoError(t, err)
	held := []string{"09:00", "09:15", "09:30", "10:30", "10:45", "11:00", "11:15", "11:30"}
	assert.Equal(t, held, starts(slots), "a live hold is busy")

	appt, err := f.desk.Finalize(ctx, booking.FinalizeRequest{HoldID: h.ID, CustomerID: "c1", AutoConfirm: true})
	require.NoError(t, err)
	assert.EqualValues(t, 2500, appt.PriceCents, "price defaults to the catalog")

	slots, err = f.desk.Slots(ctx, booking.SlotQuery{ServiceID: "cut", Date: monday})
	require.NoError(t, err)
	assert.Equal(t, held, starts(slots))

	list, err := f.desk.AppointmentsOn(ctx, monday, "UTC")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, appt.ID, list[0].ID)
}

func TestDesk_HoldExpiryFreesSlots(t *testing.T) {
	f := newFixture(t, model.ScopeServiceWide)
	ctx := context.Background()
	h := f.hold(t, at(10, 0), "s1")

	f.clock.Set(h.ExpiresAt.Add(time.Second))
	slots, err := f.desk.Slots(ctx, booking.SlotQuery{ServiceID: "cut", Date: monday})
	require.NoError(t, err)
	assert.Len(t, slots, 11)
}

func TestDesk_SlotsHidePast(t *testing.T) {
	f := newFixture(t, model.ScopeServiceWide)
	f.clock.Set(at(10, 5))
	ctx := context.Background()

	slots, err := f.desk.Slots(ctx, booking.SlotQuery{ServiceID: "cut", Date: monday})
	require.NoError(t, err)
	assert.Equal(t, "10:15", starts(slots)[0])

	slots, err = f.desk.Slots(ctx, booking.SlotQuery{ServiceID: "cut", Date: monday, IncludePast: true})
	require.NoError(t, err)
	assert.Len(t, slots, 11)
}

func TestDesk_Blackouts(t *testing.T) {
	for _, policy := range []model.ScopePolicy{model.ScopeServiceWide, model.ScopeResourceOnly} {
		t.Run(string(policy), func(t *testing.T) {
			f := newFixture(t, policy)
			ctx := context.Background()

			bob, err := f.desk.Slots(ctx, booking.SlotQuery{ServiceID: "cut", ResourceID: "bob", Date: monday})
			require.NoError(t, err)
			assert.Equal(t, "10:30", starts(bob)[len(bob)-1])

			alice, err := f.desk.Slots(ctx, booking.SlotQuery{ServiceID: "cut", ResourceID: "alice", Date: monday})
			require.NoError(t, err)
			assert.Len(t, alice, 11)

			anyone, err := f.desk.Slots(ctx, booking.SlotQuery{ServiceID: "cut", Date: monday})
			require.NoError(t, err)
			assert.Len(t, anyone, 11, "a resource blackout leaves the unassigned service open")

			_, err = f.desk.PlaceHold(ctx, holds.CreateHoldInput{ServiceID: "cut", ResourceID: "bob", Start: at(11, 0), SessionID: "s1"})
			assert.ErrorIs(t, err, model.ErrOverlap)
			_, err = f.desk.PlaceHold(ctx, holds.CreateHoldInput{ServiceID: "cut", ResourceID: "alice", Start: at(11, 0), SessionID: "s2"})
			assert.NoError(t, err)
		})
	}
}

func TestDesk_OverflowingDurationCannotDoubleBook(t *testing.T) {
	f := newFixture(t, model.ScopeServiceWide)
	ctx := context.Background()

	_, err := f.desk.PlaceHold(ctx, holds.CreateHoldInput{ServiceID: "cut", Start: at(10, 0), DurationMinutes: 153722868, SessionID: "s1"})
	require.ErrorIs(t, err, model.ErrInvalidArgument)

	h := f.hold(t, at(10, 0), "s1")
	_, err = f.desk.Finalize(ctx, booking.FinalizeRequest{HoldID: h.ID, CustomerID: "c1", AutoConfirm: true})
	require.NoError(t, err)
	_, err = f.desk.PlaceHold(ctx, holds.CreateHoldInput{ServiceID: "cut", Start: at(10, 0), SessionID: "s2"})
	assert.ErrorIs(t, err, model.ErrOverlap)
}

func TestDesk_PlaceHoldChecks(t *testing.T) {
	f := newFixture(t, model.ScopeServiceWide)
	ctx := context.Background()

	cases := []struct {
		name string
		in   holds.CreateHoldInput
		want error
	}{
		{"before opening", holds.CreateHoldInput{ServiceID: "cut", Start: at(8, 45), SessionID: "s"}, model.ErrInvalidArgument},
		{"runs past closing", holds.CreateHoldInput{ServiceID: "cut", Start: at(11, 45), SessionID: "s"}, model.ErrInvalidArgument},
		{"closed day", holds.CreateHoldInput{ServiceID: "cut", Start: at(10, 0).AddDate(0, 0, 1), SessionID: "s"}, model.ErrInvalidArgument},
		{"overflowing duration", holds.CreateHoldInput{ServiceID: "cut", Start: at(10, 0), DurationMinutes: 153722868, SessionID: "s"}, model.ErrInvalidArgument},
		{"negative duration", holds.CreateHoldInput{ServiceID: "cut", Start: at(10, 0), DurationMinutes: -5, SessionID: "s"}, model.ErrInvalidArgument},
		{"unknown service", holds.CreateHoldInput{ServiceID: "nope", Start: at(10, 0), SessionID: "s"}, model.ErrServiceNotFound},
		{"inactive service", holds.CreateHoldInput{ServiceID: "retired", Start: at(10, 0), SessionID: "s"}, model.ErrServiceInactive},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.desk.PlaceHold(ctx, tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}

	h, err := f.desk.PlaceHold(ctx, holds.CreateHoldInput{ServiceID: "cut", Start: at(11, 0), DurationMinutes: 60, SessionID: "s"})
	require.NoError(t, err)
	assert.Equal(t, at(12, 0), h.End())
}
