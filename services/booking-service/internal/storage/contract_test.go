package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/holds"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/model"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/outbox"
)

var base = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func newHold(serviceID, resourceID string, start time.Time, minutes int, expires time.Time) model.Hold {
	return model.Hold{
		ID: uuid.NewString(), ServiceID: serviceID, ResourceID: resourceID, SessionID: "sess",
		Start: start, DurationMinutes: minutes, Status: model.HoldActive, CreatedAt: base, ExpiresAt: expires,
	}
}

func query(serviceID, resourceID string, start time.Time, minutes int, policy model.ScopePolicy) holds.BlockingQuery {
	return holds.BlockingQuery{
		Scope:  model.Scope{ServiceID: serviceID, ResourceID: resourceID},
		Policy: policy,
		Start:  start,
		End:    start.Add(time.Duration(minutes) * time.Minute),
		Now:    base,
	}
}

// runStoreContract exercises behaviour every Store must share.
func runStoreContract(t *testing.T, s Store) {
	ctx := context.Background()
	svc := "svc-" + uuid.NewString()[:8]
	res := "res-" + uuid.NewString()[:8]

	t.Run("rollback discards writes", func(t *testing.T) {
		h := newHold(svc, "", base.Add(10*time.Hour), 30, base.Add(time.Hour))
		boom := errors.New("boom")
		err := s.WithTx(ctx, func(ctx context.Context) error {
			require.NoError(t, s.InsertHold(ctx, h))
			return boom
		})
		require.ErrorIs(t, err, boom)
		_, err = s.GetHold(ctx, h.ID)
		assert.ErrorIs(t, err, model.ErrHoldNotFound)
	})

	t.Run("blocking respects liveness and scope", func(t *testing.T) {
		live := newHold(svc, res, base, 30, base.Add(5*time.Minute))
		lapsed := newHold(svc, res, base.Add(time.Hour), 30, base.Add(-time.Second))
		require.NoError(t, s.WithTx(ctx, func(ctx context.Context) error {
			if err := s.InsertHold(ctx, live); err != nil {
				return err
			}
			return s.InsertHold(ctx, lapsed)
		}))

		got, err := s.ListBlocking(ctx, query(svc, res, base.Add(15*time.Minute), 30, model.ScopeServiceWide))
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, live.ID, got[0].ID)
		assert.Equal(t, holds.BlockerHold, got[0].Kind)

		got, err = s.ListBlocking(ctx, query(svc, res, base.Add(time.Hour), 30, model.ScopeServiceWide))
		require.NoError(t, err)
		assert.Empty(t, got, "lapsed holds never block")

		got, err = s.ListBlocking(ctx, query(svc, "", base, 30, model.ScopeServiceWide))
		require.NoError(t, err)
		assert.Len(t, got, 1, "unassigned request competes with every resource of the service")

		got, err = s.ListBlocking(ctx, query(svc, "", base, 30, model.ScopeResourceOnly))
		require.NoError(t, err)
		assert.Empty(t, got)

		got, err = s.ListBlocking(ctx, query(svc, "other-"+res, base, 30, model.ScopeServiceWide))
		require.NoError(t, err)
		assert.Empty(t, got)

		q := query(svc, res, base, 30, model.ScopeServiceWide)
		q.ExcludeHoldID = live.ID
		got, err = s.ListBlocking(ctx, q)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("appointments block until cancelled", func(t *testing.T) {
		h := newHold(svc, res, base.Add(3*time.Hour), 60, base.Add(time.Minute))
		a := model.Appointment{
			ID: uuid.NewString(), HoldID: h.ID, ServiceID: svc, ResourceID: res, CustomerID: "cust-1",
			Start: h.Start, DurationMinutes: 60, PriceCents: 1500, Status: model.AppointmentConfirmed, CreatedAt: base,
		}
		require.NoError(t, s.WithTx(ctx, func(ctx context.Context) error {
			if err := s.InsertHold(ctx, h); err != nil {
				return err
			}
			if err := s.SetHoldStatus(ctx, h.ID, model.HoldFinalized, base); err != nil {
				return err
			}
			return s.InsertAppointment(ctx, a)
		}))

		q := query(svc, res, base.Add(3*time.Hour+30*time.Minute), 15, model.ScopeServiceWide)
		q.SkipHolds = true
		got, err := s.ListBlocking(ctx, q)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, holds.BlockerAppointment, got[0].Kind)

		byHold, err := s.GetAppointmentByHold(ctx, h.ID)
		require.NoError(t, err)
		assert.Equal(t, a.ID, byHold.ID)
		assert.Equal(t, int64(1500), byHold.PriceCents)

		require.NoError(t, s.CancelAppointment(ctx, a.ID, "customer request", base))
		got, err = s.ListBlocking(ctx, q)
		require.NoError(t, err)
		assert.Empty(t, got)

		listed, err := s.ListAppointments(ctx, base.Add(3*time.Hour), base.Add(4*time.Hour))
		require.NoError(t, err)
		var found bool
		for _, l := range listed {
			if l.ID == a.ID {
				found = true
				assert.Equal(t, model.AppointmentCancelled, l.Status)
				assert.Equal(t, "customer request", l.CancelReason)
			}
		}
		assert.True(t, found)

		_, err = s.GetAppointment(ctx, uuid.NewString())
		assert.ErrorIs(t, err, model.ErrAppointmentNotFound)
	})

	t.Run("expire holds", func(t *testing.T) {
		h := newHold(svc, "", base.Add(20*time.Hour), 30, base.Add(-time.Minute))
		require.NoError(t, s.InsertHold(ctx, h))

		var expired []model.Hold
		require.NoError(t, s.WithTx(ctx, func(ctx context.Context) error {
			var err error
			expired, err = s.ExpireHolds(ctx, base, 1000)
			return err
		}))
		var ids []string
		for _, e := range expired {
			ids = append(ids, e.ID)
			assert.Equal(t, model.HoldExpired, e.Status)
		}
		assert.Contains(t, ids, h.ID)

		got, err := s.GetHold(ctx, h.ID)
		require.NoError(t, err)
		assert.Equal(t, model.HoldExpired, got.Status)
		assert.NotNil(t, got.ClosedAt)
	})

	t.Run("outbox", func(t *testing.T) {
		ev, err := outbox.NewEvent(ctx, outbox.AggregateHold, "h", outbox.HoldCreated, map[string]string{"k": "v"}, base)
		require.NoError(t, err)
		require.NoError(t, s.AppendEvent(ctx, ev))

		require.NoError(t, s.WithTx(ctx, func(ctx context.Context) error {
			recs, err := s.FetchUnpublished(ctx, 1000)
			if err != nil {
				return err
			}
			var seqs []int64
			found := false
			for _, r := range recs {
				seqs = append(seqs, r.Seq)
				found = found || r.ID == ev.ID
			}
			assert.True(t, found)
			return s.MarkPublished(ctx, seqs)
		}))

		recs, err := s.FetchUnpublished(ctx, 1000)
		require.NoError(t, err)
		for _, r := range recs {
			assert.NotEqual(t, ev.ID, r.ID)
		}
	})

	t.Run("unknown hold", func(t *testing.T) {
		_, err := s.GetHold(ctx, uuid.NewString())
		assert.ErrorIs(t, err, model.ErrHoldNotFound)
		_, err = s.GetHold(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, model.ErrHoldNotFound)
	})
}

