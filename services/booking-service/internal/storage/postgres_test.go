package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/md-rashed-zaman/slothold/libs/db"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/catalog"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/model"
	"github.com/md-rashed-zaman/slothold/services/booking-service/migrations"
)

// newTestPool connects to SLOTHOLD_TEST_DATABASE_URL and applies migrations,
// or skips the test when it is unset.
func newTestPool(t *testing.T) *db.Pool {
	t.Helper()
	url := os.Getenv("SLOTHOLD_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("SLOTHOLD_TEST_DATABASE_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.Open(ctx, url)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, migrations.Apply(ctx, pool))
	return pool
}

func TestBookingRepositoryContract(t *testing.T) {
	pool := newTestPool(t)
	runStoreContract(t, NewBookingRepository(pool, db.TxOptions{}))
}

func TestBookingRepository_ExclusionBackstop(t *testing.T) {
	pool := newTestPool(t)
	repo := NewBookingRepository(pool, db.TxOptions{})
	ctx := context.Background()

	chair := "chair-" + uuid.NewString()[:8]
	first := newHold("svc-ex", chair, base.Add(48*time.Hour), 30, base.Add(time.Hour))
	second := newHold("svc-ex", chair, base.Add(48*time.Hour+15*time.Minute), 30, base.Add(time.Hour))
	require.NoError(t, repo.InsertHold(ctx, first))
	require.NoError(t, repo.InsertHold(ctx, second))

	mk := func(h model.Hold) model.Appointment {
		return model.Appointment{
			ID: h.ID, HoldID: h.ID, ServiceID: h.ServiceID, ResourceID: h.ResourceID, CustomerID: "c",
			Start: h.Start, DurationMinutes: h.DurationMinutes, Status: model.AppointmentConfirmed, CreatedAt: base,
		}
	}
	require.NoError(t, repo.InsertAppointment(ctx, mk(first)))
	err := repo.InsertAppointment(ctx, mk(second))
	assert.ErrorIs(t, err, model.ErrOverlap)
}

func TestCatalogRepository_Seed(t *testing.T) {
	pool := newTestPool(t)
	repo := NewCatalogRepository(pool)
	ctx := context.Background()

	static, err := catalog.Parse([]byte(`
services:
  - id: seed-cut
    name: Cut
    duration_minutes: 30
    price_cents: 1200
    active: true
    hours:
      timezone: Europe/Berlin
      weekly:
        monday: [{start: "09:00", end: "12:00"}]
    blackouts:
      - {start: 2026-12-24T00:00:00Z, end: 2026-12-25T00:00:00Z, reason: closed}
`))
	require.NoError(t, err)
	require.NoError(t, repo.Seed(ctx, static.Services()))
	require.NoError(t, repo.Seed(ctx, static.Services()))

	svc, err := repo.GetService(ctx, "seed-cut")
	require.NoError(t, err)
	assert.Equal(t, int64(1200), svc.PriceCents)

	hours, err := repo.GetBusinessHours(ctx, "seed-cut")
	require.NoError(t, err)
	assert.Equal(t, []model.Window{{Start: "09:00", End: "12:00"}}, hours.Weekly[time.Monday])

	bos, err := repo.ListBlackouts(ctx, "seed-cut", time.Date(2026, 12, 24, 10, 0, 0, 0, time.UTC), time.Date(2026, 12, 24, 11, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Len(t, bos, 1)

	_, err = repo.GetService(ctx, "nope")
	assert.ErrorIs(t, err, model.ErrServiceNotFound)
}
