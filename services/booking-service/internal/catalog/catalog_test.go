package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/model"
)

const sample = `
services:
  - id: haircut
    name: Haircut
    duration_minutes: 30
    price_cents: 2500
    active: true
    hours:
      timezone: Europe/Berlin
      slot_interval_minutes: 15
      weekly:
        monday:
          - {start: "09:00", end: "12:00"}
          - {start: "13:00", end: "17:00"}
        Saturday:
          - {start: "10:00", end: "14:00"}
    blackouts:
      - start: 2026-12-24T00:00:00Z
        end: 2026-12-27T00:00:00Z
        reason: holidays
  - id: colour
    name: Colour
    duration_minutes: 90
    active: false
    hours:
      timezone: UTC
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(sample))
	require.NoError(t, err)
	ctx := context.Background()

	svc, err := s.GetService(ctx, "haircut")
	require.NoError(t, err)
	assert.Equal(t, model.Service{ID: "haircut", Name: "Haircut", DurationMinutes: 30, PriceCents: 2500, Active: true}, svc)

	hours, err := s.GetBusinessHours(ctx, "haircut")
	require.NoError(t, err)
	assert.Equal(t, "Europe/Berlin", hours.Timezone)
	assert.Len(t, hours.Weekly[time.Monday], 2)
	assert.Len(t, hours.Weekly[time.Saturday], 1)

	bos, err := s.ListBlackouts(ctx, "haircut", time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC), time.Date(2026, 12, 26, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, bos, 1)
	assert.Equal(t, "holidays", bos[0].Reason)

	_, err = s.GetService(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrServiceNotFound)

	_, err = ActiveService(ctx, s, "colour")
	assert.ErrorIs(t, err, model.ErrServiceInactive)
	assert.Len(t, s.Services(), 2)
}

func TestParse_Rejects(t *testing.T) {
	cases := map[string]string{
		"bad weekday":  "services: [{id: a, duration_minutes: 30, hours: {timezone: UTC, weekly: {funday: []}}}]",
		"bad timezone": "services: [{id: a, duration_minutes: 30, hours: {timezone: Mars/Base}}]",
		"no duration":  "services: [{id: a, hours: {timezone: UTC}}]",
		"duplicate":    "services: [{id: a, duration_minutes: 5, hours: {timezone: UTC}}, {id: a, duration_minutes: 5, hours: {timezone: UTC}}]",
		"overlap": `services: [{id: a, duration_minutes: 5, hours: {timezone: UTC, weekly: {monday: [{start: "09:00", end: "11:00"}, {start: "10:00", end: "12:00"}]}}}]`,
	}
	for name, doc := range cases {
		_, err := Parse([]byte(doc))
		assert.Error(t, err, name)
	}
}

type countingReader struct {
	Reader
	serviceCalls int
	hoursCalls   int
}

func (c *countingReader) GetService(ctx context.Context, id string) (model.Service, error) {
	c.serviceCalls++
	return c.Reader.GetService(ctx, id)
}

func (c *countingReader) GetBusinessHours(ctx context.Context, id string) (model.BusinessHours, error) {
	c.hoursCalls++
	return c.Reader.GetBusinessHours(ctx, id)
}

func TestCached(t *testing.T) {
	s, err := Parse([]byte(sample))
	require.NoError(t, err)
	inner := &countingReader{Reader: s}
	c := NewCached(inner, 10, time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := c.GetService(ctx, "haircut")
		require.NoError(t, err)
		_, err = c.GetBusinessHours(ctx, "haircut")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, inner.serviceCalls)
	assert.Equal(t, 1, inner.hoursCalls)

	assert.True(t, c.Purge("haircut"))
	assert.False(t, c.Purge("haircut"))
	_, _ = c.GetService(ctx, "haircut")
	assert.Equal(t, 2, inner.serviceCalls)

	_, err = c.GetService(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrServiceNotFound)
	_, _ = c.GetService(ctx, "missing")
	assert.Equal(t, 4, inner.serviceCalls, "misses are not cached")

	c.PurgeAll()
	_, _ = c.GetBusinessHours(ctx, "haircut")
	assert.Equal(t, 2, inner.hoursCalls)
}

func TestLoadExampleFile(t *testing.T) {
	s, err := LoadFile("../../catalog.example.yaml")
	require.NoError(t, err)
	assert.Len(t, s.Services(), 2)
}
