package storage

import (
	"context"
	"time"

	"github.com/md-rashed-zaman/slothold/libs/db"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/catalog"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/model"
)

// CatalogRepository reads services, business hours and blackouts from Postgres.
type CatalogRepository struct {
	pool *db.Pool
}

func NewCatalogRepository(pool *db.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

func (r *CatalogRepository) GetService(ctx context.Context, serviceID string) (model.Service, error) {
	var s model.Service
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, duration_minutes, price_cents, active
		FROM services
		WHERE id = $1
	`, serviceID).Scan(&s.ID, &s.Name, &s.DurationMinutes, &s.PriceCents, &s.Active)
	if db.IsNotFound(err) {
		return model.Service{}, model.ErrServiceNotFound
	}
	return s, err
}

func (r *CatalogRepository) GetBusinessHours(ctx context.Context, serviceID string) (model.BusinessHours, error) {
	var h model.BusinessHours
	err := r.pool.QueryRow(ctx, `
		SELECT timezone, slot_interval_minutes
		FROM business_hours
		WHERE service_id = $1
	`, serviceID).Scan(&h.Timezone, &h.SlotIntervalMinutes)
	if db.IsNotFound(err) {
		return model.BusinessHours{}, model.ErrServiceNotFound
	}
	if err != nil {
		return model.BusinessHours{}, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT weekday, start_local, end_local
		FROM business_hour_windows
		WHERE service_id = $1
		ORDER BY weekday, start_local
	`, serviceID)
	if err != nil {
		return model.BusinessHours{}, err
	}
	defer rows.Close()

	h.Weekly = make(map[time.Weekday][]model.Window)
	for rows.Next() {
		var day int16
		var w model.Window
		if err := rows.Scan(&day, &w.Start, &w.End); err != nil {
			return model.BusinessHours{}, err
		}
		h.Weekly[time.Weekday(day)] = append(h.Weekly[time.Weekday(day)], w)
	}
	return h, rows.Err()
}

func (r *CatalogRepository) ListBlackouts(ctx context.Context, serviceID string, from, to time.Time) ([]model.Blackout, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT service_id, COALESCE(resource_id, ''), start_time, end_time, reason
		FROM blackouts
		WHERE service_id = $1 AND start_time < $3 AND end_time > $2
		ORDER BY start_time
	`, serviceID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Blackout
	for rows.Next() {
		var b model.Blackout
		if err := rows.Scan(&b.ServiceID, &b.ResourceID, &b.Start, &b.End, &b.Reason); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Seed upserts every entry, replacing its windows and blackouts.
func (r *CatalogRepository) Seed(ctx context.Context, entries []catalog.Entry) error {
	return db.WithTx(ctx, r.pool, db.TxOptions{}, func(ctx context.Context) error {
		tx := db.TxFromContext(ctx)
		for _, e := range entries {
			s := e.Service
			if _, err := tx.Exec(ctx, `
				INSERT INTO services (id, name, duration_minutes, price_cents, active)
				VALUES ($1, $2, $3, $4, $5)
				ON CONFLICT (id) DO UPDATE
				SET name = EXCLUDED.name,
					duration_minutes = EXCLUDED.duration_minutes,
					price_cents = EXCLUDED.price_cents,
					active = EXCLUDED.active,
					updated_at = now()
			`, s.ID, s.Name, s.DurationMinutes, s.PriceCents, s.Active); err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, `
				INSERT INTO business_hours (service_id, timezone, slot_interval_minutes)
				VALUES ($1, $2, $3)
				ON CONFLICT (service_id) DO UPDATE
				SET timezone = EXCLUDED.timezone,
					slot_interval_minutes = EXCLUDED.slot_interval_minutes
			`, s.ID, e.Hours.Timezone, e.Hours.SlotIntervalMinutes); err != nil {
				return err
			}
			if _, err := tx.Exec(ctx, `DELETE FROM business_hour_windows WHERE service_id = $1`, s.ID); err != nil {
				return err
			}
			for day, windows := range e.Hours.Weekly {
				for _, w := range windows {
					if _, err := tx.Exec(ctx, `
						INSERT INTO business_hour_windows (service_id, weekday, start_local, end_local)
						VALUES ($1, $2, $3, $4)
					`, s.ID, int16(day), w.Start, w.End); err != nil {
						return err
					}
				}
			}
			if _, err := tx.Exec(ctx, `DELETE FROM blackouts WHERE service_id = $1`, s.ID); err != nil {
				return err
			}
			for _, b := range e.Blackouts {
				if _, err := tx.Exec(ctx, `
					INSERT INTO blackouts (service_id, resource_id, start_time, end_time, reason)
					VALUES ($1, NULLIF($2, ''), $3, $4, $5)
				`, s.ID, b.ResourceID, b.Start, b.End, b.Reason); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
