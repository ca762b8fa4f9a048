package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/md-rashed-zaman/slothold/libs/db"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/holds"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/model"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/outbox"
)

var errNoTx = errors.New("storage: operation requires a transaction")

// BookingRepository is the Postgres store for holds, appointments and the outbox.
type BookingRepository struct {
	pool *db.Pool
	opts db.TxOptions
}

func NewBookingRepository(pool *db.Pool, opts db.TxOptions) *BookingRepository {
	return &BookingRepository{pool: pool, opts: opts}
}

// WithTx runs fn in a SERIALIZABLE transaction, retried on serialization failures.
func (r *BookingRepository) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return db.WithTx(ctx, r.pool, r.opts, fn)
}

// LockScope takes one transaction-scoped advisory lock per key, in order.
func (r *BookingRepository) LockScope(ctx context.Context, keys []string) error {
	tx := db.TxFromContext(ctx)
	if tx == nil {
		return errNoTx
	}
	for _, k := range keys {
		if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, k); err != nil {
			return fmt.Errorf("lock scope %s: %w", k, err)
		}
	}
	return nil
}

// scopeFilter mirrors model.Scope.Covers; $1 is the service id and $2 the
// resource id ('' for none).
func scopeFilter(policy model.ScopePolicy) string {
	if policy == model.ScopeResourceOnly {
		return `(($2 <> '' AND resource_id = $2) OR ($2 = '' AND service_id = $1 AND resource_id IS NULL))`
	}
	return `(($2 <> '' AND resource_id = $2) OR (service_id = $1 AND ($2 = '' OR resource_id IS NULL)))`
}

func (r *BookingRepository) ListBlocking(ctx context.Context, q holds.BlockingQuery) ([]holds.Blocker, error) {
	scope := scopeFilter(q.Policy)
	sql := `
		SELECT 'hold', id::text, service_id, COALESCE(resource_id, ''), session_id, start_time, end_time
		FROM holds
		WHERE NOT $7
			AND status = 'active'
			AND expires_at >= $5
			AND start_time < $4
			AND end_time > $3
			AND id::text <> $6
			AND ` + scope + `
		UNION ALL
		SELECT 'appointment', id::text, service_id, COALESCE(resource_id, ''), '', start_time, end_time
		FROM appointments
		WHERE status <> 'cancelled'
			AND start_time < $4
			AND end_time > $3
			AND ` + scope + `
		ORDER BY 6, 2
	`
	rows, err := r.pool.Conn(ctx).Query(ctx, sql,
		q.Scope.ServiceID, q.Scope.ResourceID, q.Start, q.End, q.Now, q.ExcludeHoldID, q.SkipHolds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []holds.Blocker
	for rows.Next() {
		var b holds.Blocker
		if err := rows.Scan(&b.Kind, &b.ID, &b.ServiceID, &b.ResourceID, &b.SessionID, &b.Interval.Start, &b.Interval.End); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BookingRepository) InsertHold(ctx context.Context, h model.Hold) error {
	_, err := r.pool.Conn(ctx).Exec(ctx, `
		INSERT INTO holds
			(id, service_id, resource_id, session_id, start_time, end_time, duration_minutes, status, created_at, expires_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10)
	`, h.ID, h.ServiceID, h.ResourceID, h.SessionID, h.Start, h.End(), h.DurationMinutes, string(h.Status), h.CreatedAt, h.ExpiresAt)
	return err
}

const holdColumns = `id::text, service_id, COALESCE(resource_id, ''), session_id, start_time, duration_minutes,
	status, created_at, expires_at, closed_at`

func scanHold(row pgx.Row) (model.Hold, error) {
	var h model.Hold
	var status string
	if err := row.Scan(&h.ID, &h.ServiceID, &h.ResourceID, &h.SessionID, &h.Start, &h.DurationMinutes,
		&status, &h.CreatedAt, &h.ExpiresAt, &h.ClosedAt); err != nil {
		return model.Hold{}, err
	}
	h.Status = model.HoldStatus(status)
	h.Start, h.CreatedAt, h.ExpiresAt = h.Start.UTC(), h.CreatedAt.UTC(), h.ExpiresAt.UTC()
	return h, nil
}

func (r *BookingRepository) GetHold(ctx context.Context, id string) (model.Hold, error) {
	sql := `SELECT ` + holdColumns + ` FROM holds WHERE id = $1`
	if db.TxFromContext(ctx) != nil {
		sql += ` FOR UPDATE`
	}
	h, err := scanHold(r.pool.Conn(ctx).QueryRow(ctx, sql, id))
	if db.IsNotFound(err) || db.IsInvalidText(err) {
		return model.Hold{}, model.ErrHoldNotFound
	}
	return h, err
}

func (r *BookingRepository) SetHoldStatus(ctx context.Context, id string, status model.HoldStatus, at time.Time) error {
	tag, err := r.pool.Conn(ctx).Exec(ctx, `
		UPDATE holds
		SET status = $2,
			closed_at = CASE WHEN $2 = 'active' THEN NULL ELSE $3::timestamptz END
		WHERE id = $1
	`, id, string(status), at)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrHoldNotFound
	}
	return nil
}

func (r *BookingRepository) ExpireHolds(ctx context.Context, now time.Time, limit int) ([]model.Hold, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Conn(ctx).Query(ctx, `
		UPDATE holds
		SET status = 'expired', closed_at = $1
		WHERE id IN (
			SELECT id FROM holds
			WHERE status = 'active' AND expires_at < $1
			ORDER BY expires_at
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)
		RETURNING `+holdColumns, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Hold
	for rows.Next() {
		h, err := scanHold(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *BookingRepository) AppendEvent(ctx context.Context, ev outbox.Event) error {
	_, err := r.pool.Conn(ctx).Exec(ctx, `
		INSERT INTO outbox_events
			(event_id, aggregate_type, aggregate_id, event_type, payload, occurred_at, traceparent, tracestate)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, ev.ID, ev.AggregateType, ev.AggregateID, ev.EventType, ev.Payload, ev.OccurredAt, ev.Traceparent, ev.Tracestate)
	return err
}

// FetchUnpublished locks the oldest unpublished events; other publishers skip them.
func (r *BookingRepository) FetchUnpublished(ctx context.Context, limit int) ([]outbox.Record, error) {
	rows, err := r.pool.Conn(ctx).Query(ctx, `
		SELECT seq, event_id::text, aggregate_type, aggregate_id, event_type, payload::text, occurred_at, traceparent, tracestate
		FROM outbox_events
		WHERE published_at IS NULL
		ORDER BY seq
		LIMIT $1
		FOR UPDATE SKIP LOCKED
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []outbox.Record
	for rows.Next() {
		var rec outbox.Record
		var payload string
		if err := rows.Scan(&rec.Seq, &rec.ID, &rec.AggregateType, &rec.AggregateID, &rec.EventType,
			&payload, &rec.OccurredAt, &rec.Traceparent, &rec.Tracestate); err != nil {
			return nil, err
		}
		rec.Payload = []byte(payload)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *BookingRepository) MarkPublished(ctx context.Context, seqs []int64) error {
	if len(seqs) == 0 {
		return nil
	}
	_, err := r.pool.Conn(ctx).Exec(ctx, `UPDATE outbox_events SET published_at = now() WHERE seq = ANY($1)`, seqs)
	return err
}

func (r *BookingRepository) InsertAppointment(ctx context.Context, a model.Appointment) error {
	_, err := r.pool.Conn(ctx).Exec(ctx, `
		INSERT INTO appointments
			(id, hold_id, service_id, resource_id, customer_id, customer_name, customer_email, customer_phone,
			 start_time, end_time, duration_minutes, price_cents, status, created_at)
		VALUES ($1, NULLIF($2, '')::uuid, $3, NULLIF($4, ''), $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, a.ID, a.HoldID, a.ServiceID, a.ResourceID, a.CustomerID, a.Customer.Name, a.Customer.Email, a.Customer.Phone,
		a.Start, a.End(), a.DurationMinutes, a.PriceCents, a.Status, a.CreatedAt)
	switch {
	case db.IsExclusionViolation(err):
		return &model.Error{Code: model.CodeOverlap, Message: "appointment overlaps an existing appointment"}
	case db.IsUniqueViolation(err):
		return model.ErrHoldInactive
	}
	return err
}

const appointmentColumns = `id::text, COALESCE(hold_id::text, ''), service_id, COALESCE(resource_id, ''), customer_id,
	customer_name, customer_email, customer_phone, start_time, duration_minutes, price_cents, status,
	cancelled_at, cancel_reason, created_at`

func scanAppointment(row pgx.Row) (model.Appointment, error) {
	var a model.Appointment
	err := row.Scan(
		&a.ID,
		&a.HoldID,
		&a.ServiceID,
		&a.ResourceID,
		&a.CustomerID,
		&a.Customer.Name,
		&a.Customer.Email,
		&a.Customer.Phone,
		&a.Start,
		&a.DurationMinutes,
		&a.PriceCents,
		&a.Status,
		&a.CancelledAt,
		&a.CancelReason,
		&a.CreatedAt,
	)
	a.Start, a.CreatedAt = a.Start.UTC(), a.CreatedAt.UTC()
	return a, err
}

func (r *BookingRepository) getAppointment(ctx context.Context, where string, arg any) (model.Appointment, error) {
	sql := `SELECT ` + appointmentColumns + ` FROM appointments WHERE ` + where
	if db.TxFromContext(ctx) != nil {
		sql += ` FOR UPDATE`
	}
	a, err := scanAppointment(r.pool.Conn(ctx).QueryRow(ctx, sql, arg))
	if db.IsNotFound(err) || db.IsInvalidText(err) {
		return model.Appointment{}, model.ErrAppointmentNotFound
	}
	return a, err
}

func (r *BookingRepository) GetAppointment(ctx context.Context, id string) (model.Appointment, error) {
	return r.getAppointment(ctx, `id = $1`, id)
}

func (r *BookingRepository) GetAppointmentByHold(ctx context.Context, holdID string) (model.Appointment, error) {
	return r.getAppointment(ctx, `hold_id = $1`, holdID)
}

func (r *BookingRepository) CancelAppointment(ctx context.Context, id, reason string, at time.Time) error {
	tag, err := r.pool.Conn(ctx).Exec(ctx, `
		UPDATE appointments
		SET status = 'cancelled',
			cancelled_at = $2,
			cancel_reason = $3
		WHERE id = $1
	`, id, at, reason)
	if db.IsInvalidText(err) {
		return model.ErrAppointmentNotFound
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return model.ErrAppointmentNotFound
	}
	return nil
}

func (r *BookingRepository) ListAppointments(ctx context.Context, from, to time.Time) ([]model.Appointment, error) {
	rows, err := r.pool.Conn(ctx).Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE start_time >= $1 AND start_time < $2
		ORDER BY start_time ASC
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
