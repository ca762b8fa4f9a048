package holds

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
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/metrics"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/model"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/outbox"
)

const DefaultHoldTTL = 5 * time.Minute

// MaxHoldMinutes caps a single hold at one day.
const MaxHoldMinutes = 24 * 60

type Manager struct {
	store  Store
	clock  clock.Clock
	logger *slog.Logger
	ttl    time.Duration
	policy model.ScopePolicy
	locker Locker
	tracer trace.Tracer
}

type Option func(*Manager)

func WithHoldTTL(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.ttl = d
		}
	}
}

func WithScopePolicy(p model.ScopePolicy) Option {
	return func(m *Manager) {
		if p != "" {
			m.policy = p
		}
	}
}

// WithLocker adds a cross-process lease around each create.
func WithLocker(l Locker) Option {
	return func(m *Manager) { m.locker = l }
}

func NewManager(store Store, clk clock.Clock, logger *slog.Logger, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		clock:  clk,
		logger: logger,
		ttl:    DefaultHoldTTL,
		policy: model.ScopeServiceWide,
		tracer: otel.Tracer("booking-service/holds"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) TTL() time.Duration { return m.ttl }
func (m *Manager) Policy() model.ScopePolicy { return m.policy }
func (m *Manager) Locker() Locker { return m.locker }

type CreateHoldInput struct {
	ServiceID       string
	Start           time.Time
	DurationMinutes int
	SessionID       string
	ResourceID      string
}

func (in CreateHoldInput) validate() error {
	var problems []string
	if strings.TrimSpace(in.ServiceID) == "" {
		problems = append(problems, "service_id is required")
	}
	if strings.TrimSpace(in.SessionID) == "" {
		problems = append(problems, "session_id is required")
	}
	if in.Start.IsZero() {
		problems = append(problems, "start is required")
	}
	if in.DurationMinutes <= 0 || in.DurationMinutes > MaxHoldMinutes {
		problems = append(problems, fmt.Sprintf("duration_minutes must be between 1 and %d", MaxHoldMinutes))
	}
	if len(problems) > 0 {
		return &model.Error{Code: model.CodeInvalidArgument, Message: strings.Join(problems, "; ")}
	}
	return nil
}

// CreateHold reserves [Start, Start+DurationMinutes) for the session. It fails
// with model.ErrOverlap when a live hold or a non-cancelled appointment in a
// competing scope overlaps the interval. Retrying a request whose hold is
// still live returns that hold.
func (m *Manager) CreateHold(ctx context.Context, in CreateHoldInput) (hold model.Hold, err error) {
	ctx, span := m.tracer.Start(ctx, "holds.CreateHold", trace.WithAttributes(
		attribute.String("service_id", in.ServiceID),
		attribute.String("resource_id", in.ResourceID),
	))
	defer func() { endSpan(span, err); metrics.ObserveHoldOp("create", outcome(err)) }()

	if err := in.validate(); err != nil {
		return model.Hold{}, err
	}

	scope := model.Scope{ServiceID: in.ServiceID, ResourceID: in.ResourceID}
	keys := scope.LockKeys(m.policy)
	start := in.Start.UTC()
	end := start.Add(time.Duration(in.DurationMinutes) * time.Minute)
	if !end.After(start) {
		return model.Hold{}, &model.Error{Code: model.CodeInvalidArgument, Message: "hold must end after it starts"}
	}
	began := time.Now()

	err = Guard(ctx, m.locker, keys, func(ctx context.Context) error {
		return m.store.WithTx(ctx, func(ctx context.Context) error {
			now := m.clock.Now()
			if err := m.store.LockScope(ctx, keys); err != nil {
				return err
			}
			blockers, err := m.store.ListBlocking(ctx, BlockingQuery{
				Scope: scope, Policy: m.policy, Start: start, End: end, Now: now,
			})
			if err != nil {
				return fmt.Errorf("list blocking: %w", err)
			}
			if len(blockers) > 0 {
				if id, ok := retriedHold(blockers, in, start, end); ok {
					hold, err = m.store.GetHold(ctx, id)
					return err
				}
				return overlapError(blockers[0])
			}

			hold = model.Hold{
				ID:              uuid.NewString(),
				ServiceID:       in.ServiceID,
				ResourceID:      in.ResourceID,
				SessionID:       in.SessionID,
				Start:           start,
				DurationMinutes: in.DurationMinutes,
				Status:          model.HoldActive,
				CreatedAt:       now,
				ExpiresAt:       now.Add(m.ttl),
			}
			if err := m.store.InsertHold(ctx, hold); err != nil {
				return err
			}
			return m.appendHoldEvent(ctx, outbox.HoldCreated, hold, now)
		})
	})
	metrics.ObserveTx("create_hold", began)
	if err != nil {
		return model.Hold{}, err
	}
	m.logger.Info("hold created", "hold_id", hold.ID, "service_id", hold.ServiceID, "resource_id", hold.ResourceID,
		"start", hold.Start, "expires_at", hold.ExpiresAt)
	return hold, nil
}

func retriedHold(blockers []Blocker, in CreateHoldInput, start, end time.Time) (string, bool) {
	if len(blockers) != 1 {
		return "", false
	}
	b := blockers[0]
	same := b.Kind == BlockerHold &&
		b.SessionID == in.SessionID &&
		b.ServiceID == in.ServiceID &&
		b.ResourceID == in.ResourceID &&
		b.Interval.Start.Equal(start) &&
		b.Interval.End.Equal(end)
	return b.ID, same
}

func overlapError(b Blocker) error {
	return &model.Error{
		Code: model.CodeOverlap,
		Message: fmt.Sprintf("interval overlaps %s %s [%s, %s)", b.Kind, b.ID,
			b.Interval.Start.Format(time.RFC3339), b.Interval.End.Format(time.RFC3339)),
	}
}

// ReleaseHold ends an active hold. Releasing a hold that is already terminal
// is a successful no-op. An active hold past its TTL is recorded as expired.
func (m *Manager) ReleaseHold(ctx context.Context, holdID string) (err error) {
	ctx, span := m.tracer.Start(ctx, "holds.ReleaseHold", trace.WithAttributes(attribute.String("hold_id", holdID)))
	defer func() { endSpan(span, err); metrics.ObserveHoldOp("release", outcome(err)) }()

	if strings.TrimSpace(holdID) == "" {
		return &model.Error{Code: model.CodeInvalidArgument, Message: "hold_id is required"}
	}

	var released model.Hold
	err = m.store.WithTx(ctx, func(ctx context.Context) error {
		released = model.Hold{}
		h, err := m.store.GetHold(ctx, holdID)
		if err != nil {
			return err
		}
		if h.Status.Terminal() {
			return nil
		}
		now := m.clock.Now()
		status, eventType := model.HoldReleased, outbox.HoldReleased
		if h.Expired(now) {
			status, eventType = model.HoldExpired, outbox.HoldExpired
		}
		if err := m.store.SetHoldStatus(ctx, h.ID, status, now); err != nil {
			return err
		}
		h.Status = status
		released = h
		return m.appendHoldEvent(ctx, eventType, h, now)
	})
	if err != nil {
		return err
	}
	if released.ID != "" {
		m.logger.Info("hold closed", "hold_id", released.ID, "status", released.Status)
	}
	return nil
}

// GetHold returns the hold with passive expiry reflected in its status.
func (m *Manager) GetHold(ctx context.Context, holdID string) (model.Hold, error) {
	h, err := m.store.GetHold(ctx, holdID)
	if err != nil {
		return model.Hold{}, err
	}
	return h.Observed(m.clock.Now()), nil
}

// ExpireStale rewrites up to limit lapsed active holds to expired.
func (m *Manager) ExpireStale(ctx context.Context, limit int) (int, error) {
	var n int
	err := m.store.WithTx(ctx, func(ctx context.Context) error {
		now := m.clock.Now()
		expired, err := m.store.ExpireHolds(ctx, now, limit)
		if err != nil {
			return err
		}
		for _, h := range expired {
			if err := m.appendHoldEvent(ctx, outbox.HoldExpired, h, now); err != nil {
				return err
			}
		}
		n = len(expired)
		return nil
	})
	if err != nil {
		return 0, err
	}
	metrics.AddHoldsExpired(n)
	return n, nil
}

func (m *Manager) appendHoldEvent(ctx context.Context, eventType string, h model.Hold, at time.Time) error {
	ev, err := outbox.NewEvent(ctx, outbox.AggregateHold, h.ID, eventType, HoldPayload(h), at)
	if err != nil {
		return err
	}
	return m.store.AppendEvent(ctx, ev)
}

func HoldPayload(h model.Hold) outbox.HoldPayload {
	return outbox.HoldPayload{
		HoldID:          h.ID,
		ServiceID:       h.ServiceID,
		ResourceID:      h.ResourceID,
		SessionID:       h.SessionID,
		Start:           h.Start,
		DurationMinutes: h.DurationMinutes,
		Status:          string(h.Status),
		ExpiresAt:       h.ExpiresAt,
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
