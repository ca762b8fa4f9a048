package holds

import (
	"context"
	"time"

	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/availability"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/model"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/outbox"
)

const (
	BlockerHold        = "hold"
	BlockerAppointment = "appointment"
)

// Blocker is a live hold or a non-cancelled appointment occupying an interval.
type Blocker struct {
	Kind       string
	ID         string
	ServiceID  string
	ResourceID string
	SessionID  string
	Interval   availability.Interval
}

// BlockingQuery selects blockers whose scope competes with Scope under Policy
// and whose interval overlaps [Start, End). Holds are live at Now.
type BlockingQuery struct {
	Scope         model.Scope
	Policy        model.ScopePolicy
	Start         time.Time
	End           time.Time
	Now           time.Time
	ExcludeHoldID string
	// SkipHolds limits the query to appointments.
	SkipHolds bool
}

// Store is the transactional hold store. Methods other than WithTx join the
// transaction carried by ctx when there is one.
type Store interface {
	// WithTx runs fn atomically. Reads inside fn observe a state no
	// concurrent WithTx on overlapping scope keys can change before commit.
	// fn may be run more than once.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	// LockScope serializes transactions that share any of keys until commit.
	LockScope(ctx context.Context, keys []string) error
	ListBlocking(ctx context.Context, q BlockingQuery) ([]Blocker, error)
	InsertHold(ctx context.Context, h model.Hold) error
	// GetHold returns model.ErrHoldNotFound for unknown ids. Inside a
	// transaction the row stays locked until commit.
	GetHold(ctx context.Context, id string) (model.Hold, error)
	SetHoldStatus(ctx context.Context, id string, status model.HoldStatus, at time.Time) error
	// ExpireHolds rewrites up to limit active holds with ExpiresAt before now
	// to expired and returns them.
	ExpireHolds(ctx context.Context, now time.Time, limit int) ([]model.Hold, error)
	AppendEvent(ctx context.Context, ev outbox.Event) error
}

// Intervals projects blockers onto their intervals.
func Intervals(bs []Blocker) []availability.Interval {
	out := make([]availability.Interval, len(bs))
	for i, b := range bs {
		out[i] = b.Interval
	}
	return out
}
