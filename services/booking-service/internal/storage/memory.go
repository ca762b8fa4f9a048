package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/availability"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/holds"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/model"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/outbox"
)

// Unpublished events beyond this are dropped oldest first.
const memoryOutboxLimit = 10000

// MemoryStore keeps holds and appointments in process. Transactions hold one
// mutex for their whole duration and roll back by restoring a snapshot.
type MemoryStore struct {
	mu     sync.Mutex
	holds  map[string]model.Hold
	appts  map[string]model.Appointment
	events []outbox.Record
	seq    int64
}

type memTxKey struct{}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		holds: make(map[string]model.Hold),
		appts: make(map[string]model.Appointment),
	}
}

type memSnapshot struct {
	holds  map[string]model.Hold
	appts  map[string]model.Appointment
	events []outbox.Record
	seq    int64
}

func (s *MemoryStore) snapshot() memSnapshot {
	snap := memSnapshot{
		holds:  make(map[string]model.Hold, len(s.holds)),
		appts:  make(map[string]model.Appointment, len(s.appts)),
		events: append([]outbox.Record(nil), s.events...),
		seq:    s.seq,
	}
	for k, v := range s.holds {
		snap.holds[k] = v
	}
	for k, v := range s.appts {
		snap.appts[k] = v
	}
	return snap
}

func (s *MemoryStore) restore(snap memSnapshot) {
	s.holds, s.appts, s.events, s.seq = snap.holds, snap.appts, snap.events, snap.seq
}

func (s *MemoryStore) inTx(ctx context.Context) bool {
	return ctx.Value(memTxKey{}) == s
}

func (s *MemoryStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.inTx(ctx) {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, memTxKey{}, s)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// locked runs fn under the store mutex unless ctx already owns it.
func (s *MemoryStore) locked(ctx context.Context, fn func() error) error {
	if !s.inTx(ctx) {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return fn()
}

// LockScope is a no-op: a memory transaction already excludes all others.
func (s *MemoryStore) LockScope(context.Context, []string) error { return nil }

func (s *MemoryStore) ListBlocking(ctx context.Context, q holds.BlockingQuery) ([]holds.Blocker, error) {
	var out []holds.Blocker
	want := availability.Interval{Start: q.Start, End: q.End}
	err := s.locked(ctx, func() error {
		if !q.SkipHolds {
			for _, h := range s.holds {
				iv := availability.Interval{Start: h.Start, End: h.End()}
				if h.ID == q.ExcludeHoldID || !h.Live(q.Now) || !iv.Overlaps(want) {
					continue
				}
				if !q.Scope.Covers(h.ServiceID, h.ResourceID, q.Policy) {
					continue
				}
				out = append(out, holds.Blocker{Kind: holds.BlockerHold, ID: h.ID, ServiceID: h.ServiceID,
					ResourceID: h.ResourceID, SessionID: h.SessionID, Interval: iv})
			}
		}
		for _, a := range s.appts {
			iv := availability.Interval{Start: a.Start, End: a.End()}
			if !a.Blocking() || !iv.Overlaps(want) || !q.Scope.Covers(a.ServiceID, a.ResourceID, q.Policy) {
				continue
			}
			out = append(out, holds.Blocker{Kind: holds.BlockerAppointment, ID: a.ID, ServiceID: a.ServiceID,
				ResourceID: a.ResourceID, Interval: iv})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Interval.Start.Equal(out[j].Interval.Start) {
			return out[i].Interval.Start.Before(out[j].Interval.Start)
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}

func (s *MemoryStore) InsertHold(ctx context.Context, h model.Hold) error {
	return s.locked(ctx, func() error {
		s.holds[h.ID] = h
		return nil
	})
}

func (s *MemoryStore) GetHold(ctx context.Context, id string) (model.Hold, error) {
	var h model.Hold
	err := s.locked(ctx, func() error {
		var ok bool
		if h, ok = s.holds[id]; !ok {
			return model.ErrHoldNotFound
		}
		return nil
	})
	return h, err
}

func (s *MemoryStore) SetHoldStatus(ctx context.Context, id string, status model.HoldStatus, at time.Time) error {
	return s.locked(ctx, func() error {
		h, ok := s.holds[id]
		if !ok {
			return model.ErrHoldNotFound
		}
		h.Status = status
		if status.Terminal() {
			closed := at
			h.ClosedAt = &closed
		}
		s.holds[id] = h
		return nil
	})
}

func (s *MemoryStore) ExpireHolds(ctx context.Context, now time.Time, limit int) ([]model.Hold, error) {
	var out []model.Hold
	err := s.locked(ctx, func() error {
		for _, h := range s.holds {
			if h.Status == model.HoldActive && h.Expired(now) {
				out = append(out, h)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ExpiresAt.Before(out[j].ExpiresAt) })
		if limit > 0 && len(out) > limit {
			out = out[:limit]
		}
		for i := range out {
			closed := now
			out[i].Status = model.HoldExpired
			out[i].ClosedAt = &closed
			s.holds[out[i].ID] = out[i]
		}
		return nil
	})
	return out, err
}

func (s *MemoryStore) AppendEvent(ctx context.Context, ev outbox.Event) error {
	return s.locked(ctx, func() error {
		s.seq++
		s.events = append(s.events, outbox.Record{Seq: s.seq, Event: ev})
		if over := len(s.events) - memoryOutboxLimit; over > 0 {
			s.events = append([]outbox.Record(nil), s.events[over:]...)
		}
		return nil
	})
}

func (s *MemoryStore) FetchUnpublished(ctx context.Context, limit int) ([]outbox.Record, error) {
	var out []outbox.Record
	err := s.locked(ctx, func() error {
		n := len(s.events)
		if limit > 0 && n > limit {
			n = limit
		}
		out = append(out, s.events[:n]...)
		return nil
	})
	return out, err
}

// MarkPublished forgets published events.
func (s *MemoryStore) MarkPublished(ctx context.Context, seqs []int64) error {
	return s.locked(ctx, func() error {
		done := make(map[int64]bool, len(seqs))
		for _, seq := range seqs {
			done[seq] = true
		}
		kept := s.events[:0]
		for _, r := range s.events {
			if !done[r.Seq] {
				kept = append(kept, r)
			}
		}
		s.events = kept
		return nil
	})
}

func (s *MemoryStore) InsertAppointment(ctx context.Context, a model.Appointment) error {
	return s.locked(ctx, func() error {
		s.appts[a.ID] = a
		return nil
	})
}

func (s *MemoryStore) GetAppointment(ctx context.Context, id string) (model.Appointment, error) {
	var a model.Appointment
	err := s.locked(ctx, func() error {
		var ok bool
		if a, ok = s.appts[id]; !ok {
			return model.ErrAppointmentNotFound
		}
		return nil
	})
	return a, err
}

func (s *MemoryStore) GetAppointmentByHold(ctx context.Context, holdID string) (model.Appointment, error) {
	var found model.Appointment
	err := s.locked(ctx, func() error {
		for _, a := range s.appts {
			if a.HoldID == holdID {
				found = a
				return nil
			}
		}
		return model.ErrAppointmentNotFound
	})
	return found, err
}

func (s *MemoryStore) CancelAppointment(ctx context.Context, id, reason string, at time.Time) error {
	return s.locked(ctx, func() error {
		a, ok := s.appts[id]
		if !ok {
			return model.ErrAppointmentNotFound
		}
		cancelled := at
		a.Status = model.AppointmentCancelled
		a.CancelledAt = &cancelled
		a.CancelReason = reason
		s.appts[id] = a
		return nil
	})
}

func (s *MemoryStore) ListAppointments(ctx context.Context, from, to time.Time) ([]model.Appointment, error) {
	var out []model.Appointment
	err := s.locked(ctx, func() error {
		for _, a := range s.appts {
			if !a.Start.Before(from) && a.Start.Before(to) {
				out = append(out, a)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, err
}
