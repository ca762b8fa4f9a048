package model

import "time"

type HoldStatus string

const (
	HoldActive    HoldStatus = "active"
	HoldFinalized HoldStatus = "finalized"
	HoldReleased  HoldStatus = "released"
	HoldExpired   HoldStatus = "expired"
)

func (s HoldStatus) Terminal() bool {
	return s == HoldFinalized || s == HoldReleased || s == HoldExpired
}

func (s HoldStatus) Valid() bool {
	return s == HoldActive || s.Terminal()
}

// Hold is a time-boxed reservation of [Start, Start+DurationMinutes).
// ResourceID is empty when the hold is not tied to a specific resource.
type Hold struct {
	ID              string
	ServiceID       string
	ResourceID      string
	SessionID       string
	Start           time.Time
	DurationMinutes int
	Status          HoldStatus
	CreatedAt       time.Time
	ExpiresAt       time.Time
	ClosedAt        *time.Time
}

func (h Hold) End() time.Time {
	return h.Start.Add(time.Duration(h.DurationMinutes) * time.Minute)
}

func (h Hold) Scope() Scope {
	return Scope{ServiceID: h.ServiceID, ResourceID: h.ResourceID}
}

// Expired reports whether the TTL has lapsed at now. A hold is still live at
// exactly ExpiresAt.
func (h Hold) Expired(now time.Time) bool {
	return now.After(h.ExpiresAt)
}

// Live reports whether the hold currently occupies its interval.
func (h Hold) Live(now time.Time) bool {
	return h.Status == HoldActive && !h.Expired(now)
}

// Observed returns the hold with passive expiry applied to Status.
func (h Hold) Observed(now time.Time) Hold {
	if h.Status == HoldActive && h.Expired(now) {
		h.Status = HoldExpired
	}
	return h
}
