package model

import (
	"fmt"
	"time"
)

type Service struct {
	ID              string `yaml:"id" json:"id"`
	Name            string `yaml:"name" json:"name"`
	DurationMinutes int    `yaml:"duration_minutes" json:"duration_minutes"`
	PriceCents      int64  `yaml:"price_cents" json:"price_cents"`
	Active          bool   `yaml:"active" json:"active"`
}

const (
	DefaultSlotIntervalMinutes = 15
	MinSlotIntervalMinutes     = 5
)

// Window is a [Start, End) range of local wall-clock times, "HH:MM".
// End may be "24:00".
type Window struct {
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`
}

type BusinessHours struct {
	Timezone            string
	SlotIntervalMinutes int
	Weekly              map[time.Weekday][]Window
}

// Step is the slot interval with the default applied.
func (b BusinessHours) Step() time.Duration {
	m := b.SlotIntervalMinutes
	if m <= 0 {
		m = DefaultSlotIntervalMinutes
	}
	return time.Duration(m) * time.Minute
}

func (b BusinessHours) Validate() error {
	if _, err := time.LoadLocation(b.Timezone); err != nil || b.Timezone == "" {
		return fmt.Errorf("%w: invalid timezone %q", ErrInvalidArgument, b.Timezone)
	}
	if b.SlotIntervalMinutes != 0 && b.SlotIntervalMinutes < MinSlotIntervalMinutes {
		return fmt.Errorf("%w: slot interval must be at least %d minutes", ErrInvalidArgument, MinSlotIntervalMinutes)
	}
	for day, windows := range b.Weekly {
		prevEnd := -1
		for _, w := range windows {
			start, err := ParseClock(w.Start)
			if err != nil {
				return err
			}
			end, err := ParseClock(w.End)
			if err != nil {
				return err
			}
			if start >= end {
				return fmt.Errorf("%w: %s window %s-%s is empty", ErrInvalidArgument, day, w.Start, w.End)
			}
			if start < prevEnd {
				return fmt.Errorf("%w: %s windows overlap or are out of order", ErrInvalidArgument, day)
			}
			prevEnd = end
		}
	}
	return nil
}

// ParseClock parses "HH:MM" into minutes after midnight. "24:00" is accepted.
func ParseClock(hhmm string) (int, error) {
	if len(hhmm) != 5 || hhmm[2] != ':' {
		return 0, fmt.Errorf("%w: time %q must be HH:MM", ErrInvalidArgument, hhmm)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if hhmm[i] < '0' || hhmm[i] > '9' {
			return 0, fmt.Errorf("%w: time %q must be HH:MM", ErrInvalidArgument, hhmm)
		}
	}
	h := int(hhmm[0]-'0')*10 + int(hhmm[1]-'0')
	m := int(hhmm[3]-'0')*10 + int(hhmm[4]-'0')
	if m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("%w: time %q out of range", ErrInvalidArgument, hhmm)
	}
	return h*60 + m, nil
}

// Blackout closes the service (or one resource when ResourceID is set) for [Start, End).
type Blackout struct {
	ServiceID  string
	ResourceID string
	Start      time.Time
	End        time.Time
	Reason     string
}

// Applies reports whether the blackout closes scope s. A service-level
// blackout closes every resource; a resource blackout only closes that resource.
func (b Blackout) Applies(s Scope) bool {
	if b.ServiceID != s.ServiceID {
		return false
	}
	return b.ResourceID == "" || b.ResourceID == s.ResourceID
}
