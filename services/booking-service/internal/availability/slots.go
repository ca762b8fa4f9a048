package availability

import (
	"fmt"
	"time"

	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/model"
	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/tzclock"
)

// SlotsInWindow returns start times stepping from windowStart by step where a
// booking of length duration fits inside [windowStart, windowEnd) and does not
// overlap busy.
func SlotsInWindow(windowStart, windowEnd time.Time, duration, step time.Duration, busy *Index) []time.Time {
	if duration <= 0 || step <= 0 {
		return nil
	}
	if !windowEnd.After(windowStart) {
		return nil
	}

	var slots []time.Time
	for t := windowStart; !t.Add(duration).After(windowEnd); t = t.Add(step) {
		if busy != nil && busy.Overlaps(Interval{Start: t, End: t.Add(duration)}) {
			continue
		}
		slots = append(slots, t)
	}
	return slots
}

// ComputeSlots lists bookable start times on date for a service of
// durationMinutes, in chronological order. Windows are read in the business
// timezone; busy is a snapshot and may be stale. A day without windows yields
// no slots. Only a malformed configuration is an error.
func ComputeSlots(date tzclock.Date, durationMinutes int, hours model.BusinessHours, busy []Interval) ([]time.Time, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", model.ErrInvalidArgument)
	}
	windows := hours.Weekly[date.Weekday()]
	if len(windows) == 0 {
		return nil, nil
	}
	loc, err := time.LoadLocation(hours.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", model.ErrInvalidArgument, hours.Timezone)
	}
	step := hours.Step()
	if step < model.MinSlotIntervalMinutes*time.Minute {
		step = model.MinSlotIntervalMinutes * time.Minute
	}
	duration := time.Duration(durationMinutes) * time.Minute
	index := NewIndex(busy)

	var out []time.Time
	for _, w := range windows {
		startMin, err := model.ParseClock(w.Start)
		if err != nil {
			return nil, err
		}
		endMin, err := model.ParseClock(w.End)
		if err != nil {
			return nil, err
		}
		start := tzclock.At(date, startMin, loc)
		end := tzclock.At(date, endMin, loc)
		out = append(out, SlotsInWindow(start, end, duration, step, index)...)
	}
	return out, nil
}

// FilterFrom drops slots starting before notBefore. slots keep their order.
func FilterFrom(slots []time.Time, notBefore time.Time) []time.Time {
	out := slots[:0:0]
	for _, s := range slots {
		if !s.Before(notBefore) {
			out = append(out, s)
		}
	}
	return out
}
