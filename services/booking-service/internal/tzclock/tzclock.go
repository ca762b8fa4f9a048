// Package tzclock resolves local wall-clock times in an IANA timezone to instants.
package tzclock

import (
	"fmt"
	"time"

	"github.com/md-rashed-zaman/slothold/services/booking-service/internal/model"
)

const dateLayout = "2006-01-02"

// Date is a calendar date with no timezone attached.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", model.ErrInvalidArgument, s)
	}
	return DateOf(t), nil
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func (d Date) noonUTC() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 12, 0, 0, 0, time.UTC)
}

func (d Date) Weekday() time.Weekday { return d.noonUTC().Weekday() }

func (d Date) AddDays(n int) Date { return DateOf(d.noonUTC().AddDate(0, 0, n)) }

func (d Date) String() string { return d.noonUTC().Format(dateLayout) }

// LocalTimeOnDate returns the instant at which clocks in tz show hhmm on d.
//
// Ambiguous wall times (clocks set back) resolve to the earlier instant.
// Wall times skipped by a forward transition are read with the offset in
// force before the transition, which moves them forward by the gap.
// "24:00" is midnight at the start of the following day.
func LocalTimeOnDate(d Date, hhmm, tz string) (time.Time, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: unknown timezone %q", model.ErrInvalidArgument, tz)
	}
	minutes, err := model.ParseClock(hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return At(d, minutes, loc), nil
}

// At is LocalTimeOnDate with a resolved location and minutes after midnight.
func At(d Date, minutes int, loc *time.Location) time.Time {
	if minutes >= 24*60 {
		d = d.AddDays(minutes / (24 * 60))
		minutes %= 24 * 60
	}
	wall := time.Date(d.Year, d.Month, d.Day, minutes/60, minutes%60, 0, 0, time.UTC)

	// Offsets a day either side bracket any single transition near wall.
	_, before := wall.Add(-24 * time.Hour).In(loc).Zone()
	_, after := wall.Add(24 * time.Hour).In(loc).Zone()

	var best time.Time
	for _, off := range []int{before, after} {
		t := wall.Add(-time.Duration(off) * time.Second)
		if !sameWall(t.In(loc), wall) {
			continue
		}
		if best.IsZero() || t.Before(best) {
			best = t
		}
	}
	if best.IsZero() {
		best = wall.Add(-time.Duration(before) * time.Second)
	}
	return best.In(loc)
}

func sameWall(t, wall time.Time) bool {
	y1, m1, d1 := t.Date()
	y2, m2, d2 := wall.Date()
	return y1 == y2 && m1 == m2 && d1 == d2 && t.Hour() == wall.Hour() && t.Minute() == wall.Minute()
}

// DayBounds returns [local midnight of d, local midnight of the next day) in tz.
func DayBounds(d Date, tz string) (time.Time, time.Time, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: unknown timezone %q", model.ErrInvalidArgument, tz)
	}
	return At(d, 0, loc), At(d.AddDays(1), 0, loc), nil
}
