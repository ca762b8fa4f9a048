package availability

import (
	"sort"
	"time"
)

// Interval is a half-open [Start, End) range of instants.
type Interval struct {
	Start time.Time
	End   time.Time
}

func (i Interval) Overlaps(o Interval) bool {
	return i.Start.Before(o.End) && o.Start.Before(i.End)
}

// Overlaps reports whether c intersects any interval in busy. busy may be unsorted.
func Overlaps(c Interval, busy []Interval) bool {
	for _, b := range busy {
		if c.Overlaps(b) {
			return true
		}
	}
	return false
}

// Index answers overlap queries against a fixed busy set in O(log n).
type Index struct {
	byStart []Interval
	// maxEnd[i] is the latest End among byStart[:i+1].
	maxEnd []time.Time
}

func NewIndex(busy []Interval) *Index {
	sorted := append([]Interval(nil), busy...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start.Before(sorted[j].Start) })

	maxEnd := make([]time.Time, len(sorted))
	for i, b := range sorted {
		maxEnd[i] = b.End
		if i > 0 && maxEnd[i-1].After(b.End) {
			maxEnd[i] = maxEnd[i-1]
		}
	}
	return &Index{byStart: sorted, maxEnd: maxEnd}
}

func (x *Index) Len() int { return len(x.byStart) }

func (x *Index) Overlaps(c Interval) bool {
	// Only intervals starting before c.End can intersect c.
	n := sort.Search(len(x.byStart), func(i int) bool { return !x.byStart[i].Start.Before(c.End) })
	return n > 0 && x.maxEnd[n-1].After(c.Start)
}
