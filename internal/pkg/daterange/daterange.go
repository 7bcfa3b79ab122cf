package daterange

import (
	"net/http"
	"time"

	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/apperror"
)

var ErrInvalidRange = apperror.New(http.StatusBadRequest, "start date must not be after end date")

// DayFormat is the wire format for calendar days.
const DayFormat = "2006-01-02"

// Range is an inclusive range of calendar days [Start, End].
// Both bounds are normalized to midnight UTC; there is no time-of-day component.
type Range struct {
	Start time.Time
	End   time.Time
}

// DayOf truncates t to its calendar day in UTC.
func DayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// New builds a normalized inclusive range. Fails with ErrInvalidRange if start is after end.
func New(start, end time.Time) (Range, error) {
	r := Range{Start: DayOf(start), End: DayOf(end)}
	if r.Start.After(r.End) {
		return Range{}, ErrInvalidRange
	}
	return r, nil
}

// Days returns the number of calendar days covered, inclusive on both ends.
func (r Range) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Overlaps reports whether the two inclusive ranges share at least one day.
func (r Range) Overlaps(other Range) bool {
	return !r.Start.After(other.End) && !other.Start.After(r.End)
}

// Contains reports whether other lies entirely within r.
func (r Range) Contains(other Range) bool {
	return !r.Start.After(other.Start) && !r.End.Before(other.End)
}

// ContainsDay reports whether the given day falls within the range.
func (r Range) ContainsDay(t time.Time) bool {
	d := DayOf(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// Adjacent reports whether the ranges touch without overlapping,
// i.e. one ends on the day before the other starts.
func (r Range) Adjacent(other Range) bool {
	return r.End.AddDate(0, 0, 1).Equal(other.Start) || other.End.AddDate(0, 0, 1).Equal(r.Start)
}

// Merge combines two overlapping or adjacent ranges into their union.
// The second return value is false when the ranges are disjoint.
func (r Range) Merge(other Range) (Range, bool) {
	if !r.Overlaps(other) && !r.Adjacent(other) {
		return Range{}, false
	}
	start := r.Start
	if other.Start.Before(start) {
		start = other.Start
	}
	end := r.End
	if other.End.After(end) {
		end = other.End
	}
	return Range{Start: start, End: end}, true
}

// Intersect returns the days the two ranges share.
// The second return value is false when they do not overlap.
func (r Range) Intersect(other Range) (Range, bool) {
	if !r.Overlaps(other) {
		return Range{}, false
	}
	start := r.Start
	if other.Start.After(start) {
		start = other.Start
	}
	end := r.End
	if other.End.Before(end) {
		end = other.End
	}
	return Range{Start: start, End: end}, true
}

// EachDay calls fn for every day in the range, in order.
func (r Range) EachDay(fn func(day time.Time)) {
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}
