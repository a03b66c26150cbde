package domain

import "time"

// TimeRange полуинтервал [Start, End)
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Overlaps returns true if two half-open ranges intersect
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Contains returns true if other lies fully inside r
func (r TimeRange) Contains(other TimeRange) bool {
	return !other.Start.Before(r.Start) && !other.End.After(r.End)
}

// Duration returns the length of the range
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// StartOfDay returns local midnight of t's calendar day in loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// DayRange returns [midnight, next midnight) of t's calendar day in loc
func DayRange(t time.Time, loc *time.Location) TimeRange {
	start := StartOfDay(t, loc)
	y, m, d := start.Date()
	return TimeRange{Start: start, End: time.Date(y, m, d+1, 0, 0, 0, 0, loc)}
}
