package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Rule weekly opening window: on DayOfWeek the equipment is open
// during [OpenMinute, CloseMinute) minutes of the local day
type Rule struct {
	DayOfWeek   time.Weekday `json:"dayOfWeek"`
	OpenMinute  int          `json:"openMinute"`
	CloseMinute int          `json:"closeMinute"`
}

// Validate checks the rule bounds
func (r Rule) Validate() error {
	if r.DayOfWeek < time.Sunday || r.DayOfWeek > time.Saturday {
		return fmt.Errorf("%w: dayOfWeek %d out of range 0..6", ErrInvalidAvailability, r.DayOfWeek)
	}
	if r.OpenMinute < 0 || r.CloseMinute > MinutesPerDay || r.OpenMinute >= r.CloseMinute {
		return fmt.Errorf("%w: rule %s-%s is not a valid window",
			ErrInvalidAvailability, FormatClock(r.OpenMinute), FormatClock(r.CloseMinute))
	}
	return nil
}

// OpenRanges returns one range per rule whose weekday matches date's weekday in loc.
// Ranges keep rule order and are never merged.
func OpenRanges(rules []Rule, date time.Time, loc *time.Location) []TimeRange {
	local := date.In(loc)
	y, m, d := local.Date()
	weekday := local.Weekday()

	ranges := make([]TimeRange, 0, len(rules))
	for _, rule := range rules {
		if rule.DayOfWeek != weekday {
			continue
		}
		ranges = append(ranges, TimeRange{
			Start: time.Date(y, m, d, 0, rule.OpenMinute, 0, 0, loc),
			End:   time.Date(y, m, d, 0, rule.CloseMinute, 0, 0, loc),
		})
	}
	return ranges
}

// CronRanges returns a one-hour range for every fire time of a standard
// 5-field cron expression on date's calendar day in loc
func CronRanges(expr string, date time.Time, loc *time.Location) ([]TimeRange, error) {
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: cron %q: %v", ErrInvalidAvailability, expr, err)
	}

	day := DayRange(date, loc)
	var ranges []TimeRange
	for t := schedule.Next(day.Start.Add(-time.Second)); !t.IsZero() && t.Before(day.End); t = schedule.Next(t) {
		ranges = append(ranges, TimeRange{Start: t, End: t.Add(CronSlotDuration)})
	}
	return ranges, nil
}

// InHours returns true if window lies fully inside a single open range
func InHours(ranges []TimeRange, window TimeRange) bool {
	for _, r := range ranges {
		if r.Contains(window) {
			return true
		}
	}
	return false
}

// ParseClock parses "HH:MM" into minutes since midnight. "24:00" is accepted as end of day.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 || len(parts[1]) != 2 {
		return 0, fmt.Errorf("%w: time %q, expected HH:MM", ErrInvalidAvailability, s)
	}
	h, errH := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	if errH != nil || errM != nil || h < 0 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: time %q, expected HH:MM", ErrInvalidAvailability, s)
	}
	total := h*60 + m
	if total > MinutesPerDay {
		return 0, fmt.Errorf("%w: time %q is past the end of day", ErrInvalidAvailability, s)
	}
	return total, nil
}

// FormatClock formats minutes since midnight as "HH:MM"
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
