package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Availability equipment availability configuration, stored as one JSON document
type Availability struct {
	Rules              []Rule `json:"rules"`
	Cron               string `json:"cron,omitempty"`
	AdvanceDays        int    `json:"advanceDays"`
	MinDurationMinutes int    `json:"minDurationMinutes"`
	MaxDurationMinutes int    `json:"maxDurationMinutes"`
}

// DefaultAvailability permissive configuration used when the stored one is malformed
func DefaultAvailability() Availability {
	return Availability{
		Rules:              []Rule{},
		AdvanceDays:        DefaultAdvanceDays,
		MinDurationMinutes: DefaultMinDurationMinutes,
		MaxDurationMinutes: DefaultMaxDurationMinutes,
	}
}

// ParseAvailability decodes and validates a stored configuration
func ParseAvailability(raw []byte) (Availability, error) {
	var a Availability
	if len(raw) == 0 {
		return a, fmt.Errorf("%w: empty document", ErrInvalidAvailability)
	}
	if err := json.Unmarshal(raw, &a); err != nil {
		return a, fmt.Errorf("%w: %v", ErrInvalidAvailability, err)
	}
	if err := a.Validate(); err != nil {
		return a, err
	}
	return a, nil
}

// Marshal encodes the configuration for storage
func (a Availability) Marshal() ([]byte, error) {
	if a.Rules == nil {
		a.Rules = []Rule{}
	}
	return json.Marshal(a)
}

// Validate checks durations, horizon, rules and the optional cron expression
func (a Availability) Validate() error {
	if a.MinDurationMinutes <= 0 {
		return fmt.Errorf("%w: minDurationMinutes must be positive", ErrInvalidAvailability)
	}
	if a.MaxDurationMinutes < a.MinDurationMinutes || a.MaxDurationMinutes > MaxDurationMinutes {
		return fmt.Errorf("%w: maxDurationMinutes must be between minDurationMinutes and %d",
			ErrInvalidAvailability, MaxDurationMinutes)
	}
	if a.AdvanceDays < 0 || a.AdvanceDays > MaxAdvanceDays {
		return fmt.Errorf("%w: advanceDays must be between 0 and %d", ErrInvalidAvailability, MaxAdvanceDays)
	}
	for _, rule := range a.Rules {
		if err := rule.Validate(); err != nil {
			return err
		}
	}
	if a.Cron != "" {
		if _, err := CronRanges(a.Cron, time.Unix(0, 0), time.UTC); err != nil {
			return err
		}
	}
	return nil
}

// OpenRanges returns the weekly-rule ranges for date followed by the cron ranges
func (a Availability) OpenRanges(date time.Time, loc *time.Location) []TimeRange {
	ranges := OpenRanges(a.Rules, date, loc)
	if a.Cron != "" {
		if cronRanges, err := CronRanges(a.Cron, date, loc); err == nil {
			ranges = append(ranges, cronRanges...)
		}
	}
	return ranges
}

// HorizonEnd exclusive bound of the booking horizon: midnight after today + AdvanceDays
func (a Availability) HorizonEnd(now time.Time, loc *time.Location) time.Time {
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d+a.AdvanceDays+1, 0, 0, 0, 0, loc)
}

// WithinHorizon returns true if t is on or before the last bookable day
func (a Availability) WithinHorizon(t, now time.Time, loc *time.Location) bool {
	return t.Before(a.HorizonEnd(now, loc))
}

// MinDuration minimum reservation length
func (a Availability) MinDuration() time.Duration {
	return time.Duration(a.MinDurationMinutes) * time.Minute
}

// MaxDuration maximum reservation length
func (a Availability) MaxDuration() time.Duration {
	return time.Duration(a.MaxDurationMinutes) * time.Minute
}
