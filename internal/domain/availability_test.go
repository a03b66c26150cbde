package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAvailability(t *testing.T) {
	raw := []byte(`{"rules":[{"dayOfWeek":1,"openMinute":540,"closeMinute":1020}],` +
		`"advanceDays":14,"minDurationMinutes":30,"maxDurationMinutes":240}`)

	a, err := ParseAvailability(raw)
	require.NoError(t, err)
	assert.Equal(t, 14, a.AdvanceDays)
	assert.Equal(t, 30*time.Minute, a.MinDuration())
	assert.Equal(t, 4*time.Hour, a.MaxDuration())
	require.Len(t, a.Rules, 1)
	assert.Equal(t, time.Monday, a.Rules[0].DayOfWeek)

	encoded, err := a.Marshal()
	require.NoError(t, err)
	again, err := ParseAvailability(encoded)
	require.NoError(t, err)
	assert.Equal(t, a, again)
}

func TestParseAvailability_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "not json", raw: "{rules:"},
		{name: "null", raw: "null"},
		{name: "zero min duration", raw: `{"advanceDays":7,"minDurationMinutes":0,"maxDurationMinutes":60}`},
		{name: "max below min", raw: `{"advanceDays":7,"minDurationMinutes":60,"maxDurationMinutes":30}`},
		{name: "bad weekday", raw: `{"rules":[{"dayOfWeek":7,"openMinute":0,"closeMinute":60}],"advanceDays":7,"minDurationMinutes":30,"maxDurationMinutes":60}`},
		{name: "inverted rule", raw: `{"rules":[{"dayOfWeek":1,"openMinute":600,"closeMinute":540}],"advanceDays":7,"minDurationMinutes":30,"maxDurationMinutes":60}`},
		{name: "bad cron", raw: `{"cron":"every day","advanceDays":7,"minDurationMinutes":30,"maxDurationMinutes":60}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAvailability([]byte(tt.raw))
			assert.ErrorIs(t, err, ErrInvalidAvailability)
		})
	}
}

func TestEquipment_AvailabilityOrDefault(t *testing.T) {
	eq := &Equipment{AvailabilityConfig: []byte("{broken")}

	a, err := eq.AvailabilityOrDefault()
	assert.Error(t, err)
	assert.Equal(t, DefaultAvailability(), a)
	assert.Empty(t, a.Rules)
	assert.Equal(t, 7, a.AdvanceDays)
	assert.Equal(t, 30, a.MinDurationMinutes)
	assert.Equal(t, 60, a.MaxDurationMinutes)
}

func TestAvailability_OpenRangesIncludesCron(t *testing.T) {
	a := Availability{
		Rules:              []Rule{{DayOfWeek: time.Monday, OpenMinute: 8 * 60, CloseMinute: 9 * 60}},
		Cron:               "0 15 * * 1",
		AdvanceDays:        7,
		MinDurationMinutes: 30,
		MaxDurationMinutes: 60,
	}

	got := a.OpenRanges(monday, time.UTC)
	assertRanges(t, []TimeRange{
		{Start: at(monday, 8, 0), End: at(monday, 9, 0)},
		{Start: at(monday, 15, 0), End: at(monday, 16, 0)},
	}, got)
}

func TestAvailability_Horizon(t *testing.T) {
	a := Availability{AdvanceDays: 7}
	now := at(monday, 10, 0)
	lastDay := monday.AddDate(0, 0, 7)

	assert.True(t, a.WithinHorizon(at(lastDay, 23, 59), now, time.UTC))
	assert.False(t, a.WithinHorizon(lastDay.AddDate(0, 0, 1), now, time.UTC))

	today := Availability{AdvanceDays: 0}
	assert.True(t, today.WithinHorizon(at(monday, 23, 0), now, time.UTC))
	assert.False(t, today.WithinHorizon(monday.AddDate(0, 0, 1), now, time.UTC))
}
