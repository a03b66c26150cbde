package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabBookingService/pkg/ptr"
)

func usage(id, equipmentID int64, start time.Time, actualStart, actualEnd *time.Time) *Reservation {
	status := StatusApproved
	if actualEnd != nil {
		status = StatusCompleted
	} else if actualStart != nil {
		status = StatusActive
	}
	return &Reservation{
		ID:             id,
		EquipmentID:    equipmentID,
		RequestedStart: start,
		RequestedEnd:   start.Add(time.Hour),
		Status:         status,
		ActualStart:    actualStart,
		ActualEnd:      actualEnd,
	}
}

func TestClassify(t *testing.T) {
	start := at(monday, 10, 0)
	now := at(monday, 18, 0)

	tests := []struct {
		name string
		r    *Reservation
		prev *Reservation
		now  time.Time
		want Label
	}{
		{
			name: "cancelled wins",
			r:    &Reservation{Status: StatusCancelled, RequestedStart: start, RequestedEnd: start.Add(time.Hour)},
			now:  now,
			want: LabelCancelled,
		},
		{
			name: "awaiting check-in before start",
			r:    usage(1, 1, start, nil, nil),
			now:  start.Add(-time.Minute),
			want: LabelAwaitingCheckIn,
		},
		{
			name: "no show after start",
			r:    usage(1, 1, start, nil, nil),
			now:  start,
			want: LabelNoShow,
		},
		{
			name: "late by 16 minutes",
			r:    usage(1, 1, start, ptr.Ptr(start.Add(16*time.Minute)), ptr.Ptr(start.Add(time.Hour))),
			now:  now,
			want: LabelLate,
		},
		{
			name: "exactly 15 minutes is not late",
			r:    usage(1, 1, start, ptr.Ptr(start.Add(15*time.Minute)), ptr.Ptr(start.Add(time.Hour))),
			now:  now,
			want: LabelNormal,
		},
		{
			name: "overtime by 31 minutes",
			r:    usage(1, 1, start, ptr.Ptr(start), ptr.Ptr(start.Add(91*time.Minute))),
			now:  now,
			want: LabelOvertime,
		},
		{
			name: "late beats overtime",
			r:    usage(1, 1, start, ptr.Ptr(start.Add(20*time.Minute)), ptr.Ptr(start.Add(2*time.Hour))),
			now:  now,
			want: LabelLate,
		},
		{
			name: "lateness excused by overrunning predecessor",
			r:    usage(2, 1, start, ptr.Ptr(start.Add(25*time.Minute)), ptr.Ptr(start.Add(time.Hour))),
			prev: usage(1, 1, start.Add(-time.Hour), ptr.Ptr(start.Add(-time.Hour)), ptr.Ptr(start.Add(20*time.Minute))),
			now:  now,
			want: LabelNormal,
		},
		{
			name: "predecessor ending exactly at start does not excuse",
			r:    usage(2, 1, start, ptr.Ptr(start.Add(25*time.Minute)), ptr.Ptr(start.Add(time.Hour))),
			prev: usage(1, 1, start.Add(-time.Hour), ptr.Ptr(start.Add(-time.Hour)), ptr.Ptr(start)),
			now:  now,
			want: LabelLate,
		},
		{
			name: "excused but overtime",
			r:    usage(2, 1, start, ptr.Ptr(start.Add(25*time.Minute)), ptr.Ptr(start.Add(95*time.Minute))),
			prev: usage(1, 1, start.Add(-time.Hour), ptr.Ptr(start.Add(-time.Hour)), ptr.Ptr(start.Add(20*time.Minute))),
			now:  now,
			want: LabelOvertime,
		},
		{
			name: "active without end is normal",
			r:    usage(1, 1, start, ptr.Ptr(start), nil),
			now:  now,
			want: LabelNormal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.r, tt.prev, tt.now))
		})
	}
}

func TestClassifySequence_CascadingExcuse(t *testing.T) {
	start := at(monday, 9, 0)
	now := at(monday, 20, 0)

	// A overruns into B, B starts late and overruns into C, C starts late.
	a := usage(1, 1, start, ptr.Ptr(start), ptr.Ptr(start.Add(80*time.Minute)))
	b := usage(2, 1, start.Add(time.Hour), ptr.Ptr(start.Add(85*time.Minute)), ptr.Ptr(start.Add(130*time.Minute)))
	c := usage(3, 1, start.Add(2*time.Hour), ptr.Ptr(start.Add(140*time.Minute)), ptr.Ptr(start.Add(3*time.Hour)))
	// Same times on another equipment without overrunning predecessors
	d := usage(4, 2, start.Add(time.Hour), ptr.Ptr(start.Add(85*time.Minute)), ptr.Ptr(start.Add(2*time.Hour)))

	got := ClassifySequence([]*Reservation{c, d, b, a}, now)
	require.Len(t, got, 4)

	labels := make(map[int64]Label)
	for _, item := range got {
		labels[item.Reservation.ID] = item.Label
	}

	assert.Equal(t, LabelNormal, labels[1])
	assert.Equal(t, LabelNormal, labels[2])
	assert.Equal(t, LabelNormal, labels[3])
	assert.Equal(t, LabelLate, labels[4])

	assert.Equal(t, []int64{1, 2, 3, 4}, []int64{
		got[0].Reservation.ID, got[1].Reservation.ID, got[2].Reservation.ID, got[3].Reservation.ID,
	})
}

func TestPeriodKey(t *testing.T) {
	ts := time.Date(2025, 5, 14, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025-05-14", PeriodDay.Key(ts, time.UTC))
	assert.Equal(t, "2025-W20", PeriodWeek.Key(ts, time.UTC))
	assert.Equal(t, "2025-05", PeriodMonth.Key(ts, time.UTC))
	assert.Equal(t, "2025-Q2", PeriodQuarter.Key(ts, time.UTC))
	assert.Equal(t, "2025", PeriodYear.Key(ts, time.UTC))

	p, err := ParsePeriod("")
	require.NoError(t, err)
	assert.Equal(t, PeriodDay, p)
	_, err = ParsePeriod("decade")
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestAggregates(t *testing.T) {
	day1 := time.Date(2025, 5, 14, 10, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	completed := func(id int64, start time.Time, minutes int, cost float64, student, name, supervisor string) *Reservation {
		r := usage(id, 1, start, ptr.Ptr(start), ptr.Ptr(start.Add(time.Duration(minutes)*time.Minute)))
		r.TotalCost = ptr.Ptr(cost)
		r.Requester = Requester{StudentID: student, Name: name, Supervisor: supervisor}
		return r
	}

	rows := []*Reservation{
		completed(1, day1, 90, 20, "S1", "Alice", "Prof. Lee"),
		completed(2, day1.Add(2*time.Hour), 30, 10, "S2", "Bob", "Prof. Lee"),
		completed(3, day2, 60, 50, "S2", "Bob", "Prof. Kim"),
		{ID: 4, Status: StatusCancelled, RequestedStart: day2},
	}

	byDay := AggregateByPeriod(rows, PeriodDay, time.UTC)
	require.Len(t, byDay, 2)
	assert.Equal(t, "2025-05-15", byDay[0].Key)
	assert.Equal(t, 1.0, byDay[0].TotalHours)
	assert.Equal(t, 50.0, byDay[0].TotalRevenue)
	assert.Equal(t, "2025-05-14", byDay[1].Key)
	assert.Equal(t, 2.0, byDay[1].TotalHours)
	assert.Equal(t, 30.0, byDay[1].TotalRevenue)
	assert.Equal(t, 2, byDay[1].Count)

	byPerson := AggregateByPerson(rows)
	require.Len(t, byPerson, 2)
	assert.Equal(t, "Bob", byPerson[0].Name)
	assert.Equal(t, 60.0, byPerson[0].TotalRevenue)
	assert.Equal(t, 1.5, byPerson[0].TotalHours)

	bySupervisor := AggregateBySupervisor(rows)
	require.Len(t, bySupervisor, 2)
	assert.Equal(t, "Prof. Kim", bySupervisor[0].Name)
	assert.Equal(t, "Prof. Lee", bySupervisor[1].Name)
	assert.Equal(t, 30.0, bySupervisor[1].TotalRevenue)
}
