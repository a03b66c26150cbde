package validation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	"github.com/m04kA/SMC-LabBookingService/pkg/clock"
)

type mockReservationRepo struct {
	mock.Mock
}

func (m *mockReservationRepo) FindOverlapping(ctx context.Context, equipmentID int64, window domain.TimeRange, excludeID int64) ([]*domain.Reservation, error) {
	args := m.Called(ctx, equipmentID, window, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

var loc = time.FixedZone("CST", 8*60*60)

// Monday 2025-06-02 08:00 local
var now = time.Date(2025, 6, 2, 8, 0, 0, 0, loc)

func localAt(daysFromNow, hour, minute int) time.Time {
	return time.Date(2025, 6, 2+daysFromNow, hour, minute, 0, 0, loc)
}

func newRequest(start, end time.Time) *Request {
	rules := make([]domain.Rule, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		rules = append(rules, domain.Rule{DayOfWeek: d, OpenMinute: 9 * 60, CloseMinute: 17 * 60})
	}
	return &Request{
		Equipment: &domain.Equipment{ID: 1, Name: "Confocal", AutoApprove: true},
		Availability: domain.Availability{
			Rules:              rules,
			AdvanceDays:        7,
			MinDurationMinutes: 30,
			MaxDurationMinutes: 120,
		},
		Start:         start,
		End:           end,
		RequesterName: "Alice",
	}
}

func TestCheckPolicy(t *testing.T) {
	tests := []struct {
		name           string
		modify         func(r *Request)
		start, end     time.Time
		wantErr        error
		wantOutOfHours bool
	}{
		{name: "valid in hours", start: localAt(0, 10, 0), end: localAt(0, 11, 0)},
		{name: "end equals start", start: localAt(0, 10, 0), end: localAt(0, 10, 0), wantErr: domain.ErrEndBeforeStart},
		{name: "too short", start: localAt(0, 10, 0), end: localAt(0, 10, 29), wantErr: domain.ErrDurationOutOfBounds},
		{name: "too long", start: localAt(0, 10, 0), end: localAt(0, 12, 1), wantErr: domain.ErrDurationOutOfBounds},
		{name: "in the past", start: localAt(0, 7, 0), end: localAt(0, 8, 0), wantErr: domain.ErrStartInPast},
		{name: "duration checked before past", start: localAt(-1, 10, 0), end: localAt(-1, 10, 5), wantErr: domain.ErrDurationOutOfBounds},
		{
			name:           "horizon last minute accepted out of hours",
			modify:         func(r *Request) { r.Equipment.AllowOutOfHours = true },
			start:          localAt(7, 23, 0),
			end:            localAt(7, 23, 59),
			wantOutOfHours: true,
		},
		{name: "horizon next day rejected", start: localAt(8, 10, 0), end: localAt(8, 11, 0), wantErr: domain.ErrBeyondHorizon},
		{
			name:    "not whitelisted",
			modify:  func(r *Request) { r.Equipment.WhitelistEnabled = true; r.Equipment.Whitelist = "Bob" },
			start:   localAt(0, 10, 0),
			end:     localAt(0, 11, 0),
			wantErr: domain.ErrNeedsWhitelist,
		},
		{
			name:   "whitelisted with surrounding spaces",
			modify: func(r *Request) { r.Equipment.WhitelistEnabled = true; r.Equipment.Whitelist = "Bob，Alice"; r.RequesterName = " Alice " },
			start:  localAt(0, 10, 0),
			end:    localAt(0, 11, 0),
		},
		{name: "closed", start: localAt(0, 16, 30), end: localAt(0, 17, 30), wantErr: domain.ErrEquipmentClosed},
		{
			name:           "out of hours allowed",
			modify:         func(r *Request) { r.Equipment.AllowOutOfHours = true },
			start:          localAt(0, 16, 30),
			end:            localAt(0, 17, 30),
			wantOutOfHours: true,
		},
		{
			name:    "whitelist checked before hours",
			modify:  func(r *Request) { r.Equipment.WhitelistEnabled = true },
			start:   localAt(0, 18, 0),
			end:     localAt(0, 19, 0),
			wantErr: domain.ErrNeedsWhitelist,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest(tt.start, tt.end)
			if tt.modify != nil {
				tt.modify(req)
			}

			outOfHours, err := CheckPolicy(req, now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOutOfHours, outOfHours)
		})
	}
}

func TestCheckPolicy_ErrorKinds(t *testing.T) {
	req := newRequest(localAt(9, 10, 0), localAt(9, 11, 0))
	_, err := CheckPolicy(req, now)
	assert.ErrorIs(t, err, domain.ErrValidationFailed)

	req = newRequest(localAt(0, 10, 0), localAt(0, 11, 0))
	req.Equipment.WhitelistEnabled = true
	_, err = CheckPolicy(req, now)
	assert.ErrorIs(t, err, domain.ErrNeedsWhitelistApplication)
}

func TestValidator_Validate(t *testing.T) {
	ctx := context.Background()
	start, end := localAt(1, 10, 0), localAt(1, 11, 0)
	window := domain.TimeRange{Start: start, End: end}

	t.Run("free slot", func(t *testing.T) {
		repo := &mockReservationRepo{}
		repo.On("FindOverlapping", ctx, int64(1), window, int64(0)).Return([]*domain.Reservation{}, nil)

		v := NewValidator(repo, &clock.Fixed{T: now})
		result, err := v.Validate(ctx, newRequest(start, end))
		require.NoError(t, err)
		assert.False(t, result.OutOfHours)
		repo.AssertExpectations(t)
	})

	t.Run("conflict", func(t *testing.T) {
		repo := &mockReservationRepo{}
		repo.On("FindOverlapping", ctx, int64(1), window, int64(5)).
			Return([]*domain.Reservation{{ID: 6, BookingCode: "FFFF0000"}}, nil)

		req := newRequest(start, end)
		req.ExcludeReservationID = 5
		_, err := NewValidator(repo, &clock.Fixed{T: now}).Validate(ctx, req)
		assert.ErrorIs(t, err, domain.ErrSlotConflict)
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("policy failure skips storage", func(t *testing.T) {
		repo := &mockReservationRepo{}
		_, err := NewValidator(repo, &clock.Fixed{T: now}).Validate(ctx, newRequest(end, start))
		assert.ErrorIs(t, err, domain.ErrEndBeforeStart)
		repo.AssertNotCalled(t, "FindOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("storage failure", func(t *testing.T) {
		repo := &mockReservationRepo{}
		repo.On("FindOverlapping", ctx, int64(1), window, int64(0)).Return(nil, errors.New("db down"))

		_, err := NewValidator(repo, &clock.Fixed{T: now}).Validate(ctx, newRequest(start, end))
		assert.ErrorIs(t, err, ErrInternal)
	})
}
