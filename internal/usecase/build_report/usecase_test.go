package build_report

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
	"github.com/m04kA/SMC-LabBookingService/pkg/logger"
	"github.com/m04kA/SMC-LabBookingService/pkg/ptr"
)

type mockReservationRepo struct{ mock.Mock }

func (m *mockReservationRepo) ListForReport(ctx context.Context, from, to time.Time, equipmentID *int64) ([]*domain.Reservation, error) {
	args := m.Called(ctx, from, to, equipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Reservation), args.Error(1)
}

var (
	day  = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	from = day
	to   = day.AddDate(0, 0, 1)
	now  = day.AddDate(0, 0, 2)
)

func completed(id int64, name, supervisor string, hour int, late, used time.Duration, cost float64) *domain.Reservation {
	start := day.Add(time.Duration(hour) * time.Hour)
	actualStart := start.Add(late)
	actualEnd := actualStart.Add(used)
	return &domain.Reservation{
		ID:             id,
		EquipmentID:    1,
		Requester:      domain.Requester{Name: name, StudentID: "S" + name, Supervisor: supervisor},
		RequestedStart: start,
		RequestedEnd:   start.Add(time.Hour),
		Status:         domain.StatusCompleted,
		ActualStart:    &actualStart,
		ActualEnd:      &actualEnd,
		TotalCost:      ptr.Ptr(cost),
	}
}

func TestUseCase_Execute(t *testing.T) {
	repo := &mockReservationRepo{}
	uc := NewUseCase(repo, &clock.Fixed{T: now}, logger.NewNop())

	// first runs 30 minutes over and excuses the second's late start
	first := completed(1, "Alice", "Prof. Lee", 9, 0, 90*time.Minute, 20)
	second := completed(2, "Bob", "Prof. Kim", 10, 35*time.Minute, 30*time.Minute, 10)
	cancelled := &domain.Reservation{
		ID: 3, EquipmentID: 1, Requester: domain.Requester{Name: "Alice"},
		RequestedStart: day.Add(14 * time.Hour), RequestedEnd: day.Add(15 * time.Hour),
		Status: domain.StatusCancelled,
	}

	repo.On("ListForReport", mock.Anything, from, to, (*int64)(nil)).
		Return([]*domain.Reservation{first, second, cancelled}, nil)

	resp, err := uc.Execute(context.Background(), &Request{From: from, To: to, Period: "month"})
	require.NoError(t, err)

	require.Len(t, resp.Rows, 3)
	assert.Equal(t, domain.LabelNormal, resp.Rows[1].Label)
	assert.Equal(t, 1, resp.LabelCounts[domain.LabelCancelled])
	assert.Equal(t, 2, resp.Totals.Count)
	assert.InDelta(t, 2.0, resp.Totals.TotalHours, 0.001)
	assert.InDelta(t, 30, resp.Totals.TotalRevenue, 0.001)
	require.Len(t, resp.ByPeriod, 1)
	assert.Equal(t, "2025-06", resp.ByPeriod[0].Key)
	require.Len(t, resp.ByPerson, 2)
	assert.Equal(t, "Alice", resp.ByPerson[0].Name)
}

func TestUseCase_Execute_FilterKeepsPredecessor(t *testing.T) {
	repo := &mockReservationRepo{}
	uc := NewUseCase(repo, &clock.Fixed{T: now}, logger.NewNop())

	first := completed(1, "Alice", "Prof. Lee", 9, 0, 90*time.Minute, 20)
	second := completed(2, "Bob", "Prof. Kim", 10, 35*time.Minute, 30*time.Minute, 10)
	repo.On("ListForReport", mock.Anything, from, to, mock.Anything).
		Return([]*domain.Reservation{first, second}, nil)

	resp, err := uc.Execute(context.Background(), &Request{From: from, To: to, StudentName: "bob"})
	require.NoError(t, err)

	// Alice is filtered out but still excuses Bob's lateness
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, int64(2), resp.Rows[0].Reservation.ID)
	assert.Equal(t, domain.LabelNormal, resp.Rows[0].Label)
	assert.Equal(t, domain.PeriodDay, resp.Period)
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	repo := &mockReservationRepo{}
	uc := NewUseCase(repo, &clock.Fixed{T: now}, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{From: to, To: from})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{From: from, To: to, Period: "decade"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	repo.On("ListForReport", mock.Anything, from, to, mock.Anything).Return(nil, errors.New("timeout"))
	_, err = uc.Execute(context.Background(), &Request{From: from, To: to})
	assert.ErrorIs(t, err, ErrInternal)
}
