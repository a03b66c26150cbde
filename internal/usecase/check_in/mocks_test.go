package check_in

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
)

type mockEquipmentRepo struct{ mock.Mock }

func (m *mockEquipmentRepo) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

type mockReservationRepo struct{ mock.Mock }

func (m *mockReservationRepo) GetByCode(ctx context.Context, code string) (*domain.Reservation, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *mockReservationRepo) Update(ctx context.Context, r *domain.Reservation) error {
	return m.Called(ctx, r).Error(0)
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recorder struct {
	outcomes []string
}

func (r *recorder) ObserveTransition(transition, outcome string) {
	r.outcomes = append(r.outcomes, transition+":"+outcome)
}
