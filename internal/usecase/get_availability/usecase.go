package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	equipmentRepo "github.com/m04kA/SMC-LabBookingService/internal/infra/storage/equipment"
)

// UseCase use case для получения доступности оборудования на дату
type UseCase struct {
	equipmentRepo   EquipmentRepository
	reservationRepo ReservationRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	equipmentRepo EquipmentRepository,
	reservationRepo ReservationRepository,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		equipmentRepo:   equipmentRepo,
		reservationRepo: reservationRepo,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute возвращает рабочие окна, занятые окна и ограничения длительности на дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	now := uc.timeProvider.Now()
	loc := now.Location()
	date := req.Date.In(loc)

	uc.logger.Info("GetAvailability: equipment=%d, date=%s", req.EquipmentID, date.Format(domain.DateFormat))

	// 1. Получаем оборудование
	equipment, err := uc.equipmentRepo.GetByID(ctx, req.EquipmentID)
	if err != nil {
		if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
			uc.logger.Warn("GetAvailability: equipment id=%d not found", req.EquipmentID)
			return nil, domain.ErrEquipmentNotFound
		}
		uc.logger.Error("GetAvailability: failed to get equipment id=%d: %v", req.EquipmentID, err)
		return nil, fmt.Errorf("%w: failed to get equipment: %v", ErrInternal, err)
	}

	// 2. Конфигурация доступности
	availability, err := equipment.AvailabilityOrDefault()
	if err != nil {
		uc.logger.Warn("GetAvailability: malformed availability config for equipment id=%d, using defaults: %v",
			equipment.ID, err)
	}

	// 3. Открытые бронирования, начинающиеся в этот день
	day := domain.DayRange(date, loc)
	reservations, err := uc.reservationRepo.ListOpenStartingBetween(ctx, equipment.ID, day.Start, day.End)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to list reservations for equipment id=%d: %v", equipment.ID, err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	booked := make([]BookedRange, 0, len(reservations))
	for _, r := range reservations {
		booked = append(booked, BookedRange{
			Start:  r.RequestedStart,
			End:    r.RequestedEnd,
			Status: r.Status,
		})
	}

	open := availability.OpenRanges(date, loc)
	if open == nil {
		open = []domain.TimeRange{}
	}

	return &Response{
		EquipmentID:        equipment.ID,
		Date:               day.Start,
		OpenRanges:         open,
		BookedRanges:       booked,
		MinDurationMinutes: availability.MinDurationMinutes,
		MaxDurationMinutes: availability.MaxDurationMinutes,
		AdvanceDays:        availability.AdvanceDays,
		AllowOutOfHours:    equipment.AllowOutOfHours,
		WithinHorizon:      availability.WithinHorizon(day.Start, now, loc),
	}, nil
}
