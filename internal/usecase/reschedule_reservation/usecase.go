package reschedule_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	equipmentRepo "github.com/m04kA/SMC-LabBookingService/internal/infra/storage/equipment"
	reservationRepo "github.com/m04kA/SMC-LabBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-LabBookingService/internal/usecase/validation"
)

const transitionReschedule = "reschedule"

// UseCase use case для однократного переноса бронирования
type UseCase struct {
	equipmentRepo   EquipmentRepository
	reservationRepo ReservationRepository
	validator       Validator
	txManager       TransactionManager
	recorder        TransitionRecorder
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	equipmentRepo EquipmentRepository,
	reservationRepo ReservationRepository,
	validator Validator,
	txManager TransactionManager,
	recorder TransitionRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		equipmentRepo:   equipmentRepo,
		reservationRepo: reservationRepo,
		validator:       validator,
		txManager:       txManager,
		recorder:        recorder,
		logger:          logger,
	}
}

// Execute переносит бронирование на новое окно.
// Статус и лимит переносов проверяются до валидации нового окна,
// пересечение с собственным старым окном не считается конфликтом.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	uc.logger.Info("RescheduleReservation: code=%s, start=%s, end=%s",
		req.BookingCode, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339))

	defer func() { uc.recorder.ObserveTransition(transitionReschedule, domain.Outcome(err)) }()

	// 1. Валидация входных данных
	if strings.TrimSpace(req.BookingCode) == "" {
		return nil, fmt.Errorf("%w: booking code is required", domain.ErrInvalidInput)
	}
	if req.Start.IsZero() || req.End.IsZero() {
		return nil, fmt.Errorf("%w: start and end are required", domain.ErrInvalidInput)
	}

	var result *domain.Reservation

	// 2. Чтение, проверка и запись в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Бронирование по коду
		reservation, err := uc.reservationRepo.GetByCode(txCtx, req.BookingCode)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("RescheduleReservation: reservation code=%s not found", req.BookingCode)
				return domain.ErrReservationNotFound
			}
			uc.logger.Error("RescheduleReservation: failed to get reservation code=%s: %v", req.BookingCode, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// 2.2. Статус и лимит переносов до проверки окна
		if err := reservation.CanReschedule(); err != nil {
			uc.logger.Warn("RescheduleReservation: reservation id=%d status=%s modified=%d: %v",
				reservation.ID, reservation.Status, reservation.ModifiedCount, err)
			return err
		}

		// 2.3. Оборудование с блокировкой строки
		equipment, err := uc.equipmentRepo.GetByID(txCtx, reservation.EquipmentID)
		if err != nil {
			if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
				uc.logger.Warn("RescheduleReservation: equipment id=%d not found", reservation.EquipmentID)
				return domain.ErrEquipmentNotFound
			}
			uc.logger.Error("RescheduleReservation: failed to get equipment id=%d: %v", reservation.EquipmentID, err)
			return fmt.Errorf("%w: failed to get equipment: %v", ErrInternal, err)
		}

		availability, err := equipment.AvailabilityOrDefault()
		if err != nil {
			uc.logger.Warn("RescheduleReservation: malformed availability config for equipment id=%d, using defaults: %v",
				equipment.ID, err)
		}

		// 2.4. Проверка нового окна без учета самого бронирования
		check, err := uc.validator.Validate(txCtx, &validation.Request{
			Equipment:            equipment,
			Availability:         availability,
			Start:                req.Start,
			End:                  req.End,
			RequesterName:        reservation.Requester.Name,
			ExcludeReservationID: reservation.ID,
		})
		if err != nil {
			if errors.Is(err, validation.ErrInternal) {
				uc.logger.Error("RescheduleReservation: validation failed for reservation id=%d: %v", reservation.ID, err)
				return fmt.Errorf("%w: %v", ErrInternal, err)
			}
			uc.logger.Warn("RescheduleReservation: rejected for reservation id=%d: %v", reservation.ID, err)
			return err
		}

		// 2.5. Перенос и сохранение
		if err := reservation.Reschedule(equipment, req.Start, req.End, check.OutOfHours); err != nil {
			return err
		}

		if err := uc.reservationRepo.Update(txCtx, reservation); err != nil {
			if reservationRepo.IsConflict(err) {
				uc.logger.Warn("RescheduleReservation: slot taken concurrently for reservation id=%d", reservation.ID)
				return domain.ErrSlotConflict
			}
			uc.logger.Error("RescheduleReservation: failed to update reservation id=%d: %v", reservation.ID, err)
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}

		result = reservation
		return nil
	})

	if err != nil {
		if reservationRepo.IsConflict(err) {
			uc.logger.Warn("RescheduleReservation: serialization conflict for code=%s", req.BookingCode)
			return nil, domain.ErrSlotConflict
		}
		return nil, err
	}

	uc.logger.Info("RescheduleReservation: reservation id=%d moved, status=%s", result.ID, result.Status)

	return &Response{
		ID:             result.ID,
		BookingCode:    result.BookingCode,
		Status:         string(result.Status),
		OutOfHours:     result.OutOfHours,
		ModifiedCount:  result.ModifiedCount,
		RequestedStart: result.RequestedStart,
		RequestedEnd:   result.RequestedEnd,
	}, nil
}
