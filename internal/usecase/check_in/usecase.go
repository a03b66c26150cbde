package check_in

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	equipmentRepo "github.com/m04kA/SMC-LabBookingService/internal/infra/storage/equipment"
	reservationRepo "github.com/m04kA/SMC-LabBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-LabBookingService/pkg/ptr"
)

const transitionCheckIn = "check_in"

// UseCase use case для отметки о начале использования оборудования
type UseCase struct {
	equipmentRepo   EquipmentRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	recorder        TransitionRecorder
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	equipmentRepo EquipmentRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	recorder TransitionRecorder,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		equipmentRepo:   equipmentRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		recorder:        recorder,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute переводит бронирование approved → active в окне ±30 минут от начала
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	uc.logger.Info("CheckIn: code=%s", req.BookingCode)

	defer func() { uc.recorder.ObserveTransition(transitionCheckIn, domain.Outcome(err)) }()

	if strings.TrimSpace(req.BookingCode) == "" {
		return nil, fmt.Errorf("%w: booking code is required", domain.ErrInvalidInput)
	}

	var result *domain.Reservation

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Бронирование по коду
		reservation, err := uc.reservationRepo.GetByCode(txCtx, req.BookingCode)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("CheckIn: reservation code=%s not found", req.BookingCode)
				return domain.ErrReservationNotFound
			}
			uc.logger.Error("CheckIn: failed to get reservation code=%s: %v", req.BookingCode, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// 2. Оборудование (плата за материалы)
		equipment, err := uc.equipmentRepo.GetByID(txCtx, reservation.EquipmentID)
		if err != nil {
			if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
				uc.logger.Warn("CheckIn: equipment id=%d not found", reservation.EquipmentID)
				return domain.ErrEquipmentNotFound
			}
			uc.logger.Error("CheckIn: failed to get equipment id=%d: %v", reservation.EquipmentID, err)
			return fmt.Errorf("%w: failed to get equipment: %v", ErrInternal, err)
		}

		// 3. Переход состояния
		if err := reservation.CheckIn(equipment, uc.timeProvider.Now(), ptr.Value(req.ConsumableQuantity)); err != nil {
			uc.logger.Warn("CheckIn: reservation id=%d status=%s: %v", reservation.ID, reservation.Status, err)
			return err
		}

		// 4. Сохранение
		if err := uc.reservationRepo.Update(txCtx, reservation); err != nil {
			uc.logger.Error("CheckIn: failed to update reservation id=%d: %v", reservation.ID, err)
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}

		result = reservation
		return nil
	})
	if err != nil {
		if reservationRepo.IsConflict(err) {
			uc.logger.Warn("CheckIn: concurrent update for code=%s", req.BookingCode)
			return nil, domain.ErrSlotConflict
		}
		return nil, err
	}

	uc.logger.Info("CheckIn: reservation id=%d is active", result.ID)

	return &Response{
		ID:                 result.ID,
		BookingCode:        result.BookingCode,
		Status:             string(result.Status),
		ActualStart:        ptr.Value(result.ActualStart),
		ConsumableQuantity: result.ConsumableQuantity,
	}, nil
}
