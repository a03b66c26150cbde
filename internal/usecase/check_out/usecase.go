package check_out

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

const transitionCheckOut = "check_out"

// UseCase use case для завершения использования и расчета стоимости
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

// Execute переводит бронирование active → completed и считает стоимость
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	uc.logger.Info("CheckOut: code=%s", req.BookingCode)

	defer func() { uc.recorder.ObserveTransition(transitionCheckOut, domain.Outcome(err)) }()

	if strings.TrimSpace(req.BookingCode) == "" {
		return nil, fmt.Errorf("%w: booking code is required", domain.ErrInvalidInput)
	}

	var result *domain.Reservation

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Бронирование по коду
		reservation, err := uc.reservationRepo.GetByCode(txCtx, req.BookingCode)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("CheckOut: reservation code=%s not found", req.BookingCode)
				return domain.ErrReservationNotFound
			}
			uc.logger.Error("CheckOut: failed to get reservation code=%s: %v", req.BookingCode, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// 2. Оборудование (тарифы)
		equipment, err := uc.equipmentRepo.GetByID(txCtx, reservation.EquipmentID)
		if err != nil {
			if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
				uc.logger.Warn("CheckOut: equipment id=%d not found", reservation.EquipmentID)
				return domain.ErrEquipmentNotFound
			}
			uc.logger.Error("CheckOut: failed to get equipment id=%d: %v", reservation.EquipmentID, err)
			return fmt.Errorf("%w: failed to get equipment: %v", ErrInternal, err)
		}

		// 3. Переход состояния и расчет стоимости
		if err := reservation.CheckOut(equipment, uc.timeProvider.Now()); err != nil {
			uc.logger.Warn("CheckOut: reservation id=%d status=%s: %v", reservation.ID, reservation.Status, err)
			return err
		}

		// 4. Сохранение
		if err := uc.reservationRepo.Update(txCtx, reservation); err != nil {
			uc.logger.Error("CheckOut: failed to update reservation id=%d: %v", reservation.ID, err)
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}

		result = reservation
		return nil
	})
	if err != nil {
		if reservationRepo.IsConflict(err) {
			uc.logger.Warn("CheckOut: concurrent update for code=%s", req.BookingCode)
			return nil, domain.ErrSlotConflict
		}
		return nil, err
	}

	uc.logger.Info("CheckOut: reservation id=%d completed, total_cost=%.2f", result.ID, ptr.Value(result.TotalCost))

	return &Response{
		ID:                 result.ID,
		BookingCode:        result.BookingCode,
		Status:             string(result.Status),
		ActualStart:        ptr.Value(result.ActualStart),
		ActualEnd:          ptr.Value(result.ActualEnd),
		ConsumableQuantity: result.ConsumableQuantity,
		TotalCost:          ptr.Value(result.TotalCost),
	}, nil
}
