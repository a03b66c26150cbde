package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	equipmentRepo "github.com/m04kA/SMC-LabBookingService/internal/infra/storage/equipment"
	reservationRepo "github.com/m04kA/SMC-LabBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-LabBookingService/internal/usecase/validation"
)

const maxCodeAttempts = 5

const transitionCreate = "create"

// UseCase use case для создания бронирования
type UseCase struct {
	equipmentRepo   EquipmentRepository
	reservationRepo ReservationRepository
	validator       Validator
	txManager       TransactionManager
	recorder        TransitionRecorder
	timeProvider    TimeProvider
	newCode         func() string
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	equipmentRepo EquipmentRepository,
	reservationRepo ReservationRepository,
	validator Validator,
	txManager TransactionManager,
	recorder TransitionRecorder,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	return &UseCase{
		equipmentRepo:   equipmentRepo,
		reservationRepo: reservationRepo,
		validator:       validator,
		txManager:       txManager,
		recorder:        recorder,
		timeProvider:    timeProvider,
		newCode:         domain.NewBookingCode,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Чтение, проверка и запись выполняются в одной сериализуемой транзакции,
// строка оборудования блокируется первой.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (resp *Response, err error) {
	uc.logger.Info("CreateReservation: equipment=%d, requester=%q, start=%s, end=%s",
		req.EquipmentID, req.Requester.Name, req.Start.Format(time.RFC3339), req.End.Format(time.RFC3339))

	defer func() { uc.recorder.ObserveTransition(transitionCreate, domain.Outcome(err)) }()

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: invalid input: %v", err)
		return nil, err
	}

	var result *domain.Reservation

	// 2. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Получаем оборудование с блокировкой строки
		equipment, err := uc.equipmentRepo.GetByID(txCtx, req.EquipmentID)
		if err != nil {
			if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
				uc.logger.Warn("CreateReservation: equipment id=%d not found", req.EquipmentID)
				return domain.ErrEquipmentNotFound
			}
			uc.logger.Error("CreateReservation: failed to get equipment id=%d: %v", req.EquipmentID, err)
			return fmt.Errorf("%w: failed to get equipment: %v", ErrInternal, err)
		}

		// 2.2. Конфигурация доступности (при ошибке разбора - разрешающая по умолчанию)
		availability, err := equipment.AvailabilityOrDefault()
		if err != nil {
			uc.logger.Warn("CreateReservation: malformed availability config for equipment id=%d, using defaults: %v",
				equipment.ID, err)
		}

		// 2.3. Проверки политики и пересечений
		check, err := uc.validator.Validate(txCtx, &validation.Request{
			Equipment:     equipment,
			Availability:  availability,
			Start:         req.Start,
			End:           req.End,
			RequesterName: req.Requester.Name,
		})
		if err != nil {
			if errors.Is(err, validation.ErrInternal) {
				uc.logger.Error("CreateReservation: validation failed for equipment id=%d: %v", equipment.ID, err)
				return fmt.Errorf("%w: %v", ErrInternal, err)
			}
			uc.logger.Warn("CreateReservation: rejected for equipment id=%d: %v", equipment.ID, err)
			return err
		}

		// 2.4. Подбираем свободный код бронирования
		code, err := uc.generateCode(txCtx)
		if err != nil {
			uc.logger.Error("CreateReservation: %v", err)
			return err
		}

		// 2.5. Создаем бронирование в начальном статусе
		reservation := domain.NewReservation(equipment, req.Requester, req.Start, req.End, check.OutOfHours, code)

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			if reservationRepo.IsConflict(err) {
				uc.logger.Warn("CreateReservation: slot taken concurrently for equipment id=%d", equipment.ID)
				return domain.ErrSlotConflict
			}
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if reservationRepo.IsConflict(err) {
			uc.logger.Warn("CreateReservation: serialization conflict for equipment id=%d", req.EquipmentID)
			return nil, domain.ErrSlotConflict
		}
		return nil, err
	}

	uc.logger.Info("CreateReservation: created reservation id=%d code=%s status=%s out_of_hours=%t",
		result.ID, result.BookingCode, result.Status, result.OutOfHours)

	return &Response{
		ID:             result.ID,
		EquipmentID:    result.EquipmentID,
		BookingCode:    result.BookingCode,
		Status:         string(result.Status),
		OutOfHours:     result.OutOfHours,
		RequestedStart: result.RequestedStart,
		RequestedEnd:   result.RequestedEnd,
		CreatedAt:      result.CreatedAt,
	}, nil
}

func (uc *UseCase) generateCode(ctx context.Context) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code := uc.newCode()
		exists, err := uc.reservationRepo.CodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("%w: check booking code: %v", ErrInternal, err)
		}
		if !exists {
			return code, nil
		}
	}
	return "", ErrCodeGeneration
}
