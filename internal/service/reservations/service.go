package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	equipmentRepo "github.com/m04kA/SMC-LabBookingService/internal/infra/storage/equipment"
	reservationRepo "github.com/m04kA/SMC-LabBookingService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-LabBookingService/internal/service/reservations/models"
)

const (
	transitionCancel      = "cancel"
	transitionApprove     = "approve"
	transitionReject      = "reject"
	transitionSetStatus   = "admin_set_status"
	transitionEditActuals = "admin_edit_actuals"
	transitionAdminDelete = "admin_delete"
)

// Service сервис для работы с бронированиями: поиск, отмена, решения администратора
// и аудируемые административные правки
type Service struct {
	reservationRepo ReservationRepository
	equipmentRepo   EquipmentRepository
	auditRepo       AuditRepository
	txManager       TransactionManager
	recorder        TransitionRecorder
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	equipmentRepo EquipmentRepository,
	auditRepo AuditRepository,
	txManager TransactionManager,
	recorder TransitionRecorder,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		equipmentRepo:   equipmentRepo,
		auditRepo:       auditRepo,
		txManager:       txManager,
		recorder:        recorder,
		logger:          logger,
	}
}

// GetByCode находит бронирование по коду (без учета регистра) вместе с оборудованием
// Публичный метод
func (s *Service) GetByCode(ctx context.Context, code string) (*models.LookupResponse, error) {
	s.logger.Info("GetByCode: fetching reservation code=%s", code)

	reservation, err := s.reservationRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, s.mapReservationError("GetByCode", code, err)
	}

	// Оборудование может быть удалено: ссылка слабая
	equipment, err := s.equipmentRepo.GetByID(ctx, reservation.EquipmentID)
	if err != nil && !errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
		s.logger.Error("GetByCode: failed to get equipment id=%d: %v", reservation.EquipmentID, err)
		return nil, fmt.Errorf("%w: GetByCode - equipment repository error: %v", ErrInternal, err)
	}

	return &models.LookupResponse{
		ReservationResponse: *models.FromDomainReservation(reservation),
		Equipment:           models.FromDomainEquipmentSummary(equipment),
	}, nil
}

// Cancel отменяет бронирование по коду
// Отменить можно только pending или approved
func (s *Service) Cancel(ctx context.Context, code string) (resp *models.ReservationResponse, err error) {
	s.logger.Info("Cancel: cancelling reservation code=%s", code)
	defer func() { s.recorder.ObserveTransition(transitionCancel, domain.Outcome(err)) }()

	return s.transition(ctx, "Cancel", func(txCtx context.Context) (*domain.Reservation, error) {
		reservation, err := s.reservationRepo.GetByCode(txCtx, code)
		if err != nil {
			return nil, s.mapReservationError("Cancel", code, err)
		}
		if err := reservation.Cancel(); err != nil {
			s.logger.Warn("Cancel: reservation id=%d status=%s: %v", reservation.ID, reservation.Status, err)
			return nil, err
		}
		return reservation, nil
	})
}

// Approve подтверждает ожидающее бронирование
// Доступно только администратору
func (s *Service) Approve(ctx context.Context, id int64) (resp *models.ReservationResponse, err error) {
	s.logger.Info("Approve: approving reservation id=%d", id)
	defer func() { s.recorder.ObserveTransition(transitionApprove, domain.Outcome(err)) }()

	return s.transition(ctx, "Approve", func(txCtx context.Context) (*domain.Reservation, error) {
		reservation, err := s.getByID(txCtx, "Approve", id)
		if err != nil {
			return nil, err
		}
		if err := reservation.Approve(); err != nil {
			s.logger.Warn("Approve: reservation id=%d status=%s: %v", id, reservation.Status, err)
			return nil, err
		}
		return reservation, nil
	})
}

// Reject отклоняет ожидающее бронирование
// Доступно только администратору
func (s *Service) Reject(ctx context.Context, id int64) (resp *models.ReservationResponse, err error) {
	s.logger.Info("Reject: rejecting reservation id=%d", id)
	defer func() { s.recorder.ObserveTransition(transitionReject, domain.Outcome(err)) }()

	return s.transition(ctx, "Reject", func(txCtx context.Context) (*domain.Reservation, error) {
		reservation, err := s.getByID(txCtx, "Reject", id)
		if err != nil {
			return nil, err
		}
		if err := reservation.Reject(); err != nil {
			s.logger.Warn("Reject: reservation id=%d status=%s: %v", id, reservation.Status, err)
			return nil, err
		}
		return reservation, nil
	})
}

// AdminSetStatus устанавливает статус без правил переходов и пишет запись аудита
// Доступно только администратору
func (s *Service) AdminSetStatus(ctx context.Context, id int64, req *models.SetStatusRequest) (resp *models.ReservationResponse, err error) {
	s.logger.Info("AdminSetStatus: setting reservation id=%d to status=%s", id, req.Status)
	defer func() { s.recorder.ObserveTransition(transitionSetStatus, domain.Outcome(err)) }()

	status, err := domain.ParseReservationStatus(req.Status)
	if err != nil {
		s.logger.Warn("AdminSetStatus: %v", err)
		return nil, err
	}

	return s.audited(ctx, "AdminSetStatus", id, domain.AuditSetStatus, func(_ context.Context, reservation *domain.Reservation) error {
		reservation.SetStatus(status)
		return nil
	})
}

// AdminEditActuals перезаписывает фактические данные и пишет запись аудита
// Доступно только администратору
func (s *Service) AdminEditActuals(ctx context.Context, id int64, req *models.EditActualsRequest) (resp *models.ReservationResponse, err error) {
	s.logger.Info("AdminEditActuals: editing actuals of reservation id=%d", id)
	defer func() { s.recorder.ObserveTransition(transitionEditActuals, domain.Outcome(err)) }()

	return s.audited(ctx, "AdminEditActuals", id, domain.AuditEditActuals, func(txCtx context.Context, reservation *domain.Reservation) error {
		var equipment *domain.Equipment
		if req.Recalculate {
			eq, err := s.equipmentRepo.GetByID(txCtx, reservation.EquipmentID)
			if err != nil && !errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
				s.logger.Error("AdminEditActuals: failed to get equipment id=%d: %v", reservation.EquipmentID, err)
				return fmt.Errorf("%w: AdminEditActuals - equipment repository error: %v", ErrInternal, err)
			}
			equipment = eq
		}

		return reservation.ApplyOverride(equipment, domain.ActualsOverride{
			ActualStart:        req.ActualStart,
			ActualEnd:          req.ActualEnd,
			ConsumableQuantity: req.ConsumableQuantity,
			TotalCost:          req.TotalCost,
			Recalculate:        req.Recalculate,
		})
	})
}

// AdminDelete удаляет бронирование, сохраняя его снимок в журнале аудита
// Доступно только администратору
func (s *Service) AdminDelete(ctx context.Context, id int64) (err error) {
	s.logger.Info("AdminDelete: deleting reservation id=%d", id)
	defer func() { s.recorder.ObserveTransition(transitionAdminDelete, domain.Outcome(err)) }()

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		reservation, err := s.getByID(txCtx, "AdminDelete", id)
		if err != nil {
			return err
		}

		if err := s.writeAudit(txCtx, "AdminDelete", domain.AuditDelete, reservation, nil); err != nil {
			return err
		}

		if err := s.reservationRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return domain.ErrReservationNotFound
			}
			s.logger.Error("AdminDelete: repository error for reservation id=%d: %v", id, err)
			return fmt.Errorf("%w: AdminDelete - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("AdminDelete: successfully deleted reservation id=%d", id)
	return nil
}

// List возвращает бронирования, новые первыми
// Доступно только администратору
func (s *Service) List(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("List: fetching reservations, equipment=%v, status=%v", req.EquipmentID, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, err
	}

	items, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d reservations", len(items))
	return models.FromDomainReservationList(items), nil
}

// GetAudit возвращает журнал административных изменений бронирования
// Доступно только администратору. Журнал доступен и после удаления бронирования.
func (s *Service) GetAudit(ctx context.Context, id int64) (*models.AuditListResponse, error) {
	s.logger.Info("GetAudit: fetching audit of reservation id=%d", id)

	entries, err := s.auditRepo.ListByReservation(ctx, id)
	if err != nil {
		s.logger.Error("GetAudit: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetAudit - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAuditList(entries), nil
}

// Вспомогательные методы

// transition выполняет переход состояния в сериализуемой транзакции и сохраняет результат
func (s *Service) transition(
	ctx context.Context,
	method string,
	apply func(txCtx context.Context) (*domain.Reservation, error),
) (*models.ReservationResponse, error) {
	var result *domain.Reservation

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		reservation, err := apply(txCtx)
		if err != nil {
			return err
		}
		if err := s.update(txCtx, method, reservation); err != nil {
			return err
		}
		result = reservation
		return nil
	})
	if err != nil {
		return nil, s.mapTxError(method, err)
	}

	s.logger.Info("%s: reservation id=%d is now %s", method, result.ID, result.Status)
	return models.FromDomainReservation(result), nil
}

// audited применяет административную правку и записывает снимки до и после
func (s *Service) audited(
	ctx context.Context,
	method string,
	id int64,
	action domain.AuditAction,
	apply func(txCtx context.Context, reservation *domain.Reservation) error,
) (*models.ReservationResponse, error) {
	var result *domain.Reservation

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		reservation, err := s.getByID(txCtx, method, id)
		if err != nil {
			return err
		}

		before := reservation.Clone()
		if err := apply(txCtx, reservation); err != nil {
			s.logger.Warn("%s: reservation id=%d: %v", method, id, err)
			return err
		}

		if err := s.update(txCtx, method, reservation); err != nil {
			return err
		}
		if err := s.writeAudit(txCtx, method, action, before, reservation); err != nil {
			return err
		}

		result = reservation
		return nil
	})
	if err != nil {
		return nil, s.mapTxError(method, err)
	}

	s.logger.Info("%s: reservation id=%d updated, status=%s", method, result.ID, result.Status)
	return models.FromDomainReservation(result), nil
}

func (s *Service) writeAudit(ctx context.Context, method string, action domain.AuditAction, before, after *domain.Reservation) error {
	entry, err := domain.NewAuditEntry(action, before, after)
	if err != nil {
		s.logger.Error("%s: failed to build audit entry for reservation id=%d: %v", method, before.ID, err)
		return fmt.Errorf("%w: %s - build audit entry: %v", ErrInternal, method, err)
	}
	if _, err := s.auditRepo.Create(ctx, entry); err != nil {
		s.logger.Error("%s: failed to write audit entry for reservation id=%d: %v", method, before.ID, err)
		return fmt.Errorf("%w: %s - audit repository error: %v", ErrInternal, method, err)
	}
	return nil
}

func (s *Service) getByID(ctx context.Context, method string, id int64) (*domain.Reservation, error) {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapReservationError(method, fmt.Sprintf("id=%d", id), err)
	}
	return reservation, nil
}

func (s *Service) update(ctx context.Context, method string, reservation *domain.Reservation) error {
	if err := s.reservationRepo.Update(ctx, reservation); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return domain.ErrReservationNotFound
		}
		if reservationRepo.IsConflict(err) {
			s.logger.Warn("%s: reservation id=%d conflicts with an open reservation", method, reservation.ID)
			return domain.ErrSlotConflict
		}
		s.logger.Error("%s: repository error for reservation id=%d: %v", method, reservation.ID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return nil
}

func (s *Service) mapReservationError(method, key string, err error) error {
	if errors.Is(err, reservationRepo.ErrReservationNotFound) {
		s.logger.Warn("%s: reservation %s not found", method, key)
		return domain.ErrReservationNotFound
	}
	s.logger.Error("%s: repository error for reservation %s: %v", method, key, err)
	return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
}

func (s *Service) mapTxError(method string, err error) error {
	if reservationRepo.IsConflict(err) {
		s.logger.Warn("%s: serialization conflict: %v", method, err)
		return domain.ErrSlotConflict
	}
	return err
}
