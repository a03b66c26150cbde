package whitelist

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	equipmentRepo "github.com/m04kA/SMC-LabBookingService/internal/infra/storage/equipment"
	whitelistRepo "github.com/m04kA/SMC-LabBookingService/internal/infra/storage/whitelist"
	"github.com/m04kA/SMC-LabBookingService/internal/service/whitelist/models"
)

// Service сервис заявок на допуск к оборудованию
type Service struct {
	applicationRepo ApplicationRepository
	equipmentRepo   EquipmentRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса заявок
func NewService(
	applicationRepo ApplicationRepository,
	equipmentRepo EquipmentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		applicationRepo: applicationRepo,
		equipmentRepo:   equipmentRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// Apply создает заявку на допуск. Повторная заявка того же человека
// на то же оборудование возвращает уже ожидающую.
// Публичный метод
func (s *Service) Apply(ctx context.Context, equipmentID int64, req *models.ApplyRequest) (*models.ApplicationResponse, error) {
	s.logger.Info("Apply: application for equipment=%d from %q", equipmentID, req.StudentName)

	requester := req.ToDomainRequester()
	if requester.Name == "" {
		return nil, fmt.Errorf("%w: student name is required", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(requester.Name) > domain.MaxRequesterNameLength {
		return nil, fmt.Errorf("%w: student name is longer than %d characters",
			domain.ErrInvalidInput, domain.MaxRequesterNameLength)
	}

	var result *domain.WhitelistApplication

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Оборудование должно существовать
		if _, err := s.getEquipment(txCtx, "Apply", equipmentID); err != nil {
			return err
		}

		// 2. Ожидающая заявка уже есть
		existing, err := s.applicationRepo.FindPending(txCtx, equipmentID, requester.Name)
		if err == nil {
			s.logger.Info("Apply: pending application id=%d already exists", existing.ID)
			result = existing
			return nil
		}
		if !errors.Is(err, whitelistRepo.ErrApplicationNotFound) {
			s.logger.Error("Apply: failed to look up pending application: %v", err)
			return fmt.Errorf("%w: Apply - repository error: %v", ErrInternal, err)
		}

		// 3. Создаем заявку
		created, err := s.applicationRepo.Create(txCtx, domain.NewWhitelistApplication(equipmentID, requester))
		if err != nil {
			s.logger.Error("Apply: failed to create application: %v", err)
			return fmt.Errorf("%w: Apply - repository error: %v", ErrInternal, err)
		}
		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Apply: application id=%d status=%s", result.ID, result.Status)
	return models.FromDomainApplication(result), nil
}

// Approve одобряет заявку и добавляет имя заявителя в список допуска.
// Бронирование при этом не создается.
// Доступно только администратору
func (s *Service) Approve(ctx context.Context, id int64) (*models.ApplicationResponse, error) {
	s.logger.Info("Approve: approving application id=%d", id)

	var result *domain.WhitelistApplication

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		app, err := s.getApplication(txCtx, "Approve", id)
		if err != nil {
			return err
		}

		equipment, err := s.getEquipment(txCtx, "Approve", app.EquipmentID)
		if err != nil {
			return err
		}

		if err := app.Approve(equipment); err != nil {
			s.logger.Warn("Approve: application id=%d status=%s: %v", id, app.Status, err)
			return err
		}

		if err := s.equipmentRepo.UpdateWhitelist(txCtx, equipment.ID, equipment.Whitelist); err != nil {
			s.logger.Error("Approve: failed to update whitelist of equipment id=%d: %v", equipment.ID, err)
			return fmt.Errorf("%w: Approve - equipment repository error: %v", ErrInternal, err)
		}

		if err := s.updateStatus(txCtx, "Approve", app); err != nil {
			return err
		}

		result = app
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Approve: application id=%d approved, %q added to equipment id=%d",
		id, result.Requester.Name, result.EquipmentID)
	return models.FromDomainApplication(result), nil
}

// Reject отклоняет заявку
// Доступно только администратору
func (s *Service) Reject(ctx context.Context, id int64) (*models.ApplicationResponse, error) {
	s.logger.Info("Reject: rejecting application id=%d", id)

	var result *domain.WhitelistApplication

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		app, err := s.getApplication(txCtx, "Reject", id)
		if err != nil {
			return err
		}

		if err := app.Reject(); err != nil {
			s.logger.Warn("Reject: application id=%d status=%s: %v", id, app.Status, err)
			return err
		}

		if err := s.updateStatus(txCtx, "Reject", app); err != nil {
			return err
		}

		result = app
		return nil
	})
	if err != nil {
		return nil, err
	}

	return models.FromDomainApplication(result), nil
}

// List возвращает заявки, опционально по статусу
// Доступно только администратору
func (s *Service) List(ctx context.Context, status *string) (*models.ApplicationListResponse, error) {
	s.logger.Info("List: fetching applications, status=%v", status)

	var filter *domain.ApplicationStatus
	if status != nil {
		parsed, err := domain.ParseApplicationStatus(*status)
		if err != nil {
			s.logger.Warn("List: %v", err)
			return nil, err
		}
		filter = &parsed
	}

	items, err := s.applicationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainApplicationList(items), nil
}

// Вспомогательные методы

func (s *Service) getEquipment(ctx context.Context, method string, id int64) (*domain.Equipment, error) {
	equipment, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
			s.logger.Warn("%s: equipment id=%d not found", method, id)
			return nil, domain.ErrEquipmentNotFound
		}
		s.logger.Error("%s: failed to get equipment id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - equipment repository error: %v", ErrInternal, method, err)
	}
	return equipment, nil
}

func (s *Service) getApplication(ctx context.Context, method string, id int64) (*domain.WhitelistApplication, error) {
	app, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, whitelistRepo.ErrApplicationNotFound) {
			s.logger.Warn("%s: application id=%d not found", method, id)
			return nil, domain.ErrApplicationNotFound
		}
		s.logger.Error("%s: failed to get application id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return app, nil
}

func (s *Service) updateStatus(ctx context.Context, method string, app *domain.WhitelistApplication) error {
	if err := s.applicationRepo.UpdateStatus(ctx, app.ID, app.Status); err != nil {
		if errors.Is(err, whitelistRepo.ErrApplicationNotFound) {
			return domain.ErrApplicationNotFound
		}
		s.logger.Error("%s: failed to update application id=%d: %v", method, app.ID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return nil
}
