package equipment

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	equipmentRepo "github.com/m04kA/SMC-LabBookingService/internal/infra/storage/equipment"
	"github.com/m04kA/SMC-LabBookingService/internal/service/equipment/models"
)

// Service сервис для администрирования оборудования
type Service struct {
	equipmentRepo   EquipmentRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса оборудования
func NewService(
	equipmentRepo EquipmentRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		equipmentRepo:   equipmentRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// List возвращает все оборудование
// Публичный метод
func (s *Service) List(ctx context.Context) (*models.EquipmentListResponse, error) {
	s.logger.Info("List: fetching equipment")

	items, err := s.equipmentRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d items", len(items))
	return models.FromDomainEquipmentList(items), nil
}

// Get возвращает оборудование по ID
// Публичный метод
func (s *Service) Get(ctx context.Context, id int64) (*models.EquipmentResponse, error) {
	s.logger.Info("Get: fetching equipment id=%d", id)

	equipment, err := s.getEquipment(ctx, "Get", id)
	if err != nil {
		return nil, err
	}

	return models.FromDomainEquipment(equipment), nil
}

// Create создает оборудование
// Доступно только администратору
func (s *Service) Create(ctx context.Context, req *models.CreateEquipmentRequest) (*models.EquipmentResponse, error) {
	s.logger.Info("Create: creating equipment name=%q", req.Name)

	// 1. Собираем доменную модель
	equipment := &domain.Equipment{
		Name:             domain.NormalizeName(req.Name),
		Description:      req.Description,
		AllowOutOfHours:  req.AllowOutOfHours,
		AutoApprove:      req.AutoApprove,
		PriceType:        domain.PriceType(req.PriceType),
		Price:            req.Price,
		ConsumableFee:    req.ConsumableFee,
		WhitelistEnabled: req.WhitelistEnabled,
		Whitelist:        req.Whitelist,
	}
	if equipment.PriceType == "" {
		equipment.PriceType = domain.PriceTypePerHour
	}

	availability := domain.DefaultAvailability()
	if req.Availability != nil {
		parsed, err := req.Availability.ToDomainAvailability()
		if err != nil {
			s.logger.Warn("Create: invalid availability: %v", err)
			return nil, err
		}
		availability = parsed
	}

	// 2. Валидируем
	if err := s.applyAvailability(equipment, availability); err != nil {
		return nil, err
	}
	if err := validateEquipment(equipment); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	// 3. Сохраняем
	created, err := s.equipmentRepo.Create(ctx, equipment)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created equipment id=%d", created.ID)
	return models.FromDomainEquipment(created), nil
}

// Update обновляет переданные поля оборудования
// Доступно только администратору
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateEquipmentRequest) (*models.EquipmentResponse, error) {
	s.logger.Info("Update: updating equipment id=%d", id)

	var result *domain.Equipment

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Текущее состояние с блокировкой строки
		equipment, err := s.getEquipment(txCtx, "Update", id)
		if err != nil {
			return err
		}

		// 2. Применяем изменения
		if err := s.applyUpdate(equipment, req); err != nil {
			s.logger.Warn("Update: invalid request for equipment id=%d: %v", id, err)
			return err
		}
		if err := validateEquipment(equipment); err != nil {
			s.logger.Warn("Update: validation failed for equipment id=%d: %v", id, err)
			return err
		}

		// 3. Сохраняем
		if err := s.equipmentRepo.Update(txCtx, equipment); err != nil {
			if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
				return domain.ErrEquipmentNotFound
			}
			s.logger.Error("Update: repository error for equipment id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		result = equipment
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: successfully updated equipment id=%d", id)
	return models.FromDomainEquipment(result), nil
}

// Delete удаляет оборудование, если на него нет открытых бронирований
// Доступно только администратору
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting equipment id=%d", id)

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Блокируем строку оборудования, чтобы не появилось новых бронирований
		if _, err := s.getEquipment(txCtx, "Delete", id); err != nil {
			return err
		}

		// 2. Проверяем открытые бронирования
		open, err := s.reservationRepo.CountOpenByEquipment(txCtx, id)
		if err != nil {
			s.logger.Error("Delete: failed to count reservations for equipment id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - count reservations: %v", ErrInternal, err)
		}
		if open > 0 {
			s.logger.Warn("Delete: equipment id=%d has %d open reservations", id, open)
			return fmt.Errorf("%w: %d open reservations", domain.ErrEquipmentInUse, open)
		}

		// 3. Удаляем
		if err := s.equipmentRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
				return domain.ErrEquipmentNotFound
			}
			s.logger.Error("Delete: repository error for equipment id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Delete: successfully deleted equipment id=%d", id)
	return nil
}

// Вспомогательные методы

func (s *Service) getEquipment(ctx context.Context, method string, id int64) (*domain.Equipment, error) {
	equipment, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, equipmentRepo.ErrEquipmentNotFound) {
			s.logger.Warn("%s: equipment id=%d not found", method, id)
			return nil, domain.ErrEquipmentNotFound
		}
		s.logger.Error("%s: repository error for equipment id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return equipment, nil
}

func (s *Service) applyUpdate(equipment *domain.Equipment, req *models.UpdateEquipmentRequest) error {
	if req.Name != nil {
		equipment.Name = domain.NormalizeName(*req.Name)
	}
	if req.Description != nil {
		equipment.Description = *req.Description
	}
	if req.AllowOutOfHours != nil {
		equipment.AllowOutOfHours = *req.AllowOutOfHours
	}
	if req.AutoApprove != nil {
		equipment.AutoApprove = *req.AutoApprove
	}
	if req.PriceType != nil {
		equipment.PriceType = domain.PriceType(*req.PriceType)
	}
	if req.Price != nil {
		equipment.Price = *req.Price
	}
	if req.ConsumableFee != nil {
		equipment.ConsumableFee = *req.ConsumableFee
	}
	if req.WhitelistEnabled != nil {
		equipment.WhitelistEnabled = *req.WhitelistEnabled
	}
	if req.Whitelist != nil {
		equipment.Whitelist = *req.Whitelist
	}
	if req.Availability != nil {
		availability, err := req.Availability.ToDomainAvailability()
		if err != nil {
			return err
		}
		return s.applyAvailability(equipment, availability)
	}
	return nil
}

func (s *Service) applyAvailability(equipment *domain.Equipment, availability domain.Availability) error {
	if err := availability.Validate(); err != nil {
		return err
	}
	raw, err := availability.Marshal()
	if err != nil {
		return fmt.Errorf("%w: marshal availability: %v", ErrInternal, err)
	}
	equipment.AvailabilityConfig = raw
	return nil
}

func validateEquipment(e *domain.Equipment) error {
	if e.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(e.Name) > domain.MaxEquipmentNameLength {
		return fmt.Errorf("%w: name is longer than %d characters", domain.ErrInvalidInput, domain.MaxEquipmentNameLength)
	}
	if !e.PriceType.IsValid() {
		return fmt.Errorf("%w: unknown price type %q", domain.ErrInvalidInput, e.PriceType)
	}
	if e.Price < 0 || e.ConsumableFee < 0 {
		return fmt.Errorf("%w: price and consumable fee must not be negative", domain.ErrInvalidInput)
	}
	return nil
}
