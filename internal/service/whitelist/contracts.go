package whitelist

import (
	"context"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
)

// ApplicationRepository интерфейс репозитория заявок на допуск
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.WhitelistApplication) (*domain.WhitelistApplication, error)
	GetByID(ctx context.Context, id int64) (*domain.WhitelistApplication, error)
	FindPending(ctx context.Context, equipmentID int64, name string) (*domain.WhitelistApplication, error)
	List(ctx context.Context, status *domain.ApplicationStatus) ([]*domain.WhitelistApplication, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus) error
}

// EquipmentRepository интерфейс репозитория оборудования
type EquipmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
	UpdateWhitelist(ctx context.Context, id int64, whitelist string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
