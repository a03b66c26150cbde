package reschedule_reservation

import (
	"context"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	"github.com/m04kA/SMC-LabBookingService/internal/usecase/validation"
)

// EquipmentRepository интерфейс репозитория оборудования
type EquipmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
}

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Reservation, error)
	Update(ctx context.Context, reservation *domain.Reservation) error
}

// Validator проверка окна бронирования
type Validator interface {
	Validate(ctx context.Context, req *validation.Request) (*validation.Result, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TransitionRecorder учет переходов бронирования в метриках
type TransitionRecorder interface {
	ObserveTransition(transition, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
