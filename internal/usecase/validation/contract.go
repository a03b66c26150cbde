package validation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
)

// ReservationRepository источник данных о занятости оборудования
type ReservationRepository interface {
	FindOverlapping(ctx context.Context, equipmentID int64, window domain.TimeRange, excludeID int64) ([]*domain.Reservation, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}
