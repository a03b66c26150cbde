package get_availability

import (
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
)

// Request модель запроса доступности оборудования на дату
type Request struct {
	EquipmentID int64
	// Date любой момент нужного календарного дня
	Date time.Time
}

// BookedRange занятое окно
type BookedRange struct {
	Start  time.Time
	End    time.Time
	Status domain.ReservationStatus
}

// Response модель ответа с доступностью
type Response struct {
	EquipmentID        int64
	Date               time.Time
	OpenRanges         []domain.TimeRange
	BookedRanges       []BookedRange
	MinDurationMinutes int
	MaxDurationMinutes int
	AdvanceDays        int
	AllowOutOfHours    bool
	WithinHorizon      bool
}
