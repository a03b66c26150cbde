package validation

import (
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
)

// Request окно, которое нужно проверить
type Request struct {
	Equipment     *domain.Equipment
	Availability  domain.Availability
	Start         time.Time
	End           time.Time
	RequesterName string
	// ExcludeReservationID бронирование, не участвующее в проверке конфликтов (0 - нет)
	ExcludeReservationID int64
}

// Result итог успешной проверки
type Result struct {
	OutOfHours bool
}
