package create_reservation

import (
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	EquipmentID int64
	Requester   domain.Requester
	Start       time.Time
	End         time.Time
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID             int64
	EquipmentID    int64
	BookingCode    string
	Status         string
	OutOfHours     bool
	RequestedStart time.Time
	RequestedEnd   time.Time
	CreatedAt      time.Time
}
