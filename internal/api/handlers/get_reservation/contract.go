package get_reservation

import (
	"context"

	"github.com/m04kA/SMC-LabBookingService/internal/service/reservations/models"
)

type ReservationService interface {
	GetByCode(ctx context.Context, code string) (*models.LookupResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
