package decide_reservation

import (
	"context"

	"github.com/m04kA/SMC-LabBookingService/internal/service/reservations/models"
)

type ReservationService interface {
	Approve(ctx context.Context, id int64) (*models.ReservationResponse, error)
	Reject(ctx context.Context, id int64) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
