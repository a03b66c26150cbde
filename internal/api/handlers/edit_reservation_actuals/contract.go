package edit_reservation_actuals

import (
	"context"

	"github.com/m04kA/SMC-LabBookingService/internal/service/reservations/models"
)

type ReservationService interface {
	AdminEditActuals(ctx context.Context, id int64, req *models.EditActualsRequest) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
