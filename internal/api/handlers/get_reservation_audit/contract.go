package get_reservation_audit

import (
	"context"

	"github.com/m04kA/SMC-LabBookingService/internal/service/reservations/models"
)

type ReservationService interface {
	GetAudit(ctx context.Context, id int64) (*models.AuditListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
