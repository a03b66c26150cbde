package apply_whitelist

import (
	"context"

	"github.com/m04kA/SMC-LabBookingService/internal/service/whitelist/models"
)

type WhitelistService interface {
	Apply(ctx context.Context, equipmentID int64, req *models.ApplyRequest) (*models.ApplicationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
