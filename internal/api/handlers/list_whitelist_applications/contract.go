package list_whitelist_applications

import (
	"context"

	"github.com/m04kA/SMC-LabBookingService/internal/service/whitelist/models"
)

type WhitelistService interface {
	List(ctx context.Context, status *string) (*models.ApplicationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
