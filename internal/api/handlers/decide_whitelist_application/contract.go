package decide_whitelist_application

import (
	"context"

	"github.com/m04kA/SMC-LabBookingService/internal/service/whitelist/models"
)

type WhitelistService interface {
	Approve(ctx context.Context, id int64) (*models.ApplicationResponse, error)
	Reject(ctx context.Context, id int64) (*models.ApplicationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
