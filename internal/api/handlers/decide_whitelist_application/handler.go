package decide_whitelist_application

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-LabBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-LabBookingService/internal/service/whitelist/models"
)

const msgInvalidApplicationID = "некорректный ID заявки"

type Handler struct {
	decide func(ctx context.Context, id int64) (*models.ApplicationResponse, error)
	route  string
	logger Logger
}

// NewApproveHandler POST /api/v1/admin/whitelist-applications/{id}/approve
func NewApproveHandler(service WhitelistService, logger Logger) *Handler {
	return &Handler{
		decide: service.Approve,
		route:  "POST /admin/whitelist-applications/{id}/approve",
		logger: logger,
	}
}

// NewRejectHandler POST /api/v1/admin/whitelist-applications/{id}/reject
func NewRejectHandler(service WhitelistService, logger Logger) *Handler {
	return &Handler{
		decide: service.Reject,
		route:  "POST /admin/whitelist-applications/{id}/reject",
		logger: logger,
	}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("%s - Invalid application ID: %v", h.route, err)
		handlers.RespondBadRequest(w, msgInvalidApplicationID)
		return
	}

	result, err := h.decide(r.Context(), id)
	if err != nil {
		if handlers.RespondServiceError(w, err) {
			h.logger.Warn("%s - Rejected: application_id=%d, reason=%v", h.route, id, err)
		} else {
			h.logger.Error("%s - Failed: application_id=%d, error=%v", h.route, id, err)
		}
		return
	}

	h.logger.Info("%s - Done: application_id=%d, status=%s", h.route, id, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
