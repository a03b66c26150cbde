package list_whitelist_applications

import (
	"net/http"

	"github.com/m04kA/SMC-LabBookingService/internal/api/handlers"
)

type Handler struct {
	service WhitelistService
	logger  Logger
}

func NewHandler(service WhitelistService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/whitelist-applications?status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var status *string
	if v := r.URL.Query().Get("status"); v != "" {
		status = &v
	}

	result, err := h.service.List(r.Context(), status)
	if err != nil {
		if handlers.RespondServiceError(w, err) {
			h.logger.Warn("GET /admin/whitelist-applications - Rejected: %v", err)
		} else {
			h.logger.Error("GET /admin/whitelist-applications - Failed to list applications: %v", err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
