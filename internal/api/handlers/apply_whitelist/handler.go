package apply_whitelist

import (
	"net/http"

	"github.com/m04kA/SMC-LabBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-LabBookingService/internal/service/whitelist/models"
)

const (
	msgInvalidEquipmentID = "некорректный ID оборудования"
	msgInvalidRequestBody = "некорректное тело запроса"
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

// Handle POST /api/v1/equipment/{id}/whitelist-applications
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	equipmentID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("POST /equipment/{id}/whitelist-applications - Invalid equipment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEquipmentID)
		return
	}

	var req models.ApplyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /equipment/{id}/whitelist-applications - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Apply(r.Context(), equipmentID, &req)
	if err != nil {
		if handlers.RespondServiceError(w, err) {
			h.logger.Warn("POST /equipment/{id}/whitelist-applications - Rejected: equipment_id=%d, reason=%v",
				equipmentID, err)
		} else {
			h.logger.Error("POST /equipment/{id}/whitelist-applications - Failed to apply: equipment_id=%d, error=%v",
				equipmentID, err)
		}
		return
	}

	h.logger.Info("POST /equipment/{id}/whitelist-applications - Application submitted: application_id=%d, equipment_id=%d",
		result.ID, equipmentID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
