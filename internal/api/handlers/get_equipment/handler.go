package get_equipment

import (
	"net/http"

	"github.com/m04kA/SMC-LabBookingService/internal/api/handlers"
)

const msgInvalidEquipmentID = "некорректный ID оборудования"

type Handler struct {
	service EquipmentService
	logger  Logger
}

func NewHandler(service EquipmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/equipment/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("GET /equipment/{id} - Invalid equipment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEquipmentID)
		return
	}

	result, err := h.service.Get(r.Context(), id)
	if err != nil {
		if handlers.RespondServiceError(w, err) {
			h.logger.Warn("GET /equipment/{id} - Rejected: equipment_id=%d, reason=%v", id, err)
		} else {
			h.logger.Error("GET /equipment/{id} - Failed to get equipment: equipment_id=%d, error=%v", id, err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
