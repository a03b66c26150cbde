package delete_equipment

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

// Handle DELETE /api/v1/admin/equipment/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /admin/equipment/{id} - Invalid equipment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEquipmentID)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if handlers.RespondServiceError(w, err) {
			h.logger.Warn("DELETE /admin/equipment/{id} - Rejected: equipment_id=%d, reason=%v", id, err)
		} else {
			h.logger.Error("DELETE /admin/equipment/{id} - Failed to delete equipment: equipment_id=%d, error=%v", id, err)
		}
		return
	}

	h.logger.Info("DELETE /admin/equipment/{id} - Equipment deleted: equipment_id=%d", id)
	handlers.RespondNoContent(w)
}
