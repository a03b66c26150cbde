package create_equipment

import (
	"net/http"

	"github.com/m04kA/SMC-LabBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-LabBookingService/internal/service/equipment/models"
)

const msgInvalidRequestBody = "некорректное тело запроса"

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

// Handle POST /api/v1/admin/equipment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateEquipmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/equipment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if handlers.RespondServiceError(w, err) {
			h.logger.Warn("POST /admin/equipment - Rejected: name=%q, reason=%v", req.Name, err)
		} else {
			h.logger.Error("POST /admin/equipment - Failed to create equipment: name=%q, error=%v", req.Name, err)
		}
		return
	}

	h.logger.Info("POST /admin/equipment - Equipment created: equipment_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
