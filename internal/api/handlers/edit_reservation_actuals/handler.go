package edit_reservation_actuals

import (
	"net/http"

	"github.com/m04kA/SMC-LabBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-LabBookingService/internal/service/reservations/models"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/reservations/{id}/actuals
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("PATCH /admin/reservations/{id}/actuals - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req models.EditActualsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/reservations/{id}/actuals - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AdminEditActuals(r.Context(), id, &req)
	if err != nil {
		if handlers.RespondServiceError(w, err) {
			h.logger.Warn("PATCH /admin/reservations/{id}/actuals - Rejected: reservation_id=%d, reason=%v", id, err)
		} else {
			h.logger.Error("PATCH /admin/reservations/{id}/actuals - Failed: reservation_id=%d, error=%v", id, err)
		}
		return
	}

	h.logger.Info("PATCH /admin/reservations/{id}/actuals - Actuals edited: reservation_id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, result)
}
