package get_reservation_audit

import (
	"net/http"

	"github.com/m04kA/SMC-LabBookingService/internal/api/handlers"
)

const msgInvalidReservationID = "некорректный ID бронирования"

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

// Handle GET /api/v1/admin/reservations/{id}/audit
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("GET /admin/reservations/{id}/audit - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	result, err := h.service.GetAudit(r.Context(), id)
	if err != nil {
		if handlers.RespondServiceError(w, err) {
			h.logger.Warn("GET /admin/reservations/{id}/audit - Rejected: reservation_id=%d, reason=%v", id, err)
		} else {
			h.logger.Error("GET /admin/reservations/{id}/audit - Failed: reservation_id=%d, error=%v", id, err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
