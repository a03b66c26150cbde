package delete_reservation

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

// Handle DELETE /api/v1/admin/reservations/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /admin/reservations/{id} - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	if err := h.service.AdminDelete(r.Context(), id); err != nil {
		if handlers.RespondServiceError(w, err) {
			h.logger.Warn("DELETE /admin/reservations/{id} - Rejected: reservation_id=%d, reason=%v", id, err)
		} else {
			h.logger.Error("DELETE /admin/reservations/{id} - Failed: reservation_id=%d, error=%v", id, err)
		}
		return
	}

	h.logger.Info("DELETE /admin/reservations/{id} - Reservation deleted: reservation_id=%d", id)
	handlers.RespondNoContent(w)
}
