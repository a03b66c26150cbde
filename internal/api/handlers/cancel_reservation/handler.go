package cancel_reservation

import (
	"net/http"

	"github.com/m04kA/SMC-LabBookingService/internal/api/handlers"
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

// Handle POST /api/v1/reservations/{code}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	code := handlers.PathString(r, "code")

	result, err := h.service.Cancel(r.Context(), code)
	if err != nil {
		if handlers.RespondServiceError(w, err) {
			h.logger.Warn("POST /reservations/{code}/cancel - Rejected: code=%s, reason=%v", code, err)
		} else {
			h.logger.Error("POST /reservations/{code}/cancel - Failed to cancel reservation: code=%s, error=%v", code, err)
		}
		return
	}

	h.logger.Info("POST /reservations/{code}/cancel - Reservation cancelled: reservation_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
