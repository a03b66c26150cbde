package get_reservation

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

// Handle GET /api/v1/reservations/{code}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	code := handlers.PathString(r, "code")

	result, err := h.service.GetByCode(r.Context(), code)
	if err != nil {
		if handlers.RespondServiceError(w, err) {
			h.logger.Warn("GET /reservations/{code} - Rejected: code=%s, reason=%v", code, err)
		} else {
			h.logger.Error("GET /reservations/{code} - Failed to get reservation: code=%s, error=%v", code, err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
