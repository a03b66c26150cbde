package list_reservations

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/api/handlers"
)

const msgInvalidQuery = "некорректные параметры фильтра"

type Handler struct {
	service ReservationService
	loc     *time.Location
	logger  Logger
}

func NewHandler(service ReservationService, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		service: service,
		loc:     loc,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r.URL.Query(), h.loc)
	if err != nil {
		h.logger.Warn("GET /admin/reservations - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if handlers.RespondServiceError(w, err) {
			h.logger.Warn("GET /admin/reservations - Rejected: %v", err)
		} else {
			h.logger.Error("GET /admin/reservations - Failed to list reservations: %v", err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
