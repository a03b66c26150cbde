package decide_reservation

import (
	"context"
	"net/http"

	"github.com/m04kA/SMC-LabBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-LabBookingService/internal/service/reservations/models"
)

const msgInvalidReservationID = "некорректный ID бронирования"

// Handler решение администратора по ожидающему бронированию (approve/reject)
type Handler struct {
	decide func(ctx context.Context, id int64) (*models.ReservationResponse, error)
	route  string
	logger Logger
}

// NewApproveHandler POST /api/v1/admin/reservations/{id}/approve
func NewApproveHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		decide: service.Approve,
		route:  "POST /admin/reservations/{id}/approve",
		logger: logger,
	}
}

// NewRejectHandler POST /api/v1/admin/reservations/{id}/reject
func NewRejectHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		decide: service.Reject,
		route:  "POST /admin/reservations/{id}/reject",
		logger: logger,
	}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("%s - Invalid reservation ID: %v", h.route, err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	result, err := h.decide(r.Context(), id)
	if err != nil {
		if handlers.RespondServiceError(w, err) {
			h.logger.Warn("%s - Rejected: reservation_id=%d, reason=%v", h.route, id, err)
		} else {
			h.logger.Error("%s - Failed: reservation_id=%d, error=%v", h.route, id, err)
		}
		return
	}

	h.logger.Info("%s - Done: reservation_id=%d, status=%s", h.route, id, result.Status)
	handlers.RespondJSON(w, http.StatusOK, result)
}
