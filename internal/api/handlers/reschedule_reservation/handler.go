package reschedule_reservation

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/api/handlers"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTime        = "некорректный формат времени, ожидается RFC3339 или YYYY-MM-DDTHH:MM"
)

type Handler struct {
	useCase RescheduleReservationUseCase
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase RescheduleReservationUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{code}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	code := handlers.PathString(r, "code")

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations/{code}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(code, h.loc)
	if err != nil {
		h.logger.Warn("POST /reservations/{code}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if handlers.RespondServiceError(w, err) {
			h.logger.Warn("POST /reservations/{code}/reschedule - Rejected: code=%s, reason=%v", code, err)
		} else {
			h.logger.Error("POST /reservations/{code}/reschedule - Failed to reschedule: code=%s, error=%v", code, err)
		}
		return
	}

	h.logger.Info("POST /reservations/{code}/reschedule - Reservation rescheduled: reservation_id=%d, status=%s",
		result.ID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
