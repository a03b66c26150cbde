package check_in

import (
	"net/http"

	"github.com/m04kA/SMC-LabBookingService/internal/api/handlers"
	checkIn "github.com/m04kA/SMC-LabBookingService/internal/usecase/check_in"
)

const msgInvalidRequestBody = "некорректное тело запроса"

type Handler struct {
	useCase CheckInUseCase
	logger  Logger
}

func NewHandler(useCase CheckInUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{code}/check-in
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	code := handlers.PathString(r, "code")

	var req CheckInRequest
	if r.ContentLength != 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("POST /reservations/{code}/check-in - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	result, err := h.useCase.Execute(r.Context(), &checkIn.Request{
		BookingCode:        code,
		ConsumableQuantity: req.ConsumableQuantity,
	})
	if err != nil {
		if handlers.RespondServiceError(w, err) {
			h.logger.Warn("POST /reservations/{code}/check-in - Rejected: code=%s, reason=%v", code, err)
		} else {
			h.logger.Error("POST /reservations/{code}/check-in - Failed to check in: code=%s, error=%v", code, err)
		}
		return
	}

	h.logger.Info("POST /reservations/{code}/check-in - Checked in: reservation_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
