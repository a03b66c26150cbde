package check_out

import (
	"net/http"

	"github.com/m04kA/SMC-LabBookingService/internal/api/handlers"
	checkOut "github.com/m04kA/SMC-LabBookingService/internal/usecase/check_out"
)

type Handler struct {
	useCase CheckOutUseCase
	logger  Logger
}

func NewHandler(useCase CheckOutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations/{code}/check-out
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	code := handlers.PathString(r, "code")

	result, err := h.useCase.Execute(r.Context(), &checkOut.Request{BookingCode: code})
	if err != nil {
		if handlers.RespondServiceError(w, err) {
			h.logger.Warn("POST /reservations/{code}/check-out - Rejected: code=%s, reason=%v", code, err)
		} else {
			h.logger.Error("POST /reservations/{code}/check-out - Failed to check out: code=%s, error=%v", code, err)
		}
		return
	}

	h.logger.Info("POST /reservations/{code}/check-out - Checked out: reservation_id=%d, total_cost=%.2f",
		result.ID, result.TotalCost)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
