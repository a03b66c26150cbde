package create_reservation

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
	useCase CreateReservationUseCase
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(h.loc)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		if handlers.RespondServiceError(w, err) {
			h.logger.Warn("POST /reservations - Rejected: equipment_id=%d, student=%q, reason=%v",
				req.EquipmentID, req.StudentName, err)
		} else {
			h.logger.Error("POST /reservations - Failed to create reservation: equipment_id=%d, error=%v",
				req.EquipmentID, err)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: id=%d, code=%s, status=%s",
		result.ID, result.BookingCode, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
