package get_availability

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/api/handlers"
	getAvailability "github.com/m04kA/SMC-LabBookingService/internal/usecase/get_availability"
)

const (
	msgInvalidEquipmentID = "некорректный ID оборудования"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Handle GET /api/v1/equipment/{id}/availability?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	equipmentID, err := handlers.PathInt64(r, "id")
	if err != nil {
		h.logger.Warn("GET /equipment/{id}/availability - Invalid equipment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEquipmentID)
		return
	}

	date, err := handlers.ParseDate(r.URL.Query().Get("date"), h.loc)
	if err != nil {
		h.logger.Warn("GET /equipment/{id}/availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		EquipmentID: equipmentID,
		Date:        date,
	})
	if err != nil {
		if handlers.RespondServiceError(w, err) {
			h.logger.Warn("GET /equipment/{id}/availability - Rejected: equipment_id=%d, reason=%v", equipmentID, err)
		} else {
			h.logger.Error("GET /equipment/{id}/availability - Failed to get availability: equipment_id=%d, error=%v",
				equipmentID, err)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
