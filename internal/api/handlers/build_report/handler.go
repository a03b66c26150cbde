package build_report

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/api/handlers"
)

const msgInvalidQuery = "некорректные параметры отчета, ожидаются from и to в формате YYYY-MM-DD"

type Handler struct {
	useCase BuildReportUseCase
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase BuildReportUseCase, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		loc:     loc,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/reports
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req, err := parseQuery(r.URL.Query(), h.loc)
	if err != nil {
		h.logger.Warn("GET /admin/reports - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidQuery)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		if handlers.RespondServiceError(w, err) {
			h.logger.Warn("GET /admin/reports - Rejected: %v", err)
		} else {
			h.logger.Error("GET /admin/reports - Failed to build report: %v", err)
		}
		return
	}

	h.logger.Info("GET /admin/reports - Report built: rows=%d, completed=%d", len(result.Rows), result.Totals.Count)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
