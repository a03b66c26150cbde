package reschedule_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/api/handlers"
	rescheduleReservation "github.com/m04kA/SMC-LabBookingService/internal/usecase/reschedule_reservation"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// RescheduleResponse HTTP response model
type RescheduleResponse struct {
	ID             int64  `json:"id"`
	BookingCode    string `json:"bookingCode"`
	Status         string `json:"status"`
	OutOfHours     bool   `json:"outOfHours"`
	ModifiedCount  int    `json:"modifiedCount"`
	RequestedStart string `json:"requestedStart"`
	RequestedEnd   string `json:"requestedEnd"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(code string, loc *time.Location) (*rescheduleReservation.Request, error) {
	start, err := handlers.ParseTime(r.Start, loc)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end, err := handlers.ParseTime(r.End, loc)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	return &rescheduleReservation.Request{
		BookingCode: code,
		Start:       start,
		End:         end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleReservation.Response) *RescheduleResponse {
	return &RescheduleResponse{
		ID:             resp.ID,
		BookingCode:    resp.BookingCode,
		Status:         resp.Status,
		OutOfHours:     resp.OutOfHours,
		ModifiedCount:  resp.ModifiedCount,
		RequestedStart: resp.RequestedStart.Format(time.RFC3339),
		RequestedEnd:   resp.RequestedEnd.Format(time.RFC3339),
	}
}
