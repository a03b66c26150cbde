package check_in

import (
	"time"

	checkIn "github.com/m04kA/SMC-LabBookingService/internal/usecase/check_in"
)

// CheckInRequest HTTP request model (тело необязательно)
type CheckInRequest struct {
	ConsumableQuantity *float64 `json:"consumableQuantity,omitempty"`
}

// CheckInResponse HTTP response model
type CheckInResponse struct {
	ID                 int64   `json:"id"`
	BookingCode        string  `json:"bookingCode"`
	Status             string  `json:"status"`
	ActualStart        string  `json:"actualStart"`
	ConsumableQuantity float64 `json:"consumableQuantity"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkIn.Response) *CheckInResponse {
	return &CheckInResponse{
		ID:                 resp.ID,
		BookingCode:        resp.BookingCode,
		Status:             resp.Status,
		ActualStart:        resp.ActualStart.Format(time.RFC3339),
		ConsumableQuantity: resp.ConsumableQuantity,
	}
}
