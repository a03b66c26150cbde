package check_out

import (
	"time"

	checkOut "github.com/m04kA/SMC-LabBookingService/internal/usecase/check_out"
)

// CheckOutResponse HTTP response model
type CheckOutResponse struct {
	ID                 int64   `json:"id"`
	BookingCode        string  `json:"bookingCode"`
	Status             string  `json:"status"`
	ActualStart        string  `json:"actualStart"`
	ActualEnd          string  `json:"actualEnd"`
	ConsumableQuantity float64 `json:"consumableQuantity"`
	TotalCost          float64 `json:"totalCost"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkOut.Response) *CheckOutResponse {
	return &CheckOutResponse{
		ID:                 resp.ID,
		BookingCode:        resp.BookingCode,
		Status:             resp.Status,
		ActualStart:        resp.ActualStart.Format(time.RFC3339),
		ActualEnd:          resp.ActualEnd.Format(time.RFC3339),
		ConsumableQuantity: resp.ConsumableQuantity,
		TotalCost:          resp.TotalCost,
	}
}
