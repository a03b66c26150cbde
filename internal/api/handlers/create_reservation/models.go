package create_reservation

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	createReservation "github.com/m04kA/SMC-LabBookingService/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	EquipmentID int64  `json:"equipmentId"`
	StudentName string `json:"studentName"`
	StudentID   string `json:"studentId"`
	Supervisor  string `json:"supervisor"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Start       string `json:"start"` // RFC3339 или "2025-06-02T10:00"
	End         string `json:"end"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID             int64  `json:"id"`
	EquipmentID    int64  `json:"equipmentId"`
	BookingCode    string `json:"bookingCode"`
	Status         string `json:"status"`
	OutOfHours     bool   `json:"outOfHours"`
	RequestedStart string `json:"requestedStart"`
	RequestedEnd   string `json:"requestedEnd"`
	CreatedAt      string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(loc *time.Location) (*createReservation.Request, error) {
	start, err := handlers.ParseTime(r.Start, loc)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end, err := handlers.ParseTime(r.End, loc)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	return &createReservation.Request{
		EquipmentID: r.EquipmentID,
		Requester: domain.Requester{
			Name:       r.StudentName,
			StudentID:  r.StudentID,
			Supervisor: r.Supervisor,
			Phone:      r.Phone,
			Email:      r.Email,
		},
		Start: start,
		End:   end,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:             resp.ID,
		EquipmentID:    resp.EquipmentID,
		BookingCode:    resp.BookingCode,
		Status:         resp.Status,
		OutOfHours:     resp.OutOfHours,
		RequestedStart: resp.RequestedStart.Format(time.RFC3339),
		RequestedEnd:   resp.RequestedEnd.Format(time.RFC3339),
		CreatedAt:      resp.CreatedAt.Format(time.RFC3339),
	}
}
