package get_availability

import (
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	getAvailability "github.com/m04kA/SMC-LabBookingService/internal/usecase/get_availability"
)

// RangeResponse окно времени
type RangeResponse struct {
	Start  string `json:"start"`
	End    string `json:"end"`
	Status string `json:"status,omitempty"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	EquipmentID        int64           `json:"equipmentId"`
	Date               string          `json:"date"`
	OpenRanges         []RangeResponse `json:"openRanges"`
	BookedRanges       []RangeResponse `json:"bookedRanges"`
	MinDurationMinutes int             `json:"minDurationMinutes"`
	MaxDurationMinutes int             `json:"maxDurationMinutes"`
	AdvanceDays        int             `json:"advanceDays"`
	AllowOutOfHours    bool            `json:"allowOutOfHours"`
	WithinHorizon      bool            `json:"withinHorizon"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	open := make([]RangeResponse, 0, len(resp.OpenRanges))
	for _, r := range resp.OpenRanges {
		open = append(open, RangeResponse{
			Start: r.Start.Format(time.RFC3339),
			End:   r.End.Format(time.RFC3339),
		})
	}

	booked := make([]RangeResponse, 0, len(resp.BookedRanges))
	for _, r := range resp.BookedRanges {
		booked = append(booked, RangeResponse{
			Start:  r.Start.Format(time.RFC3339),
			End:    r.End.Format(time.RFC3339),
			Status: string(r.Status),
		})
	}

	return &AvailabilityResponse{
		EquipmentID:        resp.EquipmentID,
		Date:               resp.Date.Format(domain.DateFormat),
		OpenRanges:         open,
		BookedRanges:       booked,
		MinDurationMinutes: resp.MinDurationMinutes,
		MaxDurationMinutes: resp.MaxDurationMinutes,
		AdvanceDays:        resp.AdvanceDays,
		AllowOutOfHours:    resp.AllowOutOfHours,
		WithinHorizon:      resp.WithinHorizon,
	}
}
