package models

import (
	"encoding/json"
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
)

// Request модели

// ListReservationsRequest запрос административного списка бронирований
type ListReservationsRequest struct {
	EquipmentID *int64
	Status      *string
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

// SetStatusRequest административная установка статуса
type SetStatusRequest struct {
	Status string `json:"status"`
}

// EditActualsRequest административная правка фактических данных
// Все поля опциональны - обновляются только переданные значения
type EditActualsRequest struct {
	ActualStart        *time.Time `json:"actualStart,omitempty"`
	ActualEnd          *time.Time `json:"actualEnd,omitempty"`
	ConsumableQuantity *float64   `json:"consumableQuantity,omitempty"`
	TotalCost          *float64   `json:"totalCost,omitempty"`
	Recalculate        bool       `json:"recalculate,omitempty"` // пересчитать стоимость, если totalCost не передан
}

// Response модели

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID                 int64      `json:"id"`
	EquipmentID        int64      `json:"equipmentId"`
	StudentName        string     `json:"studentName"`
	StudentID          string     `json:"studentId"`
	Supervisor         string     `json:"supervisor"`
	Phone              string     `json:"phone"`
	Email              string     `json:"email"`
	RequestedStart     time.Time  `json:"requestedStart"`
	RequestedEnd       time.Time  `json:"requestedEnd"`
	Status             string     `json:"status"`
	BookingCode        string     `json:"bookingCode"`
	ActualStart        *time.Time `json:"actualStart,omitempty"`
	ActualEnd          *time.Time `json:"actualEnd,omitempty"`
	ConsumableQuantity float64    `json:"consumableQuantity"`
	TotalCost          *float64   `json:"totalCost,omitempty"`
	ModifiedCount      int        `json:"modifiedCount"`
	OutOfHours         bool       `json:"outOfHours"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// EquipmentSummary данные оборудования в ответе поиска по коду
type EquipmentSummary struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	PriceType     string  `json:"priceType"`
	Price         float64 `json:"price"`
	ConsumableFee float64 `json:"consumableFee"`
}

// LookupResponse бронирование вместе с оборудованием.
// Equipment = nil, если оборудование удалено.
type LookupResponse struct {
	ReservationResponse
	Equipment *EquipmentSummary `json:"equipment"`
}

// ReservationListResponse ответ со списком бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
}

// AuditEntryResponse запись журнала изменений
type AuditEntryResponse struct {
	ID            int64           `json:"id"`
	ReservationID int64           `json:"reservationId"`
	Action        string          `json:"action"`
	Before        json.RawMessage `json:"before"`
	After         json.RawMessage `json:"after"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// AuditListResponse журнал изменений бронирования
type AuditListResponse struct {
	Entries []AuditEntryResponse `json:"entries"`
}

// Методы конвертации

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListReservationsRequest) ToDomainFilter() (domain.ReservationFilter, error) {
	filter := domain.ReservationFilter{
		EquipmentID: r.EquipmentID,
		From:        r.From,
		To:          r.To,
		Limit:       r.Limit,
		Offset:      r.Offset,
	}

	if r.Status != nil {
		status, err := domain.ParseReservationStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	if r == nil {
		return nil
	}

	return &ReservationResponse{
		ID:                 r.ID,
		EquipmentID:        r.EquipmentID,
		StudentName:        r.Requester.Name,
		StudentID:          r.Requester.StudentID,
		Supervisor:         r.Requester.Supervisor,
		Phone:              r.Requester.Phone,
		Email:              r.Requester.Email,
		RequestedStart:     r.RequestedStart,
		RequestedEnd:       r.RequestedEnd,
		Status:             string(r.Status),
		BookingCode:        r.BookingCode,
		ActualStart:        r.ActualStart,
		ActualEnd:          r.ActualEnd,
		ConsumableQuantity: r.ConsumableQuantity,
		TotalCost:          r.TotalCost,
		ModifiedCount:      r.ModifiedCount,
		OutOfHours:         r.OutOfHours,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(items []*domain.Reservation) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(items)),
	}
	for _, r := range items {
		resp.Reservations = append(resp.Reservations, *FromDomainReservation(r))
	}
	return resp
}

// FromDomainEquipmentSummary конвертирует оборудование в краткий DTO
func FromDomainEquipmentSummary(e *domain.Equipment) *EquipmentSummary {
	if e == nil {
		return nil
	}
	return &EquipmentSummary{
		ID:            e.ID,
		Name:          e.Name,
		PriceType:     string(e.PriceType),
		Price:         e.Price,
		ConsumableFee: e.ConsumableFee,
	}
}

// FromDomainAuditList конвертирует журнал изменений в DTO
func FromDomainAuditList(entries []*domain.AuditEntry) *AuditListResponse {
	resp := &AuditListResponse{
		Entries: make([]AuditEntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, AuditEntryResponse{
			ID:            e.ID,
			ReservationID: e.ReservationID,
			Action:        string(e.Action),
			Before:        e.Before,
			After:         e.After,
			CreatedAt:     e.CreatedAt,
		})
	}
	return resp
}
