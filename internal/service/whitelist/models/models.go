package models

import (
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
)

// ApplyRequest заявка на допуск к оборудованию
type ApplyRequest struct {
	StudentName string `json:"studentName"`
	StudentID   string `json:"studentId"`
	Supervisor  string `json:"supervisor"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

// ApplicationResponse ответ с данными заявки
type ApplicationResponse struct {
	ID          int64     `json:"id"`
	EquipmentID int64     `json:"equipmentId"`
	StudentName string    `json:"studentName"`
	StudentID   string    `json:"studentId"`
	Supervisor  string    `json:"supervisor"`
	Phone       string    `json:"phone"`
	Email       string    `json:"email"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ApplicationListResponse ответ со списком заявок
type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
}

// ToDomainRequester конвертирует заявку в данные заявителя
func (r *ApplyRequest) ToDomainRequester() domain.Requester {
	return domain.Requester{
		Name:       domain.NormalizeName(r.StudentName),
		StudentID:  r.StudentID,
		Supervisor: r.Supervisor,
		Phone:      r.Phone,
		Email:      r.Email,
	}
}

// FromDomainApplication конвертирует domain модель в DTO
func FromDomainApplication(a *domain.WhitelistApplication) *ApplicationResponse {
	if a == nil {
		return nil
	}
	return &ApplicationResponse{
		ID:          a.ID,
		EquipmentID: a.EquipmentID,
		StudentName: a.Requester.Name,
		StudentID:   a.Requester.StudentID,
		Supervisor:  a.Requester.Supervisor,
		Phone:       a.Requester.Phone,
		Email:       a.Requester.Email,
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

// FromDomainApplicationList конвертирует список domain моделей в DTO
func FromDomainApplicationList(items []*domain.WhitelistApplication) *ApplicationListResponse {
	resp := &ApplicationListResponse{
		Applications: make([]ApplicationResponse, 0, len(items)),
	}
	for _, a := range items {
		resp.Applications = append(resp.Applications, *FromDomainApplication(a))
	}
	return resp
}
