package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
)

// Request модели

// AvailabilityRule недельное правило в формате HTTP ("HH:MM")
type AvailabilityRule struct {
	DayOfWeek int    `json:"dayOfWeek"` // 0 = воскресенье
	Open      string `json:"open"`      // "09:00"
	Close     string `json:"close"`     // "17:00", "24:00" = конец дня
}

// Availability конфигурация доступности в формате HTTP
type Availability struct {
	Rules              []AvailabilityRule `json:"rules"`
	Cron               string             `json:"cron,omitempty"`
	AdvanceDays        int                `json:"advanceDays"`
	MinDurationMinutes int                `json:"minDurationMinutes"`
	MaxDurationMinutes int                `json:"maxDurationMinutes"`
}

// CreateEquipmentRequest запрос на создание оборудования
type CreateEquipmentRequest struct {
	Name             string        `json:"name"`
	Description      string        `json:"description"`
	Availability     *Availability `json:"availability,omitempty"` // nil = конфигурация по умолчанию
	AllowOutOfHours  bool          `json:"allowOutOfHours"`
	AutoApprove      bool          `json:"autoApprove"`
	PriceType        string        `json:"priceType"` // per_hour (по умолчанию) или per_use
	Price            float64       `json:"price"`
	ConsumableFee    float64       `json:"consumableFee"`
	WhitelistEnabled bool          `json:"whitelistEnabled"`
	Whitelist        string        `json:"whitelist"`
}

// UpdateEquipmentRequest запрос на обновление оборудования
// Все поля опциональны - обновляются только переданные значения
type UpdateEquipmentRequest struct {
	Name             *string       `json:"name,omitempty"`
	Description      *string       `json:"description,omitempty"`
	Availability     *Availability `json:"availability,omitempty"`
	AllowOutOfHours  *bool         `json:"allowOutOfHours,omitempty"`
	AutoApprove      *bool         `json:"autoApprove,omitempty"`
	PriceType        *string       `json:"priceType,omitempty"`
	Price            *float64      `json:"price,omitempty"`
	ConsumableFee    *float64      `json:"consumableFee,omitempty"`
	WhitelistEnabled *bool         `json:"whitelistEnabled,omitempty"`
	Whitelist        *string       `json:"whitelist,omitempty"`
}

// Response модели

// EquipmentResponse ответ с данными оборудования
type EquipmentResponse struct {
	ID               int64        `json:"id"`
	Name             string       `json:"name"`
	Description      string       `json:"description"`
	Availability     Availability `json:"availability"`
	AllowOutOfHours  bool         `json:"allowOutOfHours"`
	AutoApprove      bool         `json:"autoApprove"`
	PriceType        string       `json:"priceType"`
	Price            float64      `json:"price"`
	ConsumableFee    float64      `json:"consumableFee"`
	WhitelistEnabled bool         `json:"whitelistEnabled"`
	Whitelist        []string     `json:"whitelist"`
	CreatedAt        time.Time    `json:"createdAt"`
	UpdatedAt        time.Time    `json:"updatedAt"`
}

// EquipmentListResponse ответ со списком оборудования
type EquipmentListResponse struct {
	Equipment []EquipmentResponse `json:"equipment"`
}

// Методы конвертации

// ToDomainAvailability конвертирует HTTP формат в доменную конфигурацию
func (a *Availability) ToDomainAvailability() (domain.Availability, error) {
	result := domain.Availability{
		Rules:              make([]domain.Rule, 0, len(a.Rules)),
		Cron:               a.Cron,
		AdvanceDays:        a.AdvanceDays,
		MinDurationMinutes: a.MinDurationMinutes,
		MaxDurationMinutes: a.MaxDurationMinutes,
	}

	for i, r := range a.Rules {
		open, err := domain.ParseClock(r.Open)
		if err != nil {
			return result, fmt.Errorf("rule %d: open: %w", i, err)
		}
		closeMinute, err := domain.ParseClock(r.Close)
		if err != nil {
			return result, fmt.Errorf("rule %d: close: %w", i, err)
		}
		result.Rules = append(result.Rules, domain.Rule{
			DayOfWeek:   time.Weekday(r.DayOfWeek),
			OpenMinute:  open,
			CloseMinute: closeMinute,
		})
	}

	return result, result.Validate()
}

// FromDomainAvailability конвертирует доменную конфигурацию в HTTP формат
func FromDomainAvailability(a domain.Availability) Availability {
	rules := make([]AvailabilityRule, 0, len(a.Rules))
	for _, r := range a.Rules {
		rules = append(rules, AvailabilityRule{
			DayOfWeek: int(r.DayOfWeek),
			Open:      domain.FormatClock(r.OpenMinute),
			Close:     domain.FormatClock(r.CloseMinute),
		})
	}
	return Availability{
		Rules:              rules,
		Cron:               a.Cron,
		AdvanceDays:        a.AdvanceDays,
		MinDurationMinutes: a.MinDurationMinutes,
		MaxDurationMinutes: a.MaxDurationMinutes,
	}
}

// FromDomainEquipment конвертирует domain модель в DTO.
// Некорректная сохраненная конфигурация отображается как конфигурация по умолчанию.
func FromDomainEquipment(e *domain.Equipment) *EquipmentResponse {
	if e == nil {
		return nil
	}

	availability, _ := e.AvailabilityOrDefault()

	whitelist := e.WhitelistEntries()
	if whitelist == nil {
		whitelist = []string{}
	}

	return &EquipmentResponse{
		ID:               e.ID,
		Name:             e.Name,
		Description:      e.Description,
		Availability:     FromDomainAvailability(availability),
		AllowOutOfHours:  e.AllowOutOfHours,
		AutoApprove:      e.AutoApprove,
		PriceType:        string(e.PriceType),
		Price:            e.Price,
		ConsumableFee:    e.ConsumableFee,
		WhitelistEnabled: e.WhitelistEnabled,
		Whitelist:        whitelist,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

// FromDomainEquipmentList конвертирует список domain моделей в DTO
func FromDomainEquipmentList(items []*domain.Equipment) *EquipmentListResponse {
	resp := &EquipmentListResponse{
		Equipment: make([]EquipmentResponse, 0, len(items)),
	}
	for _, e := range items {
		resp.Equipment = append(resp.Equipment, *FromDomainEquipment(e))
	}
	return resp
}
