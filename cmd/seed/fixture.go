package main

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/m04kA/SMC-LabBookingService/internal/service/equipment/models"
)

// Fixture файл начальных данных
type Fixture struct {
	Equipment []EquipmentFixture `yaml:"equipment"`
}

// EquipmentFixture оборудование в YAML
type EquipmentFixture struct {
	Name             string               `yaml:"name"`
	Description      string               `yaml:"description"`
	AllowOutOfHours  bool                 `yaml:"allow_out_of_hours"`
	AutoApprove      bool                 `yaml:"auto_approve"`
	PriceType        string               `yaml:"price_type"`
	Price            float64              `yaml:"price"`
	ConsumableFee    float64              `yaml:"consumable_fee"`
	WhitelistEnabled bool                 `yaml:"whitelist_enabled"`
	Whitelist        []string             `yaml:"whitelist"`
	Availability     *AvailabilityFixture `yaml:"availability"`
}

// AvailabilityFixture конфигурация доступности в YAML
type AvailabilityFixture struct {
	Rules []struct {
		Day   int    `yaml:"day"`
		Open  string `yaml:"open"`
		Close string `yaml:"close"`
	} `yaml:"rules"`
	Cron               string `yaml:"cron"`
	AdvanceDays        int    `yaml:"advance_days"`
	MinDurationMinutes int    `yaml:"min_duration_minutes"`
	MaxDurationMinutes int    `yaml:"max_duration_minutes"`
}

// parseFixture разбирает YAML и конвертирует его в запросы сервиса оборудования
func parseFixture(data []byte) ([]*models.CreateEquipmentRequest, error) {
	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	if len(fixture.Equipment) == 0 {
		return nil, errors.New("fixture has no equipment")
	}

	result := make([]*models.CreateEquipmentRequest, 0, len(fixture.Equipment))
	seen := make(map[string]struct{}, len(fixture.Equipment))
	for i, e := range fixture.Equipment {
		key := strings.ToLower(strings.TrimSpace(e.Name))
		if key == "" {
			return nil, fmt.Errorf("equipment #%d: name is required", i+1)
		}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("equipment #%d: duplicate name %q", i+1, e.Name)
		}
		seen[key] = struct{}{}

		result = append(result, e.toRequest())
	}
	return result, nil
}

func (e EquipmentFixture) toRequest() *models.CreateEquipmentRequest {
	req := &models.CreateEquipmentRequest{
		Name:             e.Name,
		Description:      e.Description,
		AllowOutOfHours:  e.AllowOutOfHours,
		AutoApprove:      e.AutoApprove,
		PriceType:        e.PriceType,
		Price:            e.Price,
		ConsumableFee:    e.ConsumableFee,
		WhitelistEnabled: e.WhitelistEnabled,
		Whitelist:        strings.Join(e.Whitelist, ","),
	}

	if a := e.Availability; a != nil {
		availability := &models.Availability{
			Cron:               a.Cron,
			AdvanceDays:        a.AdvanceDays,
			MinDurationMinutes: a.MinDurationMinutes,
			MaxDurationMinutes: a.MaxDurationMinutes,
		}
		for _, r := range a.Rules {
			availability.Rules = append(availability.Rules, models.AvailabilityRule{
				DayOfWeek: r.Day,
				Open:      r.Open,
				Close:     r.Close,
			})
		}
		req.Availability = availability
	}
	return req
}
