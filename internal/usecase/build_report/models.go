package build_report

import (
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
)

// Request модель запроса отчета. Диапазон по requested_start: [From, To).
type Request struct {
	From        time.Time
	To          time.Time
	Period      string
	EquipmentID *int64
	StudentName string
	Supervisor  string
}

// Row бронирование с меткой классификатора
type Row struct {
	Reservation *domain.Reservation
	Label       domain.Label
}

// Totals итоги по завершенным бронированиям
type Totals struct {
	Count        int
	TotalHours   float64
	TotalRevenue float64
}

// Response модель ответа с отчетом
type Response struct {
	From         time.Time
	To           time.Time
	Period       domain.Period
	Rows         []Row
	LabelCounts  map[domain.Label]int
	Totals       Totals
	ByPeriod     []domain.UsageAggregate
	ByPerson     []domain.UsageAggregate
	BySupervisor []domain.UsageAggregate
}
