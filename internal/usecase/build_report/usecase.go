package build_report

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
)

// UseCase use case для построения отчета по использованию оборудования
type UseCase struct {
	reservationRepo ReservationRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservationRepo ReservationRepository, timeProvider TimeProvider, logger Logger) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		timeProvider:    timeProvider,
		logger:          logger,
	}
}

// Execute классифицирует бронирования диапазона и строит агрегаты.
// Классификация выполняется по всем бронированиям диапазона, фильтры по имени
// и руководителю применяются после, чтобы не терять предшественника.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BuildReport: from=%s, to=%s, period=%q", req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat), req.Period)

	// 1. Валидация
	if req.From.IsZero() || req.To.IsZero() {
		return nil, fmt.Errorf("%w: from and to are required", domain.ErrInvalidInput)
	}
	if !req.To.After(req.From) {
		return nil, fmt.Errorf("%w: to must be after from", domain.ErrInvalidInput)
	}
	period, err := domain.ParsePeriod(req.Period)
	if err != nil {
		uc.logger.Warn("BuildReport: %v", err)
		return nil, err
	}

	// 2. Бронирования диапазона в порядке (оборудование, начало)
	reservations, err := uc.reservationRepo.ListForReport(ctx, req.From, req.To, req.EquipmentID)
	if err != nil {
		uc.logger.Error("BuildReport: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	// 3. Классификация одним проходом
	now := uc.timeProvider.Now()
	classified := domain.ClassifySequence(reservations, now)

	// 4. Фильтры по человеку
	rows := make([]Row, 0, len(classified))
	selected := make([]*domain.Reservation, 0, len(classified))
	counts := make(map[domain.Label]int)
	for _, c := range classified {
		if !matches(c.Reservation, req.StudentName, req.Supervisor) {
			continue
		}
		rows = append(rows, Row{Reservation: c.Reservation, Label: c.Label})
		selected = append(selected, c.Reservation)
		counts[c.Label]++
	}

	uc.logger.Info("BuildReport: classified %d reservations, %d after filters", len(classified), len(rows))

	return &Response{
		From:         req.From,
		To:           req.To,
		Period:       period,
		Rows:         rows,
		LabelCounts:  counts,
		Totals:       totals(selected),
		ByPeriod:     domain.AggregateByPeriod(selected, period, now.Location()),
		ByPerson:     domain.AggregateByPerson(selected),
		BySupervisor: domain.AggregateBySupervisor(selected),
	}, nil
}

func matches(r *domain.Reservation, studentName, supervisor string) bool {
	if studentName != "" && !containsFold(r.Requester.Name, studentName) {
		return false
	}
	if supervisor != "" && !containsFold(r.Requester.Supervisor, supervisor) {
		return false
	}
	return true
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(substr)))
}

func totals(reservations []*domain.Reservation) Totals {
	hours, revenue := decimal.Zero, decimal.Zero
	count := 0
	for _, r := range reservations {
		if r.Status != domain.StatusCompleted || r.ActualStart == nil {
			continue
		}
		count++
		hours = hours.Add(domain.UsageHours(r))
		if r.TotalCost != nil {
			revenue = revenue.Add(decimal.NewFromFloat(*r.TotalCost))
		}
	}
	return Totals{
		Count:        count,
		TotalHours:   hours.Round(2).InexactFloat64(),
		TotalRevenue: revenue.Round(2).InexactFloat64(),
	}
}
