package validation

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
)

// Validator проверяет окно бронирования. Первая нарушенная проверка определяет ошибку.
type Validator struct {
	reservationRepo ReservationRepository
	timeProvider    TimeProvider
}

// NewValidator создает валидатор
func NewValidator(reservationRepo ReservationRepository, timeProvider TimeProvider) *Validator {
	return &Validator{
		reservationRepo: reservationRepo,
		timeProvider:    timeProvider,
	}
}

// Validate выполняет проверки политики и затем проверку пересечений.
// Должен вызываться внутри той же транзакции, что и последующая запись.
func (v *Validator) Validate(ctx context.Context, req *Request) (*Result, error) {
	outOfHours, err := CheckPolicy(req, v.timeProvider.Now())
	if err != nil {
		return nil, err
	}

	window := domain.TimeRange{Start: req.Start, End: req.End}
	overlapping, err := v.reservationRepo.FindOverlapping(ctx, req.Equipment.ID, window, req.ExcludeReservationID)
	if err != nil {
		return nil, fmt.Errorf("%w: find overlapping reservations: %v", ErrInternal, err)
	}
	if len(overlapping) > 0 {
		return nil, fmt.Errorf("%w: overlaps reservation %s", domain.ErrSlotConflict, overlapping[0].BookingCode)
	}

	return &Result{OutOfHours: outOfHours}, nil
}

// CheckPolicy проверки, не требующие хранилища, в фиксированном порядке:
// окно, длительность, прошлое, горизонт, допуск, рабочие часы.
// Календарные вычисления выполняются в часовом поясе now.
func CheckPolicy(req *Request, now time.Time) (outOfHours bool, err error) {
	loc := now.Location()
	availability := req.Availability

	// 1. Конец после начала
	if !req.End.After(req.Start) {
		return false, domain.ErrEndBeforeStart
	}

	// 2. Длительность в [min, max]
	duration := req.End.Sub(req.Start)
	if duration < availability.MinDuration() || duration > availability.MaxDuration() {
		return false, domain.WithDetail(domain.ErrDurationOutOfBounds, "allowed %d-%d minutes, requested %d",
			availability.MinDurationMinutes, availability.MaxDurationMinutes, int(duration.Minutes()))
	}

	// 3. Не в прошлом
	if req.Start.Before(now) {
		return false, domain.ErrStartInPast
	}

	// 4. Не дальше горизонта (включительно до конца дня today + advanceDays)
	if !availability.WithinHorizon(req.Start, now, loc) {
		return false, domain.WithDetail(domain.ErrBeyondHorizon, "bookable up to %d days ahead", availability.AdvanceDays)
	}

	// 5. Список допуска
	if !req.Equipment.AllowsRequester(req.RequesterName) {
		return false, domain.ErrNeedsWhitelist
	}

	// 6. Рабочие часы на дату начала
	window := domain.TimeRange{Start: req.Start, End: req.End}
	ranges := availability.OpenRanges(req.Start, loc)
	if !domain.InHours(ranges, window) {
		if !req.Equipment.AllowOutOfHours {
			return false, domain.ErrEquipmentClosed
		}
		return true, nil
	}

	return false, nil
}
