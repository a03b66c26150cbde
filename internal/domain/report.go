package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Label retroactive audit label of a reservation
type Label string

const (
	LabelCancelled       Label = "cancelled"
	LabelAwaitingCheckIn Label = "awaiting_check_in"
	LabelNoShow          Label = "no_show"
	LabelLate            Label = "late"
	LabelOvertime        Label = "overtime"
	LabelNormal          Label = "normal"
)

// Classify labels r given its immediate predecessor on the same equipment (may be nil).
// Priority: cancelled > awaiting check-in / no-show > late > overtime > normal.
// Lateness is excused when the predecessor's actual end ran past r's requested start.
func Classify(r, prev *Reservation, now time.Time) Label {
	if r.Status == StatusCancelled {
		return LabelCancelled
	}

	if r.ActualStart == nil {
		if now.Before(r.RequestedStart) {
			return LabelAwaitingCheckIn
		}
		return LabelNoShow
	}

	if r.ActualStart.Sub(r.RequestedStart) > LateThreshold {
		excused := prev != nil && prev.ActualEnd != nil && prev.ActualEnd.After(r.RequestedStart)
		if !excused {
			return LabelLate
		}
	}

	if r.ActualEnd != nil && r.ActualEnd.Sub(r.RequestedEnd) > OvertimeThreshold {
		return LabelOvertime
	}

	return LabelNormal
}

// ClassifiedReservation reservation with its label
type ClassifiedReservation struct {
	Reservation *Reservation
	Label       Label
}

// ClassifySequence labels reservations in a single pass ordered by
// (equipment, requested start, id), carrying the previous row of the same equipment.
// The input slice is not modified.
func ClassifySequence(reservations []*Reservation, now time.Time) []ClassifiedReservation {
	sorted := make([]*Reservation, len(reservations))
	copy(sorted, reservations)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.EquipmentID != b.EquipmentID {
			return a.EquipmentID < b.EquipmentID
		}
		if !a.RequestedStart.Equal(b.RequestedStart) {
			return a.RequestedStart.Before(b.RequestedStart)
		}
		return a.ID < b.ID
	})

	result := make([]ClassifiedReservation, 0, len(sorted))
	var prev *Reservation
	for _, r := range sorted {
		if prev != nil && prev.EquipmentID != r.EquipmentID {
			prev = nil
		}
		result = append(result, ClassifiedReservation{Reservation: r, Label: Classify(r, prev, now)})
		prev = r
	}
	return result
}

// Period grouping granularity of usage reports
type Period string

const (
	PeriodDay     Period = "day"
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

// ParsePeriod converts a string into a period, empty means day
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PeriodDay, nil
	case PeriodDay, PeriodWeek, PeriodMonth, PeriodQuarter, PeriodYear:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown period %q", ErrInvalidInput, s)
	}
}

// Key formats t as the bucket key of the period
func (p Period) Key(t time.Time, loc *time.Location) string {
	t = t.In(loc)
	switch p {
	case PeriodWeek:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case PeriodMonth:
		return t.Format("2006-01")
	case PeriodQuarter:
		return fmt.Sprintf("%d-Q%d", t.Year(), (int(t.Month())+2)/3)
	case PeriodYear:
		return t.Format("2006")
	default:
		return t.Format(DateFormat)
	}
}

// Report aggregate limits
const (
	MaxPeriodBuckets     = 30
	MaxPersonBuckets     = 20
	MaxSupervisorBuckets = 20
)

// UsageAggregate total usage of a bucket
type UsageAggregate struct {
	Key          string
	StudentID    string
	Name         string
	Count        int
	TotalHours   float64
	TotalRevenue float64
}

type aggregateAcc struct {
	agg     UsageAggregate
	hours   decimal.Decimal
	revenue decimal.Decimal
}

// UsageHours actual usage of a completed reservation in hours
func UsageHours(r *Reservation) decimal.Decimal {
	if r.ActualStart == nil || r.ActualEnd == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(r.ActualEnd.Sub(*r.ActualStart).Hours())
}

func revenue(r *Reservation) decimal.Decimal {
	if r.TotalCost == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*r.TotalCost)
}

func aggregate(reservations []*Reservation, key func(r *Reservation) (string, UsageAggregate)) []UsageAggregate {
	accs := make(map[string]*aggregateAcc)
	order := make([]string, 0)

	for _, r := range reservations {
		if r.Status != StatusCompleted || r.ActualStart == nil {
			continue
		}
		k, proto := key(r)
		acc, ok := accs[k]
		if !ok {
			acc = &aggregateAcc{agg: proto, hours: decimal.Zero, revenue: decimal.Zero}
			accs[k] = acc
			order = append(order, k)
		}
		acc.agg.Count++
		acc.hours = acc.hours.Add(UsageHours(r))
		acc.revenue = acc.revenue.Add(revenue(r))
	}

	result := make([]UsageAggregate, 0, len(order))
	for _, k := range order {
		acc := accs[k]
		acc.agg.TotalHours = acc.hours.Round(2).InexactFloat64()
		acc.agg.TotalRevenue = acc.revenue.Round(2).InexactFloat64()
		result = append(result, acc.agg)
	}
	return result
}

// AggregateByPeriod groups completed reservations by the period of their actual start,
// newest bucket first
func AggregateByPeriod(reservations []*Reservation, period Period, loc *time.Location) []UsageAggregate {
	result := aggregate(reservations, func(r *Reservation) (string, UsageAggregate) {
		k := period.Key(*r.ActualStart, loc)
		return k, UsageAggregate{Key: k}
	})
	sort.SliceStable(result, func(i, j int) bool { return result[i].Key > result[j].Key })
	return limit(result, MaxPeriodBuckets)
}

// AggregateByPerson groups completed reservations by (student id, name), highest revenue first
func AggregateByPerson(reservations []*Reservation) []UsageAggregate {
	result := aggregate(reservations, func(r *Reservation) (string, UsageAggregate) {
		k := r.Requester.StudentID + "\x00" + r.Requester.Name
		return k, UsageAggregate{Key: r.Requester.StudentID, StudentID: r.Requester.StudentID, Name: r.Requester.Name}
	})
	sortByRevenue(result)
	return limit(result, MaxPersonBuckets)
}

// AggregateBySupervisor groups completed reservations by supervisor, highest revenue first
func AggregateBySupervisor(reservations []*Reservation) []UsageAggregate {
	result := aggregate(reservations, func(r *Reservation) (string, UsageAggregate) {
		return r.Requester.Supervisor, UsageAggregate{Key: r.Requester.Supervisor, Name: r.Requester.Supervisor}
	})
	sortByRevenue(result)
	return limit(result, MaxSupervisorBuckets)
}

func sortByRevenue(items []UsageAggregate) {
	sort.SliceStable(items, func(i, j int) bool { return items[i].TotalRevenue > items[j].TotalRevenue })
}

func limit(items []UsageAggregate, n int) []UsageAggregate {
	if len(items) > n {
		return items[:n]
	}
	return items
}
