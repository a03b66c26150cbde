package build_report

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	"github.com/m04kA/SMC-LabBookingService/internal/service/reservations/models"
	buildReport "github.com/m04kA/SMC-LabBookingService/internal/usecase/build_report"
)

// RowResponse бронирование с меткой
type RowResponse struct {
	models.ReservationResponse
	Label string `json:"label"`
}

// AggregateResponse итог по группе
type AggregateResponse struct {
	Key          string  `json:"key"`
	StudentID    string  `json:"studentId,omitempty"`
	Name         string  `json:"name,omitempty"`
	Count        int     `json:"count"`
	TotalHours   float64 `json:"totalHours"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// TotalsResponse итоги по завершенным бронированиям
type TotalsResponse struct {
	Count        int     `json:"count"`
	TotalHours   float64 `json:"totalHours"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// ReportResponse HTTP response model
type ReportResponse struct {
	From         string              `json:"from"`
	To           string              `json:"to"`
	Period       string              `json:"period"`
	Rows         []RowResponse       `json:"rows"`
	LabelCounts  map[string]int      `json:"labelCounts"`
	Totals       TotalsResponse      `json:"totals"`
	ByPeriod     []AggregateResponse `json:"byPeriod"`
	ByPerson     []AggregateResponse `json:"byPerson"`
	BySupervisor []AggregateResponse `json:"bySupervisor"`
}

// parseQuery собирает запрос из ?from=&to=&period=&equipmentId=&studentName=&supervisor=.
// from и to - даты YYYY-MM-DD, to включительно.
func parseQuery(q url.Values, loc *time.Location) (*buildReport.Request, error) {
	from, err := handlers.ParseDate(q.Get("from"), loc)
	if err != nil {
		return nil, err
	}
	to, err := handlers.ParseDate(q.Get("to"), loc)
	if err != nil {
		return nil, err
	}

	req := &buildReport.Request{
		From:        from,
		To:          to.AddDate(0, 0, 1),
		Period:      q.Get("period"),
		StudentName: q.Get("studentName"),
		Supervisor:  q.Get("supervisor"),
	}

	if v := q.Get("equipmentId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid equipmentId %q", v)
		}
		req.EquipmentID = &id
	}

	return req, nil
}

func fromAggregates(items []domain.UsageAggregate) []AggregateResponse {
	result := make([]AggregateResponse, 0, len(items))
	for _, a := range items {
		result = append(result, AggregateResponse{
			Key:          a.Key,
			StudentID:    a.StudentID,
			Name:         a.Name,
			Count:        a.Count,
			TotalHours:   a.TotalHours,
			TotalRevenue: a.TotalRevenue,
		})
	}
	return result
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *buildReport.Response) *ReportResponse {
	rows := make([]RowResponse, 0, len(resp.Rows))
	for _, row := range resp.Rows {
		rows = append(rows, RowResponse{
			ReservationResponse: *models.FromDomainReservation(row.Reservation),
			Label:               string(row.Label),
		})
	}

	labels := make(map[string]int, len(resp.LabelCounts))
	for label, count := range resp.LabelCounts {
		labels[string(label)] = count
	}

	return &ReportResponse{
		From:        resp.From.Format(domain.DateFormat),
		To:          resp.To.AddDate(0, 0, -1).Format(domain.DateFormat),
		Period:      string(resp.Period),
		Rows:        rows,
		LabelCounts: labels,
		Totals: TotalsResponse{
			Count:        resp.Totals.Count,
			TotalHours:   resp.Totals.TotalHours,
			TotalRevenue: resp.Totals.TotalRevenue,
		},
		ByPeriod:     fromAggregates(resp.ByPeriod),
		ByPerson:     fromAggregates(resp.ByPerson),
		BySupervisor: fromAggregates(resp.BySupervisor),
	}
}
