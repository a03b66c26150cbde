package build_report

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	buildReport "github.com/m04kA/SMC-LabBookingService/internal/usecase/build_report"
)

func TestParseQuery(t *testing.T) {
	loc := time.UTC

	req, err := parseQuery(url.Values{
		"from":        {"2025-06-01"},
		"to":          {"2025-06-30"},
		"period":      {"week"},
		"equipmentId": {"2"},
		"studentName": {"ali"},
	}, loc)
	require.NoError(t, err)
	assert.True(t, req.From.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, loc)))
	assert.True(t, req.To.Equal(time.Date(2025, 7, 1, 0, 0, 0, 0, loc)))
	assert.Equal(t, "week", req.Period)
	assert.Equal(t, int64(2), *req.EquipmentID)
	assert.Equal(t, "ali", req.StudentName)

	_, err = parseQuery(url.Values{"from": {"2025-06-01"}}, loc)
	assert.Error(t, err)

	_, err = parseQuery(url.Values{"from": {"2025-06-01"}, "to": {"2025-06-02"}, "equipmentId": {"x"}}, loc)
	assert.Error(t, err)
}

func TestFromUseCaseResponse(t *testing.T) {
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	resp := FromUseCaseResponse(&buildReport.Response{
		From:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		To:     time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		Period: domain.PeriodMonth,
		Rows: []buildReport.Row{{
			Reservation: &domain.Reservation{ID: 1, RequestedStart: start, Status: domain.StatusCancelled},
			Label:       domain.LabelCancelled,
		}},
		LabelCounts: map[domain.Label]int{domain.LabelCancelled: 1},
		ByPeriod:    []domain.UsageAggregate{{Key: "2025-06", Count: 1, TotalHours: 1, TotalRevenue: 10}},
	})

	assert.Equal(t, "2025-06-01", resp.From)
	assert.Equal(t, "2025-06-30", resp.To)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "cancelled", resp.Rows[0].Label)
	assert.Equal(t, 1, resp.LabelCounts["cancelled"])
	require.Len(t, resp.ByPeriod, 1)
	assert.Equal(t, "2025-06", resp.ByPeriod[0].Key)
	assert.Empty(t, resp.ByPerson)
}
