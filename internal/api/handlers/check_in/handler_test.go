package check_in

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	checkIn "github.com/m04kA/SMC-LabBookingService/internal/usecase/check_in"
	"github.com/m04kA/SMC-LabBookingService/pkg/logger"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *checkIn.Request) (*checkIn.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkIn.Response), args.Error(1)
}

var start = time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)

func do(uc *mockUseCase, payload string) *httptest.ResponseRecorder {
	h := NewHandler(uc, logger.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reservations/ABCD1234/check-in", strings.NewReader(payload))
	req = mux.SetURLVars(req, map[string]string{"code": "ABCD1234"})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_CheckedIn(t *testing.T) {
	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *checkIn.Request) bool {
		return req.BookingCode == "ABCD1234" && req.ConsumableQuantity != nil && *req.ConsumableQuantity == 2
	})).Return(&checkIn.Response{
		ID:                 7,
		BookingCode:        "ABCD1234",
		Status:             string(domain.StatusActive),
		ActualStart:        start.Add(5 * time.Minute),
		ConsumableQuantity: 2,
	}, nil)

	rec := do(uc, `{"consumableQuantity":2}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp CheckInResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, "2025-06-02T10:05:00Z", resp.ActualStart)
	uc.AssertExpectations(t)
}

func TestHandle_RejectionShowsAllowedWindow(t *testing.T) {
	reservation := &domain.Reservation{
		Status:         domain.StatusApproved,
		RequestedStart: start,
		RequestedEnd:   start.Add(time.Hour),
	}

	tests := []struct {
		name string
		now  time.Time
		code string
	}{
		{"too early", start.Add(-31 * time.Minute), "check_in_too_early"},
		{"too late", start.Add(31 * time.Minute), "check_in_too_late"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkInErr := reservation.Clone().CheckIn(&domain.Equipment{}, tt.now, 0)
			require.Error(t, checkInErr)

			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, checkInErr)

			rec := do(uc, "")

			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
			assert.Contains(t, resp.Message, "2025-06-02T09:30:00Z")
			assert.Contains(t, resp.Message, "2025-06-02T10:30:00Z")
		})
	}
}
