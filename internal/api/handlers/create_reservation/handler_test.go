package create_reservation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-LabBookingService/internal/domain"
	createReservation "github.com/m04kA/SMC-LabBookingService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-LabBookingService/pkg/logger"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createReservation.Response), args.Error(1)
}

var loc = time.FixedZone("CST", 8*3600)

const body = `{"equipmentId":1,"studentName":"Alice","studentId":"S1","start":"2025-06-02T10:00","end":"2025-06-02T11:00"}`

func do(t *testing.T, uc *mockUseCase, payload string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewHandler(uc, loc, logger.NewNop())
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/reservations", strings.NewReader(payload)))
	return rec
}

func TestHandle_Created(t *testing.T) {
	uc := &mockUseCase{}
	start := time.Date(2025, 6, 2, 10, 0, 0, 0, loc)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createReservation.Request) bool {
		return req.EquipmentID == 1 && req.Requester.Name == "Alice" &&
			req.Start.Equal(start) && req.End.Equal(start.Add(time.Hour))
	})).Return(&createReservation.Response{
		ID:             7,
		EquipmentID:    1,
		BookingCode:    "ABCD1234",
		Status:         string(domain.StatusApproved),
		RequestedStart: start,
		RequestedEnd:   start.Add(time.Hour),
	}, nil)

	rec := do(t, uc, body)

	require.Equal(t, http.StatusCreated, rec.Code)
	var resp ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ABCD1234", resp.BookingCode)
	assert.Equal(t, "approved", resp.Status)
	assert.Equal(t, "2025-06-02T10:00:00+08:00", resp.RequestedStart)
	uc.AssertExpectations(t)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"whitelist", domain.ErrNeedsWhitelist, http.StatusForbidden, "needs_whitelist_application"},
		{"conflict", domain.ErrSlotConflict, http.StatusConflict, "slot_conflict"},
		{"validation", domain.ErrBeyondHorizon, http.StatusBadRequest, "beyond_horizon"},
		{"not found", domain.ErrEquipmentNotFound, http.StatusNotFound, "equipment_not_found"},
		{"internal", errors.New("db down"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := do(t, uc, body)

			assert.Equal(t, tt.status, rec.Code)
			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.code, resp.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestHandle_BadInput(t *testing.T) {
	uc := &mockUseCase{}

	rec := do(t, uc, `{"equipmentId":1,"start":"tomorrow","end":"2025-06-02T11:00"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, uc, `{"equipmentId":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
