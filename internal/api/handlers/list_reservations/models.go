package list_reservations

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/m04kA/SMC-LabBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-LabBookingService/internal/service/reservations/models"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

// parseQuery собирает фильтр из ?equipmentId=&status=&from=&to=&limit=&offset=
func parseQuery(q url.Values, loc *time.Location) (*models.ListReservationsRequest, error) {
	req := &models.ListReservationsRequest{Limit: defaultLimit}

	if v := q.Get("equipmentId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid equipmentId %q", v)
		}
		req.EquipmentID = &id
	}
	if v := q.Get("status"); v != "" {
		req.Status = &v
	}
	if v := q.Get("from"); v != "" {
		from, err := handlers.ParseDate(v, loc)
		if err != nil {
			return nil, err
		}
		req.From = &from
	}
	if v := q.Get("to"); v != "" {
		to, err := handlers.ParseDate(v, loc)
		if err != nil {
			return nil, err
		}
		// to включительно: граница - начало следующего дня
		to = to.AddDate(0, 0, 1)
		req.To = &to
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			return nil, fmt.Errorf("invalid limit %q", v)
		}
		if limit > maxLimit {
			limit = maxLimit
		}
		req.Limit = limit
	}
	if v := q.Get("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil || offset < 0 {
			return nil, fmt.Errorf("invalid offset %q", v)
		}
		req.Offset = offset
	}

	return req, nil
}
