package domain

import "time"

// ReservationFilter фильтр административного списка бронирований
type ReservationFilter struct {
	EquipmentID *int64
	Status      *ReservationStatus
	From        *time.Time // requested_start >= From
	To          *time.Time // requested_start < To
	Limit       int
	Offset      int
}

// ReportFilter фильтр отчета по использованию
type ReportFilter struct {
	From        time.Time // requested_start >= From
	To          time.Time // requested_start < To
	EquipmentID *int64
	StudentName string // case-insensitive substring
	Supervisor  string // case-insensitive substring
}
