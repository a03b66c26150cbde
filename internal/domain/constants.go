package domain

import "time"

// Default availability configuration (used when the stored configuration is malformed)
const (
	DefaultAdvanceDays        = 7
	DefaultMinDurationMinutes = 30
	DefaultMaxDurationMinutes = 60
)

// Business validation constants
const (
	MaxAdvanceDays         = 365
	MaxDurationMinutes     = 24 * 60
	MinutesPerDay          = 24 * 60
	MaxRequesterNameLength = 100
	MaxEquipmentNameLength = 200
)

// Lifecycle timing constants
const (
	CheckInWindow     = 30 * time.Minute // check-in allowed within ±30 minutes of the requested start
	LateThreshold     = 15 * time.Minute
	OvertimeThreshold = 30 * time.Minute
	CronSlotDuration  = time.Hour
)

// BookingCodeLength длина кода бронирования (hex символы)
const BookingCodeLength = 8

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OpenStatuses статусы, занимающие слот оборудования
var OpenStatuses = []ReservationStatus{
	StatusPending,
	StatusApproved,
	StatusActive,
}
