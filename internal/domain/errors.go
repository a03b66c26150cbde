package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Every ReasonError unwraps to exactly one of them.
var (
	ErrNotFound                  = errors.New("not found")
	ErrValidationFailed          = errors.New("validation failed")
	ErrConflict                  = errors.New("conflict")
	ErrPolicyViolation           = errors.New("policy violation")
	ErrNeedsWhitelistApplication = errors.New("needs whitelist application")
)

// ReasonError стабильная причина отказа с машиночитаемым кодом
type ReasonError struct {
	Kind    error
	Code    string
	Message string
}

func (e *ReasonError) Error() string {
	return e.Message
}

// Unwrap возвращает вид ошибки, чтобы errors.Is работал и по причине, и по виду
func (e *ReasonError) Unwrap() error {
	return e.Kind
}

func newReason(kind error, code, message string) *ReasonError {
	return &ReasonError{Kind: kind, Code: code, Message: message}
}

// DetailError attaches caller-facing detail (allowed window, bounds) to a reason.
type DetailError struct {
	Reason *ReasonError
	Detail string
}

func (e *DetailError) Error() string {
	return e.Reason.Message + ": " + e.Detail
}

func (e *DetailError) Unwrap() error {
	return e.Reason
}

// WithDetail wraps reason with a formatted detail that is safe to show to the caller.
func WithDetail(reason *ReasonError, format string, args ...interface{}) error {
	return &DetailError{Reason: reason, Detail: fmt.Sprintf(format, args...)}
}

// PublicMessage returns the reason message, extended with its detail when present.
func PublicMessage(err error) string {
	var detailed *DetailError
	if errors.As(err, &detailed) {
		return detailed.Error()
	}
	if reason, ok := ReasonOf(err); ok {
		return reason.Message
	}
	return ""
}

// ReasonOf извлекает причину из цепочки ошибок
func ReasonOf(err error) (*ReasonError, bool) {
	var reason *ReasonError
	if errors.As(err, &reason) {
		return reason, true
	}
	return nil, false
}

// NotFound
var (
	ErrEquipmentNotFound   = newReason(ErrNotFound, "equipment_not_found", "equipment not found")
	ErrReservationNotFound = newReason(ErrNotFound, "reservation_not_found", "reservation not found")
	ErrApplicationNotFound = newReason(ErrNotFound, "application_not_found", "whitelist application not found")
)

// ValidationFailed
var (
	ErrEndBeforeStart            = newReason(ErrValidationFailed, "end_before_start", "end time must be after start time")
	ErrDurationOutOfBounds       = newReason(ErrValidationFailed, "duration_out_of_bounds", "reservation duration is outside the allowed range")
	ErrStartInPast               = newReason(ErrValidationFailed, "start_in_past", "cannot reserve a time in the past")
	ErrBeyondHorizon             = newReason(ErrValidationFailed, "beyond_horizon", "start time is beyond the advance booking horizon")
	ErrEquipmentClosed           = newReason(ErrValidationFailed, "equipment_closed", "equipment is not open for the requested window")
	ErrInvalidConsumableQuantity = newReason(ErrValidationFailed, "invalid_consumable_quantity", "consumable quantity must not be negative")
	ErrInvalidStatus             = newReason(ErrValidationFailed, "invalid_status", "unknown reservation status")
	ErrInvalidAvailability       = newReason(ErrValidationFailed, "invalid_availability", "invalid availability configuration")
	ErrInvalidInput              = newReason(ErrValidationFailed, "invalid_input", "invalid input data")
)

// Conflict
var (
	ErrSlotConflict = newReason(ErrConflict, "slot_conflict", "the requested window overlaps an existing reservation")
)

// PolicyViolation
var (
	ErrCannotCancel       = newReason(ErrPolicyViolation, "cannot_cancel", "only pending or approved reservations can be cancelled")
	ErrNotPending         = newReason(ErrPolicyViolation, "not_pending", "only pending items can be approved or rejected")
	ErrCannotReschedule   = newReason(ErrPolicyViolation, "cannot_reschedule", "only pending or approved reservations can be rescheduled")
	ErrAlreadyModified    = newReason(ErrPolicyViolation, "already_modified", "reservation has already been rescheduled once")
	ErrNotApproved        = newReason(ErrPolicyViolation, "not_approved", "only approved reservations can be checked in")
	ErrCheckInTooEarly    = newReason(ErrPolicyViolation, "check_in_too_early", "check-in is not open yet")
	ErrCheckInTooLate     = newReason(ErrPolicyViolation, "check_in_too_late", "check-in window has closed")
	ErrNotActive          = newReason(ErrPolicyViolation, "not_active", "only active reservations can be checked out")
	ErrEquipmentInUse     = newReason(ErrPolicyViolation, "equipment_in_use", "equipment has open reservations")
	ErrApplicationDecided = newReason(ErrPolicyViolation, "application_decided", "whitelist application has already been decided")
)

// NeedsWhitelistApplication
var (
	ErrNeedsWhitelist = newReason(ErrNeedsWhitelistApplication, "needs_whitelist_application", "requester is not on the equipment whitelist")
)

// Outcome метка результата операции для метрик: "ok", код причины или "error"
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	if reason, ok := ReasonOf(err); ok {
		return reason.Code
	}
	return "error"
}
