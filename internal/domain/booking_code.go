package domain

import (
	"strings"

	"github.com/google/uuid"
)

// NewBookingCode returns an 8-character uppercase hex code
func NewBookingCode() string {
	id := uuid.New()
	return strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:BookingCodeLength])
}

// NormalizeBookingCode codes are case-insensitive
func NormalizeBookingCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
