package domain

import (
	"strings"
	"time"
)

// PriceType billing model of equipment
type PriceType string

const (
	PriceTypePerHour PriceType = "per_hour"
	PriceTypePerUse  PriceType = "per_use"
)

// IsValid returns true for a known price type
func (p PriceType) IsValid() bool {
	return p == PriceTypePerHour || p == PriceTypePerUse
}

// Equipment represents a bookable lab instrument
type Equipment struct {
	ID          int64
	Name        string
	Description string

	// AvailabilityConfig raw JSON document, see Availability
	AvailabilityConfig []byte

	AllowOutOfHours bool
	AutoApprove     bool

	PriceType     PriceType
	Price         float64
	ConsumableFee float64

	WhitelistEnabled bool
	Whitelist        string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AvailabilityOrDefault returns the parsed availability configuration.
// When the stored document is malformed it returns DefaultAvailability
// together with the parse error so the caller can report it.
func (e *Equipment) AvailabilityOrDefault() (Availability, error) {
	a, err := ParseAvailability(e.AvailabilityConfig)
	if err != nil {
		return DefaultAvailability(), err
	}
	return a, nil
}

// HasConsumables returns true if the equipment charges for consumables
func (e *Equipment) HasConsumables() bool {
	return e.ConsumableFee > 0
}

// WhitelistEntries splits the raw whitelist on ',', '，' and newlines, trimming blanks
func (e *Equipment) WhitelistEntries() []string {
	fields := strings.FieldsFunc(e.Whitelist, func(r rune) bool {
		return r == ',' || r == '，' || r == '\n' || r == '\r'
	})

	entries := make([]string, 0, len(fields))
	for _, f := range fields {
		if name := strings.TrimSpace(f); name != "" {
			entries = append(entries, name)
		}
	}
	return entries
}

// IsWhitelisted returns true if the trimmed name exactly matches an entry
func (e *Equipment) IsWhitelisted(name string) bool {
	name = NormalizeName(name)
	for _, entry := range e.WhitelistEntries() {
		if entry == name {
			return true
		}
	}
	return false
}

// AllowsRequester returns true if the whitelist gate lets name through
func (e *Equipment) AllowsRequester(name string) bool {
	return !e.WhitelistEnabled || e.IsWhitelisted(name)
}

// AddToWhitelist appends the normalized name. Returns false if it was already present.
func (e *Equipment) AddToWhitelist(name string) bool {
	name = NormalizeName(name)
	if name == "" || e.IsWhitelisted(name) {
		return false
	}
	entries := append(e.WhitelistEntries(), name)
	e.Whitelist = strings.Join(entries, "\n")
	return true
}

// Cost bills a usage window on this equipment
func (e *Equipment) Cost(start, end time.Time, consumableQuantity float64) float64 {
	return CalculateCost(e.PriceType, e.Price, e.ConsumableFee, consumableQuantity, start, end)
}

// NormalizeName trims surrounding whitespace of a person's name
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}
