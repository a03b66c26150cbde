package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEquipment_WhitelistEntries(t *testing.T) {
	eq := &Equipment{Whitelist: " Alice ,Bob，Carol\n\n Dave \r\nEve,, "}
	assert.Equal(t, []string{"Alice", "Bob", "Carol", "Dave", "Eve"}, eq.WhitelistEntries())
}

func TestEquipment_AllowsRequester(t *testing.T) {
	eq := &Equipment{WhitelistEnabled: true, Whitelist: "Alice,Bob"}

	assert.True(t, eq.AllowsRequester("  Alice "))
	assert.False(t, eq.AllowsRequester("alice"))
	assert.False(t, eq.AllowsRequester("Carol"))

	eq.WhitelistEnabled = false
	assert.True(t, eq.AllowsRequester("Carol"))
}

func TestEquipment_AddToWhitelist(t *testing.T) {
	eq := &Equipment{Whitelist: "Alice，Bob"}

	assert.True(t, eq.AddToWhitelist(" Carol "))
	assert.False(t, eq.AddToWhitelist("Bob"))
	assert.False(t, eq.AddToWhitelist("   "))
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, eq.WhitelistEntries())
	assert.True(t, eq.IsWhitelisted("Carol"))
}

func TestNewBookingCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code := NewBookingCode()
		assert.Len(t, code, BookingCodeLength)
		assert.Regexp(t, "^[0-9A-F]{8}$", code)
		seen[code] = struct{}{}
	}
	assert.Greater(t, len(seen), 95)
	assert.Equal(t, "AB12CD34", NormalizeBookingCode(" ab12cd34 "))
}
