package list_reservations

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	loc := time.UTC

	req, err := parseQuery(url.Values{}, loc)
	require.NoError(t, err)
	assert.Equal(t, defaultLimit, req.Limit)
	assert.Nil(t, req.EquipmentID)
	assert.Nil(t, req.Status)

	req, err = parseQuery(url.Values{
		"equipmentId": {"3"},
		"status":      {"pending"},
		"from":        {"2025-06-01"},
		"to":          {"2025-06-30"},
		"limit":       {"1000"},
		"offset":      {"20"},
	}, loc)
	require.NoError(t, err)
	assert.Equal(t, int64(3), *req.EquipmentID)
	assert.Equal(t, "pending", *req.Status)
	assert.True(t, req.From.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, loc)))
	assert.True(t, req.To.Equal(time.Date(2025, 7, 1, 0, 0, 0, 0, loc)))
	assert.Equal(t, maxLimit, req.Limit)
	assert.Equal(t, 20, req.Offset)

	for _, bad := range []url.Values{
		{"equipmentId": {"abc"}},
		{"from": {"06/01/2025"}},
		{"limit": {"0"}},
		{"offset": {"-1"}},
	} {
		_, err := parseQuery(bad, loc)
		assert.Error(t, err, bad.Encode())
	}
}
