package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRFC3339_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	ts := time.Date(2025, 6, 1, 17, 30, 0, 0, loc)

	assert.Equal(t, "2025-06-01T12:00:00Z", FormatRFC3339(ts))
}

func TestParseRFC3339_RoundTrip(t *testing.T) {
	parsed, err := ParseRFC3339("2025-06-01T12:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01T12:00:00Z", FormatRFC3339(parsed))

	_, err = ParseRFC3339("01/06/2025")
	assert.Error(t, err)
}
