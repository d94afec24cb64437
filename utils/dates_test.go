package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysBetween(t *testing.T) {
	start := time.Date(2025, 1, 10, 23, 59, 0, 0, time.UTC)
	end := time.Date(2025, 2, 1, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 22, DaysBetween(start, end))

	// Reversed order is negative
	assert.Equal(t, -22, DaysBetween(end, start))

	// Same calendar day regardless of clock time
	sameDay := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, DaysBetween(start, sameDay))
}

func TestDaysBetweenAcrossZoneBoundaries(t *testing.T) {
	// One calendar day apart although the instants are only 23h apart;
	// naive hour division would truncate this to 0
	start := time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 9, 0, 0, 0, 0, time.FixedZone("UTC+1", 3600))
	assert.Equal(t, 1, DaysBetween(start, end))
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, 4, 2, 1, 0, 0, 0, time.UTC)
	b := time.Date(2025, 4, 2, 23, 30, 0, 0, time.UTC)
	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(a, b.AddDate(0, 0, 1)))
}

func TestSameDayAcrossZones(t *testing.T) {
	// A date stored in UTC matches the same calendar day on a server in
	// another zone even though the instants differ
	ist := time.FixedZone("UTC+5:30", 5*3600+1800)
	stored := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	local := time.Date(2025, 5, 1, 0, 0, 0, 0, ist)
	assert.True(t, SameDay(stored, local))
	assert.False(t, SameDay(stored, local.AddDate(0, 0, 1)))
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, 1, 10, 14, 5, 0, 0, time.UTC)
	assert.Equal(t, "2025-01-10", FormatDate(d))
}
