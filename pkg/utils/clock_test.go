package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClock(t *testing.T) {
	m, ok := ParseClock("07:30")
	assert.True(t, ok)
	assert.Equal(t, 450, m)

	m, ok = ParseClock("24:00")
	assert.True(t, ok)
	assert.Equal(t, 1440, m)

	_, ok = ParseClock("7:30")
	assert.False(t, ok)

	assert.Equal(t, "07:30", ClockString(450))
	assert.Equal(t, "24:00", ClockString(1440))
}

func TestParseClockRejectsOutOfDay(t *testing.T) {
	for _, value := range []string{"24:01", "25:00", "12:60", ""} {
		_, ok := ParseClock(value)
		assert.False(t, ok, value)
	}
}
