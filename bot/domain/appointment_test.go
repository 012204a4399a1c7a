package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseWeekday(t *testing.T) {
	for _, wd := range Weekdays {
		got, ok := ParseWeekday(string(wd))
		assert.True(t, ok)
		assert.Equal(t, wd, got)
	}

	_, ok := ParseWeekday("monday")
	assert.False(t, ok)
	_, ok = ParseWeekday("")
	assert.False(t, ok)
}

func TestWeekdayRowsCoverAllDays(t *testing.T) {
	var seen []string
	for _, row := range WeekdayRows() {
		seen = append(seen, row...)
	}
	assert.Len(t, seen, len(Weekdays))
	for _, wd := range Weekdays {
		assert.Contains(t, seen, string(wd))
	}
}

func TestHasLocation(t *testing.T) {
	a := &Appointment{}
	assert.False(t, a.HasLocation())

	lat, lon := 41.31, 69.24
	a.Latitude = &lat
	assert.False(t, a.HasLocation())

	a.Longitude = &lon
	assert.True(t, a.HasLocation())

	loc, ok := a.LocationValue()
	assert.True(t, ok)
	assert.Equal(t, Location{Latitude: lat, Longitude: lon}, loc)
}
