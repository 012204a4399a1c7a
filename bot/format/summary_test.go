package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m3rciful/apptbot/bot/domain"
)

func sample(withLocation bool) *domain.Appointment {
	a := &domain.Appointment{
		ID:        3,
		ChatID:    42,
		FullName:  "Jane Doe",
		Phone:     "+15550001122",
		Address:   "Central Clinic",
		Weekday:   domain.Friday,
		CreatedAt: time.Date(2026, 8, 14, 9, 30, 0, 0, time.UTC),
	}
	if withLocation {
		lat, lon := 41.31, 69.24
		full := "Central Clinic, 12 Main St, Springfield"
		a.Latitude = &lat
		a.Longitude = &lon
		a.FullAddress = &full
	}
	return a
}

func TestSummaryWithLocation(t *testing.T) {
	s := Summary(sample(true))
	assert.Contains(t, s, "👤 Name: Jane Doe")
	assert.Contains(t, s, "📞 Phone: +15550001122")
	assert.Contains(t, s, "📍 Location: Central Clinic")
	assert.Contains(t, s, "🏠 Full address: Central Clinic, 12 Main St, Springfield")
	assert.Contains(t, s, "📅 Day: Friday")
	assert.Contains(t, s, "Is everything correct?")
}

func TestSummaryWithoutLocation(t *testing.T) {
	s := Summary(sample(false))
	assert.Contains(t, s, "📍 Address: Central Clinic")
	assert.NotContains(t, s, "🏠")
}

func TestListItemNumbersFromOne(t *testing.T) {
	item := ListItem(0, sample(false))
	assert.True(t, len(item) > 0)
	assert.Equal(t, "1. 👤 Jane Doe", item[:len("1. 👤 Jane Doe")])
	assert.Contains(t, item, "🕒 14.08.2026 09:30")
}

func TestAdminMessageIncludesChatID(t *testing.T) {
	msg := AdminMessage(sample(true))
	assert.Contains(t, msg, "🔔 New appointment:")
	assert.Contains(t, msg, "🆔 Chat ID: 42")
	assert.Contains(t, msg, "🏠 Full address:")
}
