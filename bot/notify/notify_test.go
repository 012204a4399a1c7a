package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/apptbot/bot/domain"

	tele "gopkg.in/telebot.v4"
)

type fakeSender struct {
	sent    []interface{}
	to      []tele.Recipient
	pinErr  error
	textErr error
}

func (f *fakeSender) Send(to tele.Recipient, what interface{}, _ ...interface{}) (*tele.Message, error) {
	if _, ok := what.(*tele.Location); ok && f.pinErr != nil {
		return nil, f.pinErr
	}
	if _, ok := what.(string); ok && f.textErr != nil {
		return nil, f.textErr
	}
	f.sent = append(f.sent, what)
	f.to = append(f.to, to)
	return &tele.Message{}, nil
}

func appointmentWithLocation() *domain.Appointment {
	lat, lon := 41.31, 69.24
	full := "Central Clinic, 12 Main St"
	return &domain.Appointment{
		ID:          1,
		ChatID:      42,
		FullName:    "Jane Doe",
		Phone:       "+15550001122",
		Address:     "Central Clinic",
		FullAddress: &full,
		Latitude:    &lat,
		Longitude:   &lon,
		Weekday:     domain.Friday,
	}
}

func TestNotifySendsPinBeforeSummary(t *testing.T) {
	sender := &fakeSender{}
	n := New(99)
	n.Bind(sender)

	err := n.NotifyNewAppointment(context.Background(), appointmentWithLocation())
	require.NoError(t, err)

	require.Len(t, sender.sent, 2)
	pin, ok := sender.sent[0].(*tele.Location)
	require.True(t, ok)
	assert.InDelta(t, 41.31, float64(pin.Lat), 0.001)
	assert.InDelta(t, 69.24, float64(pin.Lng), 0.001)

	text, ok := sender.sent[1].(string)
	require.True(t, ok)
	assert.Contains(t, text, "🔔 New appointment:")
	assert.Contains(t, text, "🆔 Chat ID: 42")

	for _, to := range sender.to {
		chat, ok := to.(*tele.Chat)
		require.True(t, ok)
		assert.Equal(t, int64(99), chat.ID)
	}
}

func TestNotifyWithoutLocationSkipsPin(t *testing.T) {
	sender := &fakeSender{}
	n := New(99)
	n.Bind(sender)

	a := appointmentWithLocation()
	a.Latitude, a.Longitude, a.FullAddress = nil, nil, nil

	require.NoError(t, n.NotifyNewAppointment(context.Background(), a))
	require.Len(t, sender.sent, 1)
	_, ok := sender.sent[0].(string)
	assert.True(t, ok)
}

func TestNotifyPinFailureStillSendsSummary(t *testing.T) {
	sender := &fakeSender{pinErr: errors.New("flood limit")}
	n := New(99)
	n.Bind(sender)

	err := n.NotifyNewAppointment(context.Background(), appointmentWithLocation())
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	_, ok := sender.sent[0].(string)
	assert.True(t, ok)
}

func TestNotifySummaryFailureReturnsError(t *testing.T) {
	sender := &fakeSender{textErr: errors.New("chat not found")}
	n := New(99)
	n.Bind(sender)

	err := n.NotifyNewAppointment(context.Background(), appointmentWithLocation())
	assert.Error(t, err)
}

func TestNotifyUnboundSenderFails(t *testing.T) {
	n := New(99)
	err := n.NotifyNewAppointment(context.Background(), appointmentWithLocation())
	assert.Error(t, err)
}

func TestNotifyZeroAdminIsNoop(t *testing.T) {
	n := New(0)
	assert.NoError(t, n.NotifyNewAppointment(context.Background(), appointmentWithLocation()))
}
