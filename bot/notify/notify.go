// Package notify delivers new-appointment alerts to the operator chat.
package notify

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/m3rciful/apptbot/bot/domain"
	"github.com/m3rciful/apptbot/bot/format"
	"github.com/m3rciful/apptbot/core/logger"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

// Sender is the subset of tele.Bot used for outbound notifications.
type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Notifier sends appointment alerts to a fixed admin chat. The sender is
// bound after the bot is constructed, so an unbound notifier drops alerts
// with a warning instead of failing the booking.
type Notifier struct {
	adminID int64
	sender  atomic.Pointer[senderBox]
}

type senderBox struct{ s Sender }

// New creates a Notifier for the given admin chat ID.
func New(adminID int64) *Notifier {
	return &Notifier{adminID: adminID}
}

// Bind wires the outbound sender. Safe to call from lifecycle hooks.
func (n *Notifier) Bind(s Sender) {
	if s == nil {
		n.sender.Store(nil)
		return
	}
	n.sender.Store(&senderBox{s: s})
}

// NotifyNewAppointment sends the location pin (when present) followed by
// the appointment summary. The pin is best-effort: its failure does not
// abort the text alert.
func (n *Notifier) NotifyNewAppointment(ctx context.Context, a *domain.Appointment) error {
	if n == nil || n.adminID == 0 {
		return nil
	}
	box := n.sender.Load()
	if box == nil {
		logger.Warn(ctx, "notify", "admin.skip",
			slog.String("status", "fail"),
			slog.Int64("appointment_id", a.ID),
			slog.String("err", "sender not bound"),
		)
		return fmt.Errorf("notify: sender not bound")
	}

	admin := &tele.Chat{ID: n.adminID}

	if loc, ok := a.LocationValue(); ok {
		pin := &tele.Location{
			Lat: float32(loc.Latitude),
			Lng: float32(loc.Longitude),
		}
		if _, err := box.s.Send(admin, pin); err != nil {
			logger.Warn(ctx, "notify", "admin.pin.fail",
				slog.String("status", "fail"),
				slog.Int64("appointment_id", a.ID),
				slog.Float64("lat", loc.Latitude),
				slog.Float64("lon", loc.Longitude),
				slog.String("err", err.Error()),
			)
		}
	}

	if _, err := box.s.Send(admin, format.AdminMessage(a)); err != nil {
		logger.Error(ctx, "notify", "admin.fail",
			slog.String("status", "fail"),
			slog.Int64("appointment_id", a.ID),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("notify: send admin message: %w", err)
	}

	logger.Info(ctx, "notify", "admin.sent",
		slog.String("status", "ok"),
		slog.Int64("appointment_id", a.ID),
	)
	return nil
}
