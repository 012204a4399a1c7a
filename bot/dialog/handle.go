package dialog

import (
	"context"
	"fmt"
	"strings"

	"github.com/m3rciful/apptbot/bot/domain"
	"github.com/m3rciful/apptbot/bot/format"
	"github.com/m3rciful/apptbot/core/logger"
	"github.com/m3rciful/apptbot/core/telegram/state"
	"log/slog"
)

func (c *Controller) handleLocked(ctx context.Context, user UserRef, ev Event) (*Reply, error) {
	// Reply-keyboard buttons take precedence over dialog input at any step.
	switch ev.Text {
	case BtnCancel:
		c.resetLocked(user.UserID)
		return reply(textBookingCanceled, mainMenuMarkup()), nil
	case BtnNewAppointment:
		return c.newAppointmentLocked(ctx, user, ev.SenderName), nil
	case BtnMyAppointments:
		return c.listLocked(ctx, user)
	case BtnContact:
		c.resetLocked(user.UserID)
		return reply(fmt.Sprintf(textContactFmt, c.contact), mainMenuMarkup()), nil
	case BtnHelp:
		c.resetLocked(user.UserID)
		return reply(textHelp, mainMenuMarkup()), nil
	}

	st := c.states.GetState(user.UserID)
	switch st {
	case StateConfirmName:
		return c.onConfirmName(user, ev), nil
	case StateAskName:
		return c.onAskName(user, ev), nil
	case StateAskPhone:
		return c.onAskPhone(user, ev), nil
	case StateAskAddress:
		return c.onAskAddress(ctx, user, ev), nil
	case StateAskWeekday:
		return c.onAskWeekday(user, ev), nil
	case StateConfirmAppointment:
		return c.onConfirmAppointment(ctx, user, ev)
	case state.StateIdle:
		return nil, nil
	}
	return nil, nil
}

func (c *Controller) onConfirmName(user UserRef, ev Event) *Reply {
	switch ev.Text {
	case BtnYes:
		c.states.SetState(user.UserID, StateAskPhone)
		return reply(textAskPhone, phoneRequestMarkup())
	case BtnNo:
		c.draft(user.UserID).FullName = ""
		c.states.SetState(user.UserID, StateAskName)
		return reply(textAskName, askNameMarkup())
	}
	return nil
}

func (c *Controller) onAskName(user UserRef, ev Event) *Reply {
	name := strings.TrimSpace(ev.Text)
	if name == "" {
		return reply(textAskName, askNameMarkup())
	}
	c.draft(user.UserID).FullName = name
	c.states.SetState(user.UserID, StateAskPhone)
	return reply(fmt.Sprintf(textThanksPhoneFmt, name), phoneRequestMarkup())
}

func (c *Controller) onAskPhone(user UserRef, ev Event) *Reply {
	if ev.Phone == "" {
		return reply(textAskPhone, phoneRequestMarkup())
	}
	c.draft(user.UserID).Phone = ev.Phone
	c.states.SetState(user.UserID, StateAskAddress)
	return reply(textAskAddress, locationRequestMarkup())
}

func (c *Controller) onAskAddress(ctx context.Context, user UserRef, ev Event) *Reply {
	d := c.draft(user.UserID)

	if loc := ev.Location; loc != nil {
		d.Location = &domain.Location{Latitude: loc.Latitude, Longitude: loc.Longitude}

		res := c.geocoder.Resolve(ctx, loc.Latitude, loc.Longitude)
		d.Address = res.ShortAddress
		d.FullAddress = res.FullAddress

		c.states.SetState(user.UserID, StateAskWeekday)

		shown := res.FullAddress
		if shown == "" {
			shown = res.ShortAddress
		}
		return reply(fmt.Sprintf(textLocationReceivedFmt, shown), weekdayMarkup())
	}

	address := strings.TrimSpace(ev.Text)
	if address == "" {
		return nil
	}
	d.Address = address
	d.Location = nil
	d.FullAddress = ""
	c.states.SetState(user.UserID, StateAskWeekday)
	return reply(textAskWeekday, weekdayMarkup())
}

func (c *Controller) onAskWeekday(user UserRef, ev Event) *Reply {
	wd, ok := domain.ParseWeekday(ev.Text)
	if !ok {
		return nil
	}
	d := c.draft(user.UserID)
	d.Weekday = wd
	c.states.SetState(user.UserID, StateConfirmAppointment)

	preview := d.toAppointment(user.ChatID)
	return reply(format.Summary(preview), yesCancelMarkup())
}

func (c *Controller) onConfirmAppointment(ctx context.Context, user UserRef, ev Event) (*Reply, error) {
	if ev.Text != BtnYes {
		return nil, nil
	}

	d := c.draft(user.UserID)
	appt := d.toAppointment(user.ChatID)

	if err := c.store.Create(ctx, appt); err != nil {
		logger.Error(ctx, "dialog", "booking.save.fail",
			slog.String("status", "fail"),
			slog.Int64("chat_id", user.ChatID),
			slog.String("err", err.Error()),
		)
		// Keep the confirmation state so the user can retry.
		return reply(textError, nil), newPersistenceError("save appointment", err)
	}

	logger.Info(ctx, "dialog", "booking.saved",
		slog.String("status", "ok"),
		slog.Int64("chat_id", user.ChatID),
		slog.Int64("appointment_id", appt.ID),
		slog.String("weekday", string(appt.Weekday)),
	)

	// Notification failures must not undo a saved booking.
	if c.notifier != nil {
		if err := c.notifier.NotifyNewAppointment(ctx, appt); err != nil {
			logger.Warn(ctx, "dialog", "booking.notify.fail",
				slog.String("status", "fail"),
				slog.Int64("appointment_id", appt.ID),
				slog.String("err", err.Error()),
			)
		}
	}

	c.resetLocked(user.UserID)
	return reply(textSaved, mainMenuMarkup()), nil
}
