package dialog

import (
	"context"
	"strings"

	"github.com/m3rciful/apptbot/bot/domain"
	tghelpers "github.com/m3rciful/apptbot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// TelegramAdapter maps telebot updates onto the dialog controller.
type TelegramAdapter struct {
	ctrl *Controller
}

// NewTelegramAdapter wraps a controller for telebot routing.
func NewTelegramAdapter(ctrl *Controller) *TelegramAdapter {
	return &TelegramAdapter{ctrl: ctrl}
}

// InProgress reports whether the sender has an active dialog.
func (t *TelegramAdapter) InProgress(userID int64) bool {
	return t.ctrl.InProgress(userID)
}

// HandleUpdate feeds a text, contact, or location update into the dialog.
func (t *TelegramAdapter) HandleUpdate(c tele.Context) error {
	ctx := tghelpers.BuildContext(c)
	reply, err := t.ctrl.Handle(ctx, userRefFrom(c), eventFrom(c))
	if err != nil {
		if sendErr := t.send(c, reply); sendErr != nil {
			return newTransportError("send dialog reply", sendErr)
		}
		return err
	}
	return t.send(c, reply)
}

// StartHandler returns the /start command handler.
func (t *TelegramAdapter) StartHandler() tele.HandlerFunc {
	return t.command(func(ctx context.Context, c tele.Context) (*Reply, error) {
		return t.ctrl.Start(ctx, userRefFrom(c))
	})
}

// NewAppointmentHandler returns the /new command handler.
func (t *TelegramAdapter) NewAppointmentHandler() tele.HandlerFunc {
	return t.command(func(ctx context.Context, c tele.Context) (*Reply, error) {
		return t.ctrl.NewAppointment(ctx, userRefFrom(c), senderNameFrom(c))
	})
}

// AppointmentsHandler returns the /appointments command handler.
func (t *TelegramAdapter) AppointmentsHandler() tele.HandlerFunc {
	return t.command(func(ctx context.Context, c tele.Context) (*Reply, error) {
		return t.ctrl.ListAppointments(ctx, userRefFrom(c))
	})
}

// CancelHandler returns the /cancel command handler.
func (t *TelegramAdapter) CancelHandler() tele.HandlerFunc {
	return t.command(func(ctx context.Context, c tele.Context) (*Reply, error) {
		return t.ctrl.Cancel(ctx, userRefFrom(c))
	})
}

// HelpHandler returns the /help command handler.
func (t *TelegramAdapter) HelpHandler() tele.HandlerFunc {
	return t.command(func(ctx context.Context, c tele.Context) (*Reply, error) {
		return t.ctrl.Help(ctx, userRefFrom(c))
	})
}

// ContactHandler returns the /contact command handler.
func (t *TelegramAdapter) ContactHandler() tele.HandlerFunc {
	return t.command(func(ctx context.Context, c tele.Context) (*Reply, error) {
		return t.ctrl.Contact(ctx, userRefFrom(c))
	})
}

func (t *TelegramAdapter) command(run func(ctx context.Context, c tele.Context) (*Reply, error)) tele.HandlerFunc {
	return func(c tele.Context) error {
		ctx := tghelpers.BuildContext(c)
		reply, err := run(ctx, c)
		if err != nil {
			if sendErr := t.send(c, reply); sendErr != nil {
				return newTransportError("send command reply", sendErr)
			}
			return err
		}
		return t.send(c, reply)
	}
}

func (t *TelegramAdapter) send(c tele.Context, r *Reply) error {
	if r == nil {
		return nil
	}
	if r.Markup != nil {
		return tghelpers.SendText(c, r.Text, &tele.SendOptions{ReplyMarkup: r.Markup})
	}
	return tghelpers.SendText(c, r.Text)
}

func userRefFrom(c tele.Context) UserRef {
	ref := UserRef{}
	if u := c.Sender(); u != nil {
		ref.UserID = u.ID
	}
	if chat := c.Chat(); chat != nil {
		ref.ChatID = chat.ID
	}
	return ref
}

func senderNameFrom(c tele.Context) string {
	u := c.Sender()
	if u == nil {
		return ""
	}
	return strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
}

func eventFrom(c tele.Context) Event {
	ev := Event{
		Text:       c.Text(),
		SenderName: senderNameFrom(c),
	}
	if msg := c.Message(); msg != nil {
		if msg.Contact != nil {
			ev.Phone = msg.Contact.PhoneNumber
		}
		if msg.Location != nil {
			ev.Location = &domain.Location{
				Latitude:  float64(msg.Location.Lat),
				Longitude: float64(msg.Location.Lng),
			}
		}
	}
	return ev
}
