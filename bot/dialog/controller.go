// Package dialog implements the appointment booking conversation as a
// finite state machine over per-user sessions.
package dialog

import (
	"context"
	"fmt"
	"strings"

	"github.com/m3rciful/apptbot/bot/domain"
	"github.com/m3rciful/apptbot/bot/format"
	"github.com/m3rciful/apptbot/bot/geocode"
	"github.com/m3rciful/apptbot/core/logger"
	"github.com/m3rciful/apptbot/core/telegram/state"
	"log/slog"
)

// Store persists confirmed appointments.
type Store interface {
	Create(ctx context.Context, a *domain.Appointment) error
	ListByChat(ctx context.Context, chatID int64) ([]domain.Appointment, error)
}

// Geocoder resolves coordinates into addresses.
type Geocoder interface {
	Resolve(ctx context.Context, lat, lon float64) geocode.Result
}

// Notifier alerts the operator about new appointments.
type Notifier interface {
	NotifyNewAppointment(ctx context.Context, a *domain.Appointment) error
}

// Controller drives the booking dialog. All public methods serialize
// processing per user.
type Controller struct {
	states   state.Manager
	store    Store
	geocoder Geocoder
	notifier Notifier
	contact  string
	locks    *userLocks
}

// Options wires Controller dependencies.
type Options struct {
	States   state.Manager
	Store    Store
	Geocoder Geocoder
	Notifier Notifier
	// ContactPhone is the number shown by the contact command.
	ContactPhone string
}

// NewController constructs the dialog controller.
func NewController(opts Options) *Controller {
	states := opts.States
	if states == nil {
		states = state.NewMemoryManager()
	}
	return &Controller{
		states:   states,
		store:    opts.Store,
		geocoder: opts.Geocoder,
		notifier: opts.Notifier,
		contact:  opts.ContactPhone,
		locks:    newUserLocks(),
	}
}

// InProgress reports whether the user has an active booking dialog.
func (c *Controller) InProgress(userID int64) bool {
	return c.states.InProgress(userID)
}

// State returns the user's current dialog state.
func (c *Controller) State(userID int64) state.State {
	return c.states.GetState(userID)
}

// Start resets the dialog and shows the main menu.
func (c *Controller) Start(ctx context.Context, user UserRef) (*Reply, error) {
	l := c.locks.get(user.UserID)
	l.Lock()
	defer l.Unlock()

	c.resetLocked(user.UserID)
	return reply(textWelcome, mainMenuMarkup()), nil
}

// NewAppointment begins a booking, seeding the name from the sender's
// Telegram profile.
func (c *Controller) NewAppointment(ctx context.Context, user UserRef, senderName string) (*Reply, error) {
	l := c.locks.get(user.UserID)
	l.Lock()
	defer l.Unlock()

	return c.newAppointmentLocked(ctx, user, senderName), nil
}

// ListAppointments shows all bookings made from the user's chat.
func (c *Controller) ListAppointments(ctx context.Context, user UserRef) (*Reply, error) {
	l := c.locks.get(user.UserID)
	l.Lock()
	defer l.Unlock()

	return c.listLocked(ctx, user)
}

// Cancel aborts any in-progress booking and returns to the main menu.
func (c *Controller) Cancel(ctx context.Context, user UserRef) (*Reply, error) {
	l := c.locks.get(user.UserID)
	l.Lock()
	defer l.Unlock()

	c.resetLocked(user.UserID)
	return reply(textActionCanceled, mainMenuMarkup()), nil
}

// Help shows usage instructions and returns to the main menu.
func (c *Controller) Help(ctx context.Context, user UserRef) (*Reply, error) {
	l := c.locks.get(user.UserID)
	l.Lock()
	defer l.Unlock()

	c.resetLocked(user.UserID)
	return reply(textHelp, mainMenuMarkup()), nil
}

// Contact shows contact information and returns to the main menu.
func (c *Controller) Contact(ctx context.Context, user UserRef) (*Reply, error) {
	l := c.locks.get(user.UserID)
	l.Lock()
	defer l.Unlock()

	c.resetLocked(user.UserID)
	return reply(fmt.Sprintf(textContactFmt, c.contact), mainMenuMarkup()), nil
}

// Handle processes a non-command update against the current dialog
// state. A nil reply with nil error means the update was ignored.
func (c *Controller) Handle(ctx context.Context, user UserRef, ev Event) (*Reply, error) {
	l := c.locks.get(user.UserID)
	l.Lock()
	defer l.Unlock()

	return c.handleLocked(ctx, user, ev)
}

func (c *Controller) resetLocked(userID int64) {
	c.clearDraft(userID)
	c.states.ClearState(userID)
}

func (c *Controller) newAppointmentLocked(ctx context.Context, user UserRef, senderName string) *Reply {
	d := &Draft{FullName: strings.TrimSpace(senderName)}
	c.states.SetTemp(user.UserID, draftKey, d)
	c.states.SetState(user.UserID, StateConfirmName)

	logger.Debug(ctx, "dialog", "booking.start",
		slog.String("status", "ok"),
		slog.Int64("user_id", user.UserID),
		slog.String("state", string(StateConfirmName)),
	)
	return reply(fmt.Sprintf(textConfirmNameFmt, d.FullName), yesNoMarkup())
}

func (c *Controller) listLocked(ctx context.Context, user UserRef) (*Reply, error) {
	c.resetLocked(user.UserID)

	list, err := c.store.ListByChat(ctx, user.ChatID)
	if err != nil {
		logger.Error(ctx, "dialog", "list.fail",
			slog.String("status", "fail"),
			slog.Int64("chat_id", user.ChatID),
			slog.String("err", err.Error()),
		)
		return reply(textListError, mainMenuMarkup()), newPersistenceError("list appointments", err)
	}

	if len(list) == 0 {
		return reply(textNoAppointments, mainMenuMarkup()), nil
	}

	var b strings.Builder
	b.WriteString(textListHeader)
	for i := range list {
		b.WriteString(format.ListItem(i, &list[i]))
	}
	return reply(b.String(), mainMenuMarkup()), nil
}
