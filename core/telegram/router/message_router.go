package router

import (
	"strings"
	"time"

	tg "github.com/m3rciful/apptbot/core/telegram"
	"github.com/m3rciful/apptbot/core/telegram/middleware"

	tele "gopkg.in/telebot.v4"
)

// FSM defines the minimal interface for a dialog state machine.
type FSM interface {
	InProgress(userID int64) bool
	HandleUpdate(c tele.Context) error
}

// MessageOptions controls fallback behaviour for non-command updates.
type MessageOptions struct {
	UnknownText     tele.HandlerFunc
	UnknownContact  tele.HandlerFunc
	UnknownLocation tele.HandlerFunc
}

// MessageRoutes builds handlers for text, contact, and location routing.
// Registered command endpoints are dispatched before tele.OnText, so
// slash-prefixed text reaching these routes is an unknown command.
func MessageRoutes(fsmMgr FSM, reg *tg.Registry, opts MessageOptions) []tg.Route {
	textHandler := func(c tele.Context) error {
		start := time.Now()
		text := c.Text()

		if strings.HasPrefix(text, "/") {
			logHandlerSummary(c, "unknown_command", start, "skip", "ok", nil)
			return nil
		}

		if fsmMgr != nil && fsmMgr.InProgress(c.Sender().ID) {
			return handleWithSummary(c, "fsm", start, "", "", func() error {
				return fsmMgr.HandleUpdate(c)
			})
		}

		if reg != nil {
			if key, cmd, ok := reg.LookupCommand(text); ok && cmd.Handler != nil {
				name := normalizeHandlerName(key)
				return handleWithSummary(c, name, start, "", "", func() error {
					return cmd.Handler(c)
				})
			}
		}

		if reg != nil {
			if fb := reg.TextFallback(); fb != nil {
				return handleWithSummary(c, "fallback", start, "", "", func() error {
					return fb(c)
				})
			}
		}

		if opts.UnknownText != nil {
			return handleWithSummary(c, "unknown_text", start, "", "", func() error {
				return opts.UnknownText(c)
			})
		}

		logHandlerSummary(c, "unknown_text", start, "skip", "ok", nil)
		return nil
	}

	contactHandler := func(c tele.Context) error {
		start := time.Now()
		if fsmMgr != nil && fsmMgr.InProgress(c.Sender().ID) {
			return handleWithSummary(c, "fsm_contact", start, "", "", func() error {
				return fsmMgr.HandleUpdate(c)
			})
		}
		if opts.UnknownContact != nil {
			return handleWithSummary(c, "unexpected_contact", start, "", "", func() error {
				return opts.UnknownContact(c)
			})
		}
		logHandlerSummary(c, "unexpected_contact", start, "skip", "ok", nil)
		return nil
	}

	locationHandler := func(c tele.Context) error {
		start := time.Now()
		if fsmMgr != nil && fsmMgr.InProgress(c.Sender().ID) {
			return handleWithSummary(c, "fsm_location", start, "", "", func() error {
				return fsmMgr.HandleUpdate(c)
			})
		}
		if opts.UnknownLocation != nil {
			return handleWithSummary(c, "unexpected_location", start, "", "", func() error {
				return opts.UnknownLocation(c)
			})
		}
		logHandlerSummary(c, "unexpected_location", start, "skip", "ok", nil)
		return nil
	}

	return []tg.Route{
		{
			Endpoint: tele.OnText,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(textHandler)),
		},
		{
			Endpoint: tele.OnContact,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(contactHandler)),
		},
		{
			Endpoint: tele.OnLocation,
			Handler:  middleware.RecoverMiddleware(middleware.LoggerMiddleware(locationHandler)),
		},
	}
}
