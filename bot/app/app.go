// Package app assembles the appointment bot from its components.
package app

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	botconfig "github.com/m3rciful/apptbot/bot/config"
	"github.com/m3rciful/apptbot/bot/dialog"
	"github.com/m3rciful/apptbot/bot/geocode"
	"github.com/m3rciful/apptbot/bot/notify"
	"github.com/m3rciful/apptbot/bot/storage/appointments"
	"github.com/m3rciful/apptbot/core/bootstrap"
	"github.com/m3rciful/apptbot/core/buildinfo"
	coretelegram "github.com/m3rciful/apptbot/core/telegram"
	"github.com/m3rciful/apptbot/core/telegram/commands"
	tghelpers "github.com/m3rciful/apptbot/core/telegram/helpers"
	"github.com/m3rciful/apptbot/core/telegram/router"

	tele "gopkg.in/telebot.v4"
)

// App holds the wired application components.
type App struct {
	cfg      *botconfig.Config
	db       *sqlx.DB
	notifier *notify.Notifier
	adapter  *dialog.TelegramAdapter
}

// Bootstrap initializes infrastructure and wires the dialog components.
func Bootstrap(cfg *botconfig.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config provided")
	}

	res, err := bootstrap.Run(bootstrap.Options{
		Config:   cfg.CoreConfig(),
		Database: cfg.Database,
	})
	if err != nil {
		return nil, err
	}

	repo := appointments.NewRepository(res.DB)
	geocoder := geocode.NewClient(geocode.Options{
		BaseURL:   cfg.Geocode.BaseURL,
		UserAgent: cfg.Geocode.UserAgent,
		Timeout:   cfg.Geocode.Timeout(),
	})
	notifier := notify.New(cfg.Core.Telegram.AdminID)

	ctrl := dialog.NewController(dialog.Options{
		Store:        repo,
		Geocoder:     geocoder,
		Notifier:     notifier,
		ContactPhone: cfg.Contact.Phone,
	})

	return &App{
		cfg:      cfg,
		db:       res.DB,
		notifier: notifier,
		adapter:  dialog.NewTelegramAdapter(ctrl),
	}, nil
}

// TelegramRunOptions builds the bot runtime configuration.
func (a *App) TelegramRunOptions() (coretelegram.RunOptions, error) {
	reg := coretelegram.NewRegistry()

	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.adapter.StartHandler(),
		Description: "Start the bot",
	})
	reg.RegisterCommand("/new", commands.Command{
		Handler:     a.adapter.NewAppointmentHandler(),
		Description: "Book a new appointment",
		Aliases:     []string{dialog.BtnNewAppointment},
	})
	reg.RegisterCommand("/appointments", commands.Command{
		Handler:     a.adapter.AppointmentsHandler(),
		Description: "View my appointments",
		Aliases:     []string{dialog.BtnMyAppointments},
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     a.adapter.CancelHandler(),
		Description: "Cancel the current action",
	})
	reg.RegisterCommand("/help", commands.Command{
		Handler:     a.adapter.HelpHandler(),
		Description: "Get help",
		Aliases:     []string{dialog.BtnHelp},
	})
	reg.RegisterCommand("/contact", commands.Command{
		Handler:     a.adapter.ContactHandler(),
		Description: "Contact information",
		Aliases:     []string{dialog.BtnContact},
	})
	reg.RegisterCommand("/version", commands.Command{
		Handler:     versionHandler(),
		Description: "Show build information",
		AdminOnly:   true,
		Hidden:      true,
	})

	coreCfg := a.cfg.CoreConfig()

	routes := router.CommandRoutes(reg, router.CommandRouteOptions{
		AdminID: coreCfg.Telegram.AdminID,
	})
	routes = append(routes, router.MessageRoutes(a.adapter, reg, router.MessageOptions{})...)

	return coretelegram.RunOptions{
		Config:      coreCfg,
		Registry:    reg,
		Middlewares: coretelegram.DefaultMiddlewares(coreCfg, nil),
		Routes:      routes,
		OnStart: func(ctx context.Context, rt coretelegram.Runtime) error {
			a.notifier.Bind(rt.Bot)
			return nil
		},
		OnStop: func(ctx context.Context, rt coretelegram.Runtime) error {
			a.notifier.Bind(nil)
			if a.db != nil {
				return a.db.Close()
			}
			return nil
		},
	}, nil
}

func versionHandler() tele.HandlerFunc {
	return func(c tele.Context) error {
		text := fmt.Sprintf("apptbot `%s`\ncommit `%s`", buildinfo.Version, buildinfo.Commit)
		if buildinfo.Date != "" {
			text += fmt.Sprintf("\nbuilt `%s`", buildinfo.Date)
		}
		return tghelpers.SendMD(c, text)
	}
}
