package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m3rciful/apptbot/core/telegram/commands"

	tele "gopkg.in/telebot.v4"
)

func noopHandler(tele.Context) error { return nil }

func TestListCommandsFiltersAdminAndHidden(t *testing.T) {
	r := NewRegistry()
	r.RegisterCommand("/start", commands.Command{Handler: noopHandler, Description: "Start the bot"})
	r.RegisterCommand("/help", commands.Command{Handler: noopHandler, Description: "Get help"})
	r.RegisterCommand("/version", commands.Command{
		Handler:     noopHandler,
		Description: "Show build information",
		AdminOnly:   true,
		Hidden:      true,
	})

	visible := r.ListCommands(true)
	require.Len(t, visible, 2)
	for _, cmd := range visible {
		assert.NotEqual(t, "/version", cmd.Text)
	}

	all := r.ListCommands(false)
	assert.Len(t, all, 3)
}

func TestLookupCommandMatchesAliases(t *testing.T) {
	r := NewRegistry()
	r.RegisterCommand("/new", commands.Command{
		Handler:     noopHandler,
		Description: "Book a new appointment",
		Aliases:     []string{"📅 New appointment"},
	})

	key, _, ok := r.LookupCommand("/new")
	require.True(t, ok)
	assert.Equal(t, "/new", key)

	key, _, ok = r.LookupCommand("📅 New appointment")
	require.True(t, ok)
	assert.Equal(t, "/new", key)

	_, _, ok = r.LookupCommand("/unknown")
	assert.False(t, ok)
}
