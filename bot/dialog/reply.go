package dialog

import (
	"github.com/m3rciful/apptbot/bot/domain"

	tele "gopkg.in/telebot.v4"
)

// UserRef identifies the user and chat an update belongs to.
type UserRef struct {
	UserID int64
	ChatID int64
}

// Event is a transport-agnostic view of an incoming update. Exactly one
// of Text, Phone, or Location is expected to be set. SenderName carries
// the sender's profile name for steps that seed the booking draft.
type Event struct {
	Text       string
	Phone      string
	Location   *domain.Location
	SenderName string
}

// Reply is the outgoing message produced by a dialog step. A nil Reply
// means the update was silently ignored.
type Reply struct {
	Text   string
	Markup *tele.ReplyMarkup
}

func reply(text string, markup *tele.ReplyMarkup) *Reply {
	return &Reply{Text: text, Markup: markup}
}
