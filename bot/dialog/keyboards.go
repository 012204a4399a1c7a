package dialog

import (
	"github.com/m3rciful/apptbot/bot/domain"
	"github.com/m3rciful/apptbot/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

func mainMenuMarkup() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(
		[]string{BtnNewAppointment},
		[]string{BtnMyAppointments},
		[]string{BtnContact, BtnHelp},
	)
}

func yesNoMarkup() *tele.ReplyMarkup {
	return keyboard.ReplyButtons([]string{BtnYes, BtnNo})
}

func yesCancelMarkup() *tele.ReplyMarkup {
	return keyboard.ReplyButtons([]string{BtnYes, BtnCancel})
}

// askNameMarkup hides whatever reply keyboard is on screen while the
// user types a free-form name.
func askNameMarkup() *tele.ReplyMarkup {
	return keyboard.RemoveKeyboard()
}

func phoneRequestMarkup() *tele.ReplyMarkup {
	return keyboard.ContactRequest(BtnSharePhone)
}

func locationRequestMarkup() *tele.ReplyMarkup {
	return keyboard.LocationRequest(BtnShareLocation, []string{BtnCancel})
}

func weekdayMarkup() *tele.ReplyMarkup {
	return keyboard.ReplyButtons(domain.WeekdayRows()...)
}
