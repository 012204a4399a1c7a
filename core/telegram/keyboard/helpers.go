package keyboard

import tele "gopkg.in/telebot.v4"

// RemoveKeyboard returns a markup that hides the keyboard.
func RemoveKeyboard() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{RemoveKeyboard: true}
}

// ReplyButtons builds a reply keyboard from rows of text.
func ReplyButtons(rows ...[]string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true}
	var keyboard []tele.Row
	for _, row := range rows {
		var buttons []tele.Btn
		for _, label := range row {
			buttons = append(buttons, markup.Text(label))
		}
		keyboard = append(keyboard, markup.Row(buttons...))
	}
	markup.Reply(keyboard...)
	return markup
}

// ContactRequest builds a one-time reply keyboard with a contact request
// button and an optional extra row of plain text buttons below it.
func ContactRequest(label string, extraRows ...[]string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
	rows := []tele.Row{markup.Row(markup.Contact(label))}
	for _, row := range extraRows {
		var buttons []tele.Btn
		for _, text := range row {
			buttons = append(buttons, markup.Text(text))
		}
		rows = append(rows, markup.Row(buttons...))
	}
	markup.Reply(rows...)
	return markup
}

// LocationRequest builds a one-time reply keyboard with a location request
// button and an optional extra row of plain text buttons below it.
func LocationRequest(label string, extraRows ...[]string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
	rows := []tele.Row{markup.Row(markup.Location(label))}
	for _, row := range extraRows {
		var buttons []tele.Btn
		for _, text := range row {
			buttons = append(buttons, markup.Text(text))
		}
		rows = append(rows, markup.Row(buttons...))
	}
	markup.Reply(rows...)
	return markup
}
