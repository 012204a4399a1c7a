package dialog

import "github.com/m3rciful/apptbot/core/telegram/state"

// Booking conversation states. StateIdle from the state package marks
// the main menu with no booking in progress.
const (
	StateConfirmName        state.State = "confirm_name"
	StateAskName            state.State = "ask_name"
	StateAskPhone           state.State = "ask_phone"
	StateAskAddress         state.State = "ask_address"
	StateAskWeekday         state.State = "ask_weekday"
	StateConfirmAppointment state.State = "confirm_appointment"
)
