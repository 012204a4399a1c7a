package dialog

// Reply keyboard button labels.
const (
	BtnNewAppointment = "📅 New appointment"
	BtnMyAppointments = "🗓 My appointments"
	BtnContact        = "📞 Contact"
	BtnHelp           = "❓ Help"

	BtnYes    = "✅ Yes"
	BtnNo     = "❌ No"
	BtnCancel = "❌ Cancel"

	BtnSharePhone    = "Share phone number 📞"
	BtnShareLocation = "📍 Share location"
)

const (
	textWelcome = "👋 Welcome to our bot!\n\nChoose an option from the menu below:"

	textConfirmNameFmt = "Your name: %s\n\nIs that correct?"
	textAskName        = "Please enter your full name:"
	textAskPhone       = "Great! Now send your phone number."
	textThanksPhoneFmt = "Thank you, %s. Now send your phone number."
	textAskAddress     = "📍 Now enter the address for the appointment or share your location:"

	textLocationReceivedFmt = "📍 Location received: %s\n\nNow, which day would you like to book?"
	textAskWeekday          = "📅 Which day would you like to book?"

	textSaved           = "✅ Your appointment has been saved! We will contact you soon."
	textActionCanceled  = "❌ Current action canceled."
	textBookingCanceled = "❌ Appointment canceled."
	textError           = "❌ Something went wrong, please try again."

	textNoAppointments = "You have no appointments yet."
	textListHeader     = "📅 Your appointments:\n\n"
	textListError      = "❌ Failed to fetch your appointments."

	textContactFmt = "📞 To reach us: %s"
)

const textHelp = "ℹ️ How to use this bot:\n\n" +
	"/start — Start the bot\n" +
	"/new — Book a new appointment\n" +
	"/appointments — View my appointments\n" +
	"/cancel — Cancel the current action\n" +
	"/contact — Contact information\n" +
	"/help — Show this help message\n\n" +
	"You can also use the buttons below:\n" +
	BtnNewAppointment + " — Book a new appointment\n" +
	BtnMyAppointments + " — View your appointments\n" +
	BtnContact + " — Reach the administrator\n" +
	BtnHelp + " — Get help"
