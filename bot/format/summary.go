// Package format renders appointment details for user and admin chats.
package format

import (
	"fmt"
	"strings"

	"github.com/m3rciful/apptbot/bot/domain"
)

const createdAtLayout = "02.01.2006 15:04"

func addressLines(b *strings.Builder, a *domain.Appointment) {
	if a.HasLocation() {
		fmt.Fprintf(b, "📍 Location: %s\n", a.Address)
		if a.FullAddress != nil && *a.FullAddress != "" {
			fmt.Fprintf(b, "🏠 Full address: %s\n", *a.FullAddress)
		}
		return
	}
	fmt.Fprintf(b, "📍 Address: %s\n", a.Address)
}

// Summary renders the confirmation block shown before an appointment is saved.
func Summary(a *domain.Appointment) string {
	var b strings.Builder
	b.WriteString("✅ Appointment details:\n\n")
	fmt.Fprintf(&b, "👤 Name: %s\n", a.FullName)
	fmt.Fprintf(&b, "📞 Phone: %s\n", a.Phone)
	addressLines(&b, a)
	fmt.Fprintf(&b, "📅 Day: %s\n\n", a.Weekday)
	b.WriteString("Is everything correct?")
	return b.String()
}

// ListItem renders a single numbered entry for the appointment list.
func ListItem(index int, a *domain.Appointment) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d. 👤 %s\n", index+1, a.FullName)
	fmt.Fprintf(&b, "📞 %s\n", a.Phone)
	fmt.Fprintf(&b, "📍 %s\n", a.Address)
	if a.HasLocation() && a.FullAddress != nil && *a.FullAddress != "" {
		fmt.Fprintf(&b, "🏠 %s\n", *a.FullAddress)
	}
	fmt.Fprintf(&b, "📅 %s\n", a.Weekday)
	fmt.Fprintf(&b, "🕒 %s\n\n", a.CreatedAt.Format(createdAtLayout))
	return b.String()
}

// AdminMessage renders the notification sent to the operator chat.
func AdminMessage(a *domain.Appointment) string {
	var b strings.Builder
	b.WriteString("🔔 New appointment:\n\n")
	fmt.Fprintf(&b, "👤 Name: %s\n", a.FullName)
	fmt.Fprintf(&b, "📞 Phone: %s\n", a.Phone)
	addressLines(&b, a)
	fmt.Fprintf(&b, "📅 Day: %s\n", a.Weekday)
	fmt.Fprintf(&b, "🆔 Chat ID: %d", a.ChatID)
	return b.String()
}
