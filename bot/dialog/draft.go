package dialog

import (
	"time"

	"github.com/m3rciful/apptbot/bot/domain"
)

const draftKey = "draft"

// Draft accumulates booking details collected across dialog steps.
type Draft struct {
	FullName    string
	Phone       string
	Address     string
	FullAddress string
	Location    *domain.Location
	Weekday     domain.Weekday
}

func (c *Controller) draft(userID int64) *Draft {
	if v, ok := c.states.GetTemp(userID, draftKey); ok {
		if d, ok := v.(*Draft); ok {
			return d
		}
	}
	d := &Draft{}
	c.states.SetTemp(userID, draftKey, d)
	return d
}

func (c *Controller) clearDraft(userID int64) {
	c.states.ClearTemp(userID, draftKey)
}

// toAppointment materializes the draft into a persistable appointment
// with a fresh creation timestamp.
func (d *Draft) toAppointment(chatID int64) *domain.Appointment {
	a := &domain.Appointment{
		ChatID:    chatID,
		FullName:  d.FullName,
		Phone:     d.Phone,
		Address:   d.Address,
		Weekday:   d.Weekday,
		CreatedAt: time.Now().UTC(),
	}
	if d.Location != nil {
		lat, lon := d.Location.Latitude, d.Location.Longitude
		a.Latitude = &lat
		a.Longitude = &lon
		if d.FullAddress != "" {
			fa := d.FullAddress
			a.FullAddress = &fa
		}
	}
	return a
}
