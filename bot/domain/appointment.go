package domain

import "time"

// Weekday is the day-of-week label chosen for an appointment.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays lists all valid weekday labels in calendar order.
var Weekdays = []Weekday{
	Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday,
}

// WeekdayRows returns weekday labels arranged for a reply keyboard.
func WeekdayRows() [][]string {
	return [][]string{
		{string(Monday), string(Tuesday)},
		{string(Wednesday), string(Thursday)},
		{string(Friday), string(Saturday), string(Sunday)},
	}
}

// ParseWeekday matches text against the weekday labels.
func ParseWeekday(text string) (Weekday, bool) {
	for _, wd := range Weekdays {
		if string(wd) == text {
			return wd, true
		}
	}
	return "", false
}

// Location holds geographic coordinates attached to an appointment.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Appointment is a confirmed booking persisted for a chat.
type Appointment struct {
	ID          int64     `db:"id"`
	ChatID      int64     `db:"chat_id"`
	FullName    string    `db:"full_name"`
	Phone       string    `db:"phone"`
	Address     string    `db:"address"`
	FullAddress *string   `db:"full_address"`
	Latitude    *float64  `db:"latitude"`
	Longitude   *float64  `db:"longitude"`
	Weekday     Weekday   `db:"weekday"`
	CreatedAt   time.Time `db:"created_at"`
}

// HasLocation reports whether the appointment carries coordinates.
func (a *Appointment) HasLocation() bool {
	return a.Latitude != nil && a.Longitude != nil
}

// LocationValue returns the coordinates when present.
func (a *Appointment) LocationValue() (Location, bool) {
	if !a.HasLocation() {
		return Location{}, false
	}
	return Location{Latitude: *a.Latitude, Longitude: *a.Longitude}, true
}
