package booking

import (
	"strings"

	"github.com/Thusharawathanan99/gilded-grooming/internal/appointments"
)

// SplitDateTime breaks the form's combined value ("2025-03-10T14:30")
// into the stored date and time. The time keeps only hours and minutes
// and gains a zero seconds component.
func SplitDateTime(v string) (date, timeOfDay string, ok bool) {
	datePart, timePart, found := strings.Cut(v, "T")
	if !found || datePart == "" || timePart == "" {
		return "", "", false
	}
	if len(timePart) > 5 {
		timePart = timePart[:5]
	}
	return datePart, timePart + ":00", true
}

// ToAppointment converts a validated request into the appointment insert
// payload. The caller has already split the datetime.
func ToAppointment(req *Request, date, timeOfDay string) *appointments.NewAppointment {
	na := &appointments.NewAppointment{
		CustomerName:    req.FirstName + " " + req.LastName,
		ServiceName:     ServiceLabel(req.Service),
		AppointmentDate: date,
		AppointmentTime: timeOfDay,
	}
	if req.Phone != "" {
		phone := req.Phone
		na.CustomerPhone = &phone
	}
	if req.Email != "" {
		email := req.Email
		na.CustomerEmail = &email
	}
	return na
}
