package appointments

import "time"

// Status is the lifecycle state of an appointment.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the move from s to next is allowed.
// Pending appointments can be confirmed or cancelled; confirmed ones can
// be completed. Nothing else moves.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted
	}
	return false
}

// Appointment represents one booked visit. Date and time are stored as the
// store formats them: "2006-01-02" and "15:04:05".
type Appointment struct {
	ID              string    `json:"id"`
	CustomerName    string    `json:"customer_name"`
	CustomerPhone   *string   `json:"customer_phone"`
	CustomerEmail   *string   `json:"customer_email"`
	ServiceName     string    `json:"service_name"`
	AppointmentDate string    `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	Status          Status    `json:"status"`
	Notes           *string   `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewAppointment is the payload for creating an appointment. Status is not
// settable here; the store default (pending) applies.
type NewAppointment struct {
	CustomerName    string
	CustomerPhone   *string
	CustomerEmail   *string
	ServiceName     string
	AppointmentDate string
	AppointmentTime string
	Notes           *string
}

// ListFilter narrows a listing. Status filters server-side; Search is a
// case-insensitive substring match applied to the fetched rows.
type ListFilter struct {
	Status Status
	Search string
}
