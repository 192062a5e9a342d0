package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/Thusharawathanan99/gilded-grooming/internal/appointments"
	"github.com/Thusharawathanan99/gilded-grooming/pkg/logging"
)

// Service sends shop-facing notifications when bookings arrive.
type Service struct {
	email      EmailSender
	alertEmail string
	logger     *logging.Logger
}

// NewService creates a notification service. If alertEmail is empty,
// booking alerts are skipped.
func NewService(email EmailSender, alertEmail string, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{email: email, alertEmail: alertEmail, logger: logger}
}

// BookingReceived emails the shop about a new booking request. Failures
// are logged, not returned: the booking is already stored and the
// customer response never depends on the alert going out.
func (s *Service) BookingReceived(ctx context.Context, appt *appointments.Appointment) {
	if s == nil || s.email == nil || s.alertEmail == "" {
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "New booking request from %s\n\n", appt.CustomerName)
	fmt.Fprintf(&b, "Service: %s\n", appt.ServiceName)
	fmt.Fprintf(&b, "Date: %s at %s\n", appt.AppointmentDate, appt.AppointmentTime)
	if appt.CustomerEmail != nil {
		fmt.Fprintf(&b, "Email: %s\n", *appt.CustomerEmail)
	}
	if appt.CustomerPhone != nil {
		fmt.Fprintf(&b, "Phone: %s\n", *appt.CustomerPhone)
	}

	msg := EmailMessage{
		To:      s.alertEmail,
		Subject: fmt.Sprintf("New booking: %s on %s", appt.ServiceName, appt.AppointmentDate),
		Body:    b.String(),
	}
	if err := s.email.Send(ctx, msg); err != nil {
		s.logger.Error("failed to send booking alert", "error", err, "appointment_id", appt.ID)
		return
	}
	s.logger.Info("booking alert sent", "appointment_id", appt.ID)
}
