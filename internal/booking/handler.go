package booking

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/Thusharawathanan99/gilded-grooming/internal/appointments"
	"github.com/Thusharawathanan99/gilded-grooming/internal/cache"
	"github.com/Thusharawathanan99/gilded-grooming/internal/observability/metrics"
	"github.com/Thusharawathanan99/gilded-grooming/pkg/logging"
)

// Notifier is told about bookings that made it into the store.
type Notifier interface {
	BookingReceived(ctx context.Context, appt *appointments.Appointment)
}

// Handler accepts booking requests from the public site.
type Handler struct {
	repo     appointments.Repository
	cache    *cache.Store
	notifier Notifier
	metrics  *metrics.SiteMetrics
	logger   *logging.Logger
}

// NewHandler creates a booking handler.
func NewHandler(repo appointments.Repository, cacheStore *cache.Store, notifier Notifier, m *metrics.SiteMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if cacheStore == nil {
		cacheStore = cache.New(nil, 0, logger)
	}
	return &Handler{repo: repo, cache: cacheStore, notifier: notifier, metrics: m, logger: logger}
}

type validationResponse struct {
	Errors map[string]string `json:"errors"`
}

// Submit handles POST /api/bookings. Invalid fields come back as a map of
// field name to message with status 422; a stored booking returns 201
// with the created appointment.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	trimmed, violations := Validate(&req)
	if len(violations) > 0 {
		h.metrics.ObserveBooking("invalid")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(validationResponse{Errors: violations})
		return
	}

	date, timeOfDay, ok := SplitDateTime(trimmed.DateTime)
	if !ok {
		h.metrics.ObserveBooking("invalid")
		http.Error(w, "invalid date/time", http.StatusBadRequest)
		return
	}

	appt, err := h.repo.Create(r.Context(), ToAppointment(&trimmed, date, timeOfDay))
	if err != nil {
		h.metrics.ObserveBooking("error")
		h.logger.Error("failed to store booking", "error", err)
		http.Error(w, "failed to submit booking", http.StatusInternalServerError)
		return
	}

	h.cache.InvalidateQuietly(r.Context(), "appointments")
	h.metrics.ObserveBooking("ok")
	h.logger.Info("booking received",
		"appointment_id", appt.ID,
		"service", appt.ServiceName,
		"date", appt.AppointmentDate,
	)

	if h.notifier != nil {
		h.notifier.BookingReceived(r.Context(), appt)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(appt)
}
