package dashboard

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Thusharawathanan99/gilded-grooming/pkg/logging"
)

// Handler serves the admin dashboard overview.
type Handler struct {
	db     *sql.DB
	logger *logging.Logger
}

// NewHandler creates a dashboard handler.
func NewHandler(db *sql.DB, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{db: db, logger: logger}
}

// Stats holds the headline counts shown on the dashboard.
type Stats struct {
	TotalAppointments   int `json:"total_appointments"`
	TotalCustomers      int `json:"total_customers"`
	GalleryImages       int `json:"gallery_images"`
	TotalServices       int `json:"total_services"`
	TodayAppointments   int `json:"today_appointments"`
	PendingAppointments int `json:"pending_appointments"`
}

// RecentAppointment is one row of the recent-bookings panel.
type RecentAppointment struct {
	ID              string    `json:"id"`
	CustomerName    string    `json:"customer_name"`
	ServiceName     string    `json:"service_name"`
	AppointmentDate string    `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// OverviewResponse is the dashboard payload.
type OverviewResponse struct {
	Stats  Stats               `json:"stats"`
	Recent []RecentAppointment `json:"recent_appointments"`
}

// Overview handles GET /admin/dashboard. Each count is its own query;
// a failing count logs and stays zero rather than failing the page.
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	var resp OverviewResponse
	today := time.Now().UTC().Format("2006-01-02")

	counts := []struct {
		dst   *int
		query string
		args  []any
	}{
		{&resp.Stats.TotalAppointments, `SELECT COUNT(*) FROM appointments`, nil},
		{&resp.Stats.TotalCustomers, `SELECT COUNT(*) FROM customers`, nil},
		{&resp.Stats.GalleryImages, `SELECT COUNT(*) FROM gallery`, nil},
		{&resp.Stats.TotalServices, `SELECT COUNT(*) FROM services`, nil},
		{&resp.Stats.TodayAppointments, `SELECT COUNT(*) FROM appointments WHERE appointment_date = $1`, []any{today}},
		{&resp.Stats.PendingAppointments, `SELECT COUNT(*) FROM appointments WHERE status = 'pending'`, nil},
	}
	for _, c := range counts {
		if err := h.db.QueryRowContext(r.Context(), c.query, c.args...).Scan(c.dst); err != nil {
			h.logger.Error("dashboard count failed", "error", err, "query", c.query)
		}
	}

	recent, err := h.recentAppointments(r)
	if err != nil {
		h.logger.Error("failed to load recent appointments", "error", err)
		http.Error(w, "failed to load dashboard", http.StatusInternalServerError)
		return
	}
	resp.Recent = recent

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *Handler) recentAppointments(r *http.Request) ([]RecentAppointment, error) {
	rows, err := h.db.QueryContext(r.Context(), `
		SELECT id, customer_name, service_name,
			to_char(appointment_date, 'YYYY-MM-DD'),
			to_char(appointment_time, 'HH24:MI:SS'),
			status, created_at
		FROM appointments
		ORDER BY created_at DESC
		LIMIT 5`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []RecentAppointment{}
	for rows.Next() {
		var a RecentAppointment
		if err := rows.Scan(&a.ID, &a.CustomerName, &a.ServiceName,
			&a.AppointmentDate, &a.AppointmentTime, &a.Status, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
