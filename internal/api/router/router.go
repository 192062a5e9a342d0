package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Thusharawathanan99/gilded-grooming/internal/appointments"
	"github.com/Thusharawathanan99/gilded-grooming/internal/auth"
	"github.com/Thusharawathanan99/gilded-grooming/internal/booking"
	"github.com/Thusharawathanan99/gilded-grooming/internal/customers"
	"github.com/Thusharawathanan99/gilded-grooming/internal/dashboard"
	"github.com/Thusharawathanan99/gilded-grooming/internal/gallery"
	httpmiddleware "github.com/Thusharawathanan99/gilded-grooming/internal/http/middleware"
	"github.com/Thusharawathanan99/gilded-grooming/internal/services"
	"github.com/Thusharawathanan99/gilded-grooming/internal/settings"
	"github.com/Thusharawathanan99/gilded-grooming/internal/sitecontent"
	"github.com/Thusharawathanan99/gilded-grooming/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	BookingHandler      *booking.Handler
	AuthHandler         *auth.Handler
	SiteHandler         *sitecontent.Handler
	AppointmentsHandler *appointments.Handler
	CustomersHandler    *customers.Handler
	ServicesHandler     *services.Handler
	GalleryHandler      *gallery.Handler
	SettingsHandler     *settings.Handler
	DashboardHandler    *dashboard.Handler
	AdminAuthSecret     string
	MetricsHandler      http.Handler
	CORSAllowedOrigins  []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
		if cfg.SiteHandler != nil {
			public.Get("/api/site", cfg.SiteHandler.Get)
		}
		if cfg.BookingHandler != nil {
			public.Post("/api/bookings", cfg.BookingHandler.Submit)
		}
		if cfg.AuthHandler != nil {
			public.Post("/api/auth/login", cfg.AuthHandler.Login)
		}
	})

	// Admin routes, all behind the JWT middleware
	r.Route("/admin", func(admin chi.Router) {
		admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))

		if cfg.AuthHandler != nil {
			admin.Get("/session", cfg.AuthHandler.Session)
		}
		if cfg.DashboardHandler != nil {
			admin.Get("/dashboard", cfg.DashboardHandler.Overview)
		}
		if cfg.AppointmentsHandler != nil {
			admin.Route("/appointments", func(r chi.Router) {
				r.Get("/", cfg.AppointmentsHandler.List)
				r.Get("/{id}", cfg.AppointmentsHandler.Get)
				r.Patch("/{id}/status", cfg.AppointmentsHandler.UpdateStatus)
				r.Delete("/{id}", cfg.AppointmentsHandler.Delete)
			})
		}
		if cfg.CustomersHandler != nil {
			admin.Route("/customers", func(r chi.Router) {
				r.Get("/", cfg.CustomersHandler.List)
				r.Post("/", cfg.CustomersHandler.Create)
				r.Put("/{id}", cfg.CustomersHandler.Update)
				r.Delete("/{id}", cfg.CustomersHandler.Delete)
			})
		}
		if cfg.ServicesHandler != nil {
			admin.Route("/services", func(r chi.Router) {
				r.Get("/", cfg.ServicesHandler.List)
				r.Post("/", cfg.ServicesHandler.Create)
				r.Put("/{id}", cfg.ServicesHandler.Update)
				r.Patch("/{id}/active", cfg.ServicesHandler.SetActive)
				r.Delete("/{id}", cfg.ServicesHandler.Delete)
			})
		}
		if cfg.GalleryHandler != nil {
			admin.Route("/gallery", func(r chi.Router) {
				r.Get("/", cfg.GalleryHandler.List)
				r.Post("/", cfg.GalleryHandler.Create)
				r.Post("/upload", cfg.GalleryHandler.Upload)
				r.Patch("/{id}/featured", cfg.GalleryHandler.SetFeatured)
				r.Delete("/{id}", cfg.GalleryHandler.Delete)
			})
		}
		if cfg.SettingsHandler != nil {
			admin.Get("/settings", cfg.SettingsHandler.Get)
			admin.Put("/settings", cfg.SettingsHandler.Put)
		}
	})

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
