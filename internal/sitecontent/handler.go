package sitecontent

import (
	"encoding/json"
	"net/http"

	"github.com/Thusharawathanan99/gilded-grooming/internal/cache"
	"github.com/Thusharawathanan99/gilded-grooming/internal/gallery"
	"github.com/Thusharawathanan99/gilded-grooming/internal/observability/metrics"
	"github.com/Thusharawathanan99/gilded-grooming/internal/services"
	"github.com/Thusharawathanan99/gilded-grooming/internal/settings"
	"github.com/Thusharawathanan99/gilded-grooming/pkg/logging"
)

const entityKey = "site"

// Payload is everything the marketing page renders from.
type Payload struct {
	Settings settings.SiteSettings `json:"settings"`
	Services []services.Service    `json:"services"`
	Gallery  []gallery.Image       `json:"gallery"`
}

// Handler assembles the public site payload.
type Handler struct {
	settingsRepo settings.Repository
	servicesRepo services.Repository
	galleryRepo  gallery.Repository
	cache        *cache.Store
	metrics      *metrics.SiteMetrics
	logger       *logging.Logger
}

// NewHandler creates the public site handler.
func NewHandler(settingsRepo settings.Repository, servicesRepo services.Repository, galleryRepo gallery.Repository, cacheStore *cache.Store, m *metrics.SiteMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if cacheStore == nil {
		cacheStore = cache.New(nil, 0, logger)
	}
	return &Handler{
		settingsRepo: settingsRepo,
		servicesRepo: servicesRepo,
		galleryRepo:  galleryRepo,
		cache:        cacheStore,
		metrics:      m,
		logger:       logger,
	}
}

// Get handles GET /api/site. Settings are merged with defaults, services
// are the active catalog in display order, gallery is every image.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if data, err := h.cache.Get(r.Context(), entityKey, ""); err == nil {
		var p Payload
		if err := json.Unmarshal(data, &p); err == nil {
			h.metrics.ObserveCacheLookup(entityKey, "hit")
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(p)
			return
		}
	}
	h.metrics.ObserveCacheLookup(entityKey, "miss")

	stored, present, err := h.settingsRepo.Load(r.Context())
	if err != nil {
		h.logger.Error("failed to load site settings", "error", err)
		http.Error(w, "failed to load site content", http.StatusInternalServerError)
		return
	}
	active, err := h.servicesRepo.ListActive(r.Context())
	if err != nil {
		h.logger.Error("failed to load services", "error", err)
		http.Error(w, "failed to load site content", http.StatusInternalServerError)
		return
	}
	images, err := h.galleryRepo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to load gallery", "error", err)
		http.Error(w, "failed to load site content", http.StatusInternalServerError)
		return
	}

	p := Payload{
		Settings: stored.MergeWithDefaults(present),
		Services: active,
		Gallery:  images,
	}
	if data, err := json.Marshal(p); err == nil {
		if err := h.cache.Set(r.Context(), entityKey, "", data); err != nil {
			h.logger.Warn("failed to cache site payload", "error", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}
