package settings

import (
	"encoding/json"
	"net/http"

	"github.com/Thusharawathanan99/gilded-grooming/internal/cache"
	"github.com/Thusharawathanan99/gilded-grooming/internal/observability/metrics"
	"github.com/Thusharawathanan99/gilded-grooming/pkg/logging"
)

const entityKey = "settings"

// Handler handles admin HTTP requests for site settings.
type Handler struct {
	repo    Repository
	cache   *cache.Store
	metrics *metrics.SiteMetrics
	logger  *logging.Logger
}

// NewHandler creates a new settings handler.
func NewHandler(repo Repository, cacheStore *cache.Store, m *metrics.SiteMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if cacheStore == nil {
		cacheStore = cache.New(nil, 0, logger)
	}
	return &Handler{repo: repo, cache: cacheStore, metrics: m, logger: logger}
}

// Load returns the complete settings, merged with defaults. Used by both
// the admin handler and the public site payload.
func (h *Handler) Load(r *http.Request) (SiteSettings, error) {
	if data, err := h.cache.Get(r.Context(), entityKey, ""); err == nil {
		var s SiteSettings
		if err := json.Unmarshal(data, &s); err == nil {
			h.metrics.ObserveCacheLookup(entityKey, "hit")
			return s, nil
		}
	}
	h.metrics.ObserveCacheLookup(entityKey, "miss")

	stored, present, err := h.repo.Load(r.Context())
	if err != nil {
		return SiteSettings{}, err
	}
	merged := stored.MergeWithDefaults(present)
	if payload, err := json.Marshal(merged); err == nil {
		if err := h.cache.Set(r.Context(), entityKey, "", payload); err != nil {
			h.logger.Warn("failed to cache settings", "error", err)
		}
	}
	return merged, nil
}

// Get handles GET /admin/settings
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.Load(r)
	if err != nil {
		h.logger.Error("failed to load settings", "error", err)
		http.Error(w, "failed to load settings", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

// Put handles PUT /admin/settings
func (h *Handler) Put(w http.ResponseWriter, r *http.Request) {
	var s SiteSettings
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.repo.Save(r.Context(), s); err != nil {
		h.metrics.ObserveMutation(entityKey, "save", "error")
		h.logger.Error("failed to save settings", "error", err)
		http.Error(w, "failed to save settings", http.StatusInternalServerError)
		return
	}

	h.cache.InvalidateQuietly(r.Context(), entityKey)
	h.metrics.ObserveMutation(entityKey, "save", "ok")
	h.logger.Info("site settings saved")

	// Every section was just written, so the saved value is the complete
	// configuration.
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}
