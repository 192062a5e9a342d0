package services

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Thusharawathanan99/gilded-grooming/internal/cache"
	"github.com/Thusharawathanan99/gilded-grooming/internal/observability/metrics"
	"github.com/Thusharawathanan99/gilded-grooming/pkg/logging"
)

const entityKey = "services"

// Handler handles admin HTTP requests for the service catalog.
type Handler struct {
	repo    Repository
	cache   *cache.Store
	metrics *metrics.SiteMetrics
	logger  *logging.Logger
}

// NewHandler creates a new services handler.
func NewHandler(repo Repository, cacheStore *cache.Store, m *metrics.SiteMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if cacheStore == nil {
		cacheStore = cache.New(nil, 0, logger)
	}
	return &Handler{repo: repo, cache: cacheStore, metrics: m, logger: logger}
}

// ListResponse is the response for listing services.
type ListResponse struct {
	Services []Service `json:"services"`
	Count    int       `json:"count"`
}

// List handles GET /admin/services
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var rows []Service
	if data, err := h.cache.Get(r.Context(), entityKey, ""); err == nil {
		if err := json.Unmarshal(data, &rows); err != nil {
			rows = nil
		}
	}
	if rows != nil {
		h.metrics.ObserveCacheLookup(entityKey, "hit")
	} else {
		h.metrics.ObserveCacheLookup(entityKey, "miss")
		fetched, err := h.repo.List(r.Context())
		if err != nil {
			h.logger.Error("failed to list services", "error", err)
			http.Error(w, "failed to list services", http.StatusInternalServerError)
			return
		}
		rows = fetched
		if payload, err := json.Marshal(rows); err == nil {
			if err := h.cache.Set(r.Context(), entityKey, "", payload); err != nil {
				h.logger.Warn("failed to cache services", "error", err)
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListResponse{Services: rows, Count: len(rows)})
}

func (h *Handler) writeUpsertError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrInvalidName), errors.Is(err, ErrInvalidPrice), errors.Is(err, ErrInvalidDuration):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "service not found", http.StatusNotFound)
	default:
		h.metrics.ObserveMutation(entityKey, op, "error")
		h.logger.Error("service mutation failed", "op", op, "error", err)
		http.Error(w, "failed to save service", http.StatusInternalServerError)
	}
}

// Create handles POST /admin/services
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		h.writeUpsertError(w, "create", err)
		return
	}

	h.cache.InvalidateQuietly(r.Context(), entityKey)
	h.metrics.ObserveMutation(entityKey, "create", "ok")
	h.logger.Info("service created", "id", s.ID, "name", s.Name)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(s)
}

// Update handles PUT /admin/services/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	s, err := h.repo.Update(r.Context(), id, &req)
	if err != nil {
		h.writeUpsertError(w, "update", err)
		return
	}

	h.cache.InvalidateQuietly(r.Context(), entityKey)
	h.metrics.ObserveMutation(entityKey, "update", "ok")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

type setActiveRequest struct {
	IsActive bool `json:"is_active"`
}

// SetActive handles PATCH /admin/services/{id}/active
func (h *Handler) SetActive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req setActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.repo.SetActive(r.Context(), id, req.IsActive); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "service not found", http.StatusNotFound)
			return
		}
		h.metrics.ObserveMutation(entityKey, "toggle_active", "error")
		h.logger.Error("failed to toggle service", "error", err, "id", id)
		http.Error(w, "failed to update service", http.StatusInternalServerError)
		return
	}

	h.cache.InvalidateQuietly(r.Context(), entityKey)
	h.metrics.ObserveMutation(entityKey, "toggle_active", "ok")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"is_active": req.IsActive})
}

// Delete handles DELETE /admin/services/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "service not found", http.StatusNotFound)
			return
		}
		h.metrics.ObserveMutation(entityKey, "delete", "error")
		h.logger.Error("failed to delete service", "error", err, "id", id)
		http.Error(w, "failed to delete service", http.StatusInternalServerError)
		return
	}

	h.cache.InvalidateQuietly(r.Context(), entityKey)
	h.metrics.ObserveMutation(entityKey, "delete", "ok")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "deleted"})
}
