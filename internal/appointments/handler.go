package appointments

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Thusharawathanan99/gilded-grooming/internal/cache"
	"github.com/Thusharawathanan99/gilded-grooming/internal/observability/metrics"
	"github.com/Thusharawathanan99/gilded-grooming/pkg/logging"
)

const entityKey = "appointments"

// Handler handles admin HTTP requests for appointments.
type Handler struct {
	repo    Repository
	cache   *cache.Store
	metrics *metrics.SiteMetrics
	logger  *logging.Logger
}

// NewHandler creates a new appointments handler.
func NewHandler(repo Repository, cacheStore *cache.Store, m *metrics.SiteMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if cacheStore == nil {
		cacheStore = cache.New(nil, 0, logger)
	}
	return &Handler{repo: repo, cache: cacheStore, metrics: m, logger: logger}
}

// ListResponse is the response for listing appointments.
type ListResponse struct {
	Appointments []Appointment `json:"appointments"`
	Count        int           `json:"count"`
}

// List handles GET /admin/appointments?status=&q=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	status := Status(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		http.Error(w, "unknown status filter", http.StatusBadRequest)
		return
	}

	filterKey := ""
	if status != "" {
		filterKey = "status=" + string(status)
	}

	var rows []Appointment
	if data, err := h.cache.Get(r.Context(), entityKey, filterKey); err == nil {
		if err := json.Unmarshal(data, &rows); err != nil {
			rows = nil
		}
	}
	if rows != nil {
		h.metrics.ObserveCacheLookup(entityKey, "hit")
	} else {
		h.metrics.ObserveCacheLookup(entityKey, "miss")
		fetched, err := h.repo.List(r.Context(), ListFilter{Status: status})
		if err != nil {
			h.logger.Error("failed to list appointments", "error", err)
			http.Error(w, "failed to list appointments", http.StatusInternalServerError)
			return
		}
		rows = fetched
		if payload, err := json.Marshal(rows); err == nil {
			if err := h.cache.Set(r.Context(), entityKey, filterKey, payload); err != nil {
				h.logger.Warn("failed to cache appointments", "error", err)
			}
		}
	}

	rows = FilterBySearch(rows, r.URL.Query().Get("q"))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListResponse{Appointments: rows, Count: len(rows)})
}

// Get handles GET /admin/appointments/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	a, err := h.repo.Get(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "appointment not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to load appointment", "error", err, "id", id)
		http.Error(w, "failed to load appointment", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(a)
}

type updateStatusRequest struct {
	Status Status `json:"status"`
}

// UpdateStatus handles PATCH /admin/appointments/{id}/status and enforces
// the pending->confirmed/cancelled, confirmed->completed state machine.
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if !req.Status.Valid() {
		http.Error(w, ErrInvalidStatus.Error(), http.StatusBadRequest)
		return
	}

	current, err := h.repo.Get(r.Context(), id)
	if errors.Is(err, ErrNotFound) {
		http.Error(w, "appointment not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.logger.Error("failed to load appointment", "error", err, "id", id)
		http.Error(w, "failed to update appointment", http.StatusInternalServerError)
		return
	}

	if !current.Status.CanTransitionTo(req.Status) {
		h.metrics.ObserveMutation(entityKey, "update_status", "rejected")
		http.Error(w, ErrInvalidTransition.Error(), http.StatusConflict)
		return
	}

	if err := h.repo.UpdateStatus(r.Context(), id, req.Status); err != nil {
		h.metrics.ObserveMutation(entityKey, "update_status", "error")
		h.logger.Error("failed to update appointment status", "error", err, "id", id)
		http.Error(w, "failed to update appointment", http.StatusInternalServerError)
		return
	}

	h.cache.InvalidateQuietly(r.Context(), entityKey)
	h.metrics.ObserveMutation(entityKey, "update_status", "ok")
	h.logger.Info("appointment status updated", "id", id, "from", current.Status, "to", req.Status)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": string(req.Status)})
}

// Delete handles DELETE /admin/appointments/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "appointment not found", http.StatusNotFound)
			return
		}
		h.metrics.ObserveMutation(entityKey, "delete", "error")
		h.logger.Error("failed to delete appointment", "error", err, "id", id)
		http.Error(w, "failed to delete appointment", http.StatusInternalServerError)
		return
	}

	h.cache.InvalidateQuietly(r.Context(), entityKey)
	h.metrics.ObserveMutation(entityKey, "delete", "ok")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "deleted"})
}
