package customers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Thusharawathanan99/gilded-grooming/internal/cache"
	"github.com/Thusharawathanan99/gilded-grooming/internal/observability/metrics"
	"github.com/Thusharawathanan99/gilded-grooming/pkg/logging"
)

const entityKey = "customers"

// Handler handles admin HTTP requests for customers.
type Handler struct {
	repo    Repository
	cache   *cache.Store
	metrics *metrics.SiteMetrics
	logger  *logging.Logger
}

// NewHandler creates a new customers handler.
func NewHandler(repo Repository, cacheStore *cache.Store, m *metrics.SiteMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if cacheStore == nil {
		cacheStore = cache.New(nil, 0, logger)
	}
	return &Handler{repo: repo, cache: cacheStore, metrics: m, logger: logger}
}

// ListResponse is the response for listing customers.
type ListResponse struct {
	Customers []Customer `json:"customers"`
	Count     int        `json:"count"`
}

// List handles GET /admin/customers?q=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var rows []Customer
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
			h.logger.Error("failed to list customers", "error", err)
			http.Error(w, "failed to list customers", http.StatusInternalServerError)
			return
		}
		rows = fetched
		if payload, err := json.Marshal(rows); err == nil {
			if err := h.cache.Set(r.Context(), entityKey, "", payload); err != nil {
				h.logger.Warn("failed to cache customers", "error", err)
			}
		}
	}

	rows = FilterBySearch(rows, r.URL.Query().Get("q"))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListResponse{Customers: rows, Count: len(rows)})
}

// Create handles POST /admin/customers
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidName) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.metrics.ObserveMutation(entityKey, "create", "error")
		h.logger.Error("failed to create customer", "error", err)
		http.Error(w, "failed to create customer", http.StatusInternalServerError)
		return
	}

	h.cache.InvalidateQuietly(r.Context(), entityKey)
	h.metrics.ObserveMutation(entityKey, "create", "ok")
	h.logger.Info("customer created", "id", c.ID, "name", c.Name)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(c)
}

// Update handles PUT /admin/customers/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	c, err := h.repo.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidName):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrNotFound):
			http.Error(w, "customer not found", http.StatusNotFound)
		default:
			h.metrics.ObserveMutation(entityKey, "update", "error")
			h.logger.Error("failed to update customer", "error", err, "id", id)
			http.Error(w, "failed to update customer", http.StatusInternalServerError)
		}
		return
	}

	h.cache.InvalidateQuietly(r.Context(), entityKey)
	h.metrics.ObserveMutation(entityKey, "update", "ok")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(c)
}

// Delete handles DELETE /admin/customers/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "customer not found", http.StatusNotFound)
			return
		}
		h.metrics.ObserveMutation(entityKey, "delete", "error")
		h.logger.Error("failed to delete customer", "error", err, "id", id)
		http.Error(w, "failed to delete customer", http.StatusInternalServerError)
		return
	}

	h.cache.InvalidateQuietly(r.Context(), entityKey)
	h.metrics.ObserveMutation(entityKey, "delete", "ok")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "deleted"})
}
