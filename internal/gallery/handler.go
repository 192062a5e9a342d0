package gallery

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Thusharawathanan99/gilded-grooming/internal/cache"
	"github.com/Thusharawathanan99/gilded-grooming/internal/observability/metrics"
	"github.com/Thusharawathanan99/gilded-grooming/pkg/logging"
)

const entityKey = "gallery"

// maxUploadBytes caps multipart image uploads at 10 MiB.
const maxUploadBytes = 10 << 20

// Handler handles admin HTTP requests for the gallery.
type Handler struct {
	repo    Repository
	store   *ImageStore
	cache   *cache.Store
	metrics *metrics.SiteMetrics
	logger  *logging.Logger
}

// NewHandler creates a new gallery handler.
func NewHandler(repo Repository, store *ImageStore, cacheStore *cache.Store, m *metrics.SiteMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if cacheStore == nil {
		cacheStore = cache.New(nil, 0, logger)
	}
	return &Handler{repo: repo, store: store, cache: cacheStore, metrics: m, logger: logger}
}

// ListResponse is the response for listing gallery images.
type ListResponse struct {
	Images []Image `json:"images"`
	Count  int     `json:"count"`
}

// List handles GET /admin/gallery
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	var rows []Image
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
			h.logger.Error("failed to list gallery", "error", err)
			http.Error(w, "failed to list gallery", http.StatusInternalServerError)
			return
		}
		rows = fetched
		if payload, err := json.Marshal(rows); err == nil {
			if err := h.cache.Set(r.Context(), entityKey, "", payload); err != nil {
				h.logger.Warn("failed to cache gallery", "error", err)
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListResponse{Images: rows, Count: len(rows)})
}

// Create handles POST /admin/gallery
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	img, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidImageURL), errors.Is(err, ErrInvalidCategory):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			h.metrics.ObserveMutation(entityKey, "create", "error")
			h.logger.Error("failed to create gallery image", "error", err)
			http.Error(w, "failed to save image", http.StatusInternalServerError)
		}
		return
	}

	h.cache.InvalidateQuietly(r.Context(), entityKey)
	h.metrics.ObserveMutation(entityKey, "create", "ok")
	h.logger.Info("gallery image created", "id", img.ID, "category", img.Category)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(img)
}

type setFeaturedRequest struct {
	IsFeatured bool `json:"is_featured"`
}

// SetFeatured handles PATCH /admin/gallery/{id}/featured
func (h *Handler) SetFeatured(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req setFeaturedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.repo.SetFeatured(r.Context(), id, req.IsFeatured); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "image not found", http.StatusNotFound)
			return
		}
		h.metrics.ObserveMutation(entityKey, "toggle_featured", "error")
		h.logger.Error("failed to toggle featured", "error", err, "id", id)
		http.Error(w, "failed to update image", http.StatusInternalServerError)
		return
	}

	h.cache.InvalidateQuietly(r.Context(), entityKey)
	h.metrics.ObserveMutation(entityKey, "toggle_featured", "ok")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"is_featured": req.IsFeatured})
}

// Delete handles DELETE /admin/gallery/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "image not found", http.StatusNotFound)
			return
		}
		h.metrics.ObserveMutation(entityKey, "delete", "error")
		h.logger.Error("failed to delete gallery image", "error", err, "id", id)
		http.Error(w, "failed to delete image", http.StatusInternalServerError)
		return
	}

	h.cache.InvalidateQuietly(r.Context(), entityKey)
	h.metrics.ObserveMutation(entityKey, "delete", "ok")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "deleted"})
}

// Upload handles POST /admin/gallery/upload. It accepts a multipart form
// with a single "image" file and responds with the public URL.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.store == nil || !h.store.Enabled() {
		http.Error(w, "image uploads not configured", http.StatusServiceUnavailable)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart request", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.store.Upload(r.Context(), header.Filename, contentType, file)
	if err != nil {
		h.metrics.ObserveMutation(entityKey, "upload", "error")
		h.logger.Error("failed to upload gallery image", "error", err)
		http.Error(w, "failed to upload image", http.StatusInternalServerError)
		return
	}

	h.metrics.ObserveMutation(entityKey, "upload", "ok")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"url": url})
}
