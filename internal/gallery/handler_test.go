package gallery

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func newTestRouter(repo Repository) http.Handler {
	h := NewHandler(repo, nil, nil, nil, nil)
	r := chi.NewRouter()
	r.Get("/admin/gallery", h.List)
	r.Post("/admin/gallery", h.Create)
	r.Patch("/admin/gallery/{id}/featured", h.SetFeatured)
	r.Delete("/admin/gallery/{id}", h.Delete)
	return r
}

func createImage(t *testing.T, router http.Handler, req CreateRequest) Image {
	t.Helper()
	body, _ := json.Marshal(req)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/gallery", bytes.NewReader(body)))
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var img Image
	if err := json.NewDecoder(rec.Body).Decode(&img); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return img
}

func TestCreateAssignsSequentialDisplayOrder(t *testing.T) {
	router := newTestRouter(NewInMemoryRepository())

	for i, url := range []string{"https://cdn/a.jpg", "https://cdn/b.jpg", "https://cdn/c.jpg"} {
		img := createImage(t, router, CreateRequest{ImageURL: url, Category: "haircut"})
		if img.DisplayOrder != i {
			t.Errorf("image %d: expected display_order %d, got %d", i, i, img.DisplayOrder)
		}
	}
}

func TestCreateRejectsBadInput(t *testing.T) {
	router := newTestRouter(NewInMemoryRepository())

	tests := []struct {
		name string
		req  CreateRequest
	}{
		{"missing url", CreateRequest{Category: "haircut"}},
		{"unknown category", CreateRequest{ImageURL: "https://cdn/x.jpg", Category: "portraits"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, _ := json.Marshal(tt.req)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/gallery", bytes.NewReader(body)))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestDeleteNeverRenumbersRemainingImages(t *testing.T) {
	repo := NewInMemoryRepository()
	router := newTestRouter(repo)

	first := createImage(t, router, CreateRequest{ImageURL: "https://cdn/a.jpg", Category: "haircut"})
	createImage(t, router, CreateRequest{ImageURL: "https://cdn/b.jpg", Category: "beard"})
	createImage(t, router, CreateRequest{ImageURL: "https://cdn/c.jpg", Category: "styling"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/admin/gallery/"+first.ID, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}

	rows, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 images, got %d", len(rows))
	}
	if rows[0].DisplayOrder != 1 || rows[1].DisplayOrder != 2 {
		t.Fatalf("display orders were renumbered: got %d and %d", rows[0].DisplayOrder, rows[1].DisplayOrder)
	}

	// The next insert still counts rows, so the freed slot is reused.
	next := createImage(t, router, CreateRequest{ImageURL: "https://cdn/d.jpg", Category: "grooming"})
	if next.DisplayOrder != 2 {
		t.Fatalf("expected new image at display_order 2, got %d", next.DisplayOrder)
	}
}

func TestSetFeatured(t *testing.T) {
	repo := NewInMemoryRepository()
	router := newTestRouter(repo)

	img := createImage(t, router, CreateRequest{ImageURL: "https://cdn/a.jpg", Category: "before-after"})

	body, _ := json.Marshal(setFeaturedRequest{IsFeatured: true})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/admin/gallery/"+img.ID+"/featured", bytes.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rows, _ := repo.List(context.Background())
	if !rows[0].IsFeatured {
		t.Fatal("expected image to be featured")
	}
}

func TestSetFeaturedTwiceRestoresOriginal(t *testing.T) {
	repo := NewInMemoryRepository()
	router := newTestRouter(repo)

	img := createImage(t, router, CreateRequest{ImageURL: "https://cdn/a.jpg", Category: "styling"})

	toggle := func(featured bool) {
		t.Helper()
		body, _ := json.Marshal(setFeaturedRequest{IsFeatured: featured})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/admin/gallery/"+img.ID+"/featured", bytes.NewReader(body)))
		if rec.Code != http.StatusOK {
			t.Fatalf("toggle: expected 200, got %d", rec.Code)
		}
	}

	toggle(true)
	toggle(false)

	rows, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 1 || rows[0].IsFeatured {
		t.Fatalf("expected image back in original unfeatured state, got %+v", rows)
	}
}

func TestSetFeaturedUnknownImage(t *testing.T) {
	router := newTestRouter(NewInMemoryRepository())

	body, _ := json.Marshal(setFeaturedRequest{IsFeatured: true})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/admin/gallery/nope/featured", bytes.NewReader(body)))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestUploadWithoutStorageConfigured(t *testing.T) {
	h := NewHandler(NewInMemoryRepository(), nil, nil, nil, nil)
	rec := httptest.NewRecorder()
	h.Upload(rec, httptest.NewRequest(http.MethodPost, "/admin/gallery/upload", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
