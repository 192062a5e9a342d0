package sitecontent

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/Thusharawathanan99/gilded-grooming/internal/cache"
	"github.com/Thusharawathanan99/gilded-grooming/internal/gallery"
	"github.com/Thusharawathanan99/gilded-grooming/internal/services"
	"github.com/Thusharawathanan99/gilded-grooming/internal/settings"
)

func TestGetAssemblesSitePayload(t *testing.T) {
	settingsRepo := settings.NewInMemoryRepository()
	if err := settingsRepo.SeedSection("general", settings.General{ShopName: "Gilded Grooming"}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	servicesRepo := services.NewInMemoryRepository()
	if _, err := servicesRepo.Create(context.Background(), &services.UpsertRequest{
		Name: "Hair Cut", Price: 35, DurationMinutes: 30, IsActive: true,
	}); err != nil {
		t.Fatalf("seed service: %v", err)
	}
	if _, err := servicesRepo.Create(context.Background(), &services.UpsertRequest{
		Name: "Retired Perm", Price: 60, DurationMinutes: 60, IsActive: false,
	}); err != nil {
		t.Fatalf("seed service: %v", err)
	}

	galleryRepo := gallery.NewInMemoryRepository()
	if _, err := galleryRepo.Create(context.Background(), &gallery.CreateRequest{
		ImageURL: "https://cdn/a.jpg", Category: "haircut",
	}); err != nil {
		t.Fatalf("seed image: %v", err)
	}

	h := NewHandler(settingsRepo, servicesRepo, galleryRepo, nil, nil, nil)
	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/api/site", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var p Payload
	if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Settings.General.ShopName != "Gilded Grooming" {
		t.Errorf("unexpected shop name %q", p.Settings.General.ShopName)
	}
	// Unsaved sections come back as defaults.
	if p.Settings.Contact.Phone != "+66 123 456 789" {
		t.Errorf("unexpected contact %+v", p.Settings.Contact)
	}
	if len(p.Services) != 1 || p.Services[0].Name != "Hair Cut" {
		t.Errorf("expected only the active service, got %+v", p.Services)
	}
	if len(p.Gallery) != 1 {
		t.Errorf("expected one image, got %+v", p.Gallery)
	}
}

func TestSettingsSaveInvalidatesCachedSitePayload(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cacheStore := cache.New(client, time.Minute, nil)
	cacheStore.DependOn("site", "settings", "services", "gallery")

	settingsRepo := settings.NewInMemoryRepository()
	siteHandler := NewHandler(settingsRepo, services.NewInMemoryRepository(), gallery.NewInMemoryRepository(), cacheStore, nil, nil)
	settingsHandler := settings.NewHandler(settingsRepo, cacheStore, nil, nil)

	// First fetch populates the cache with the default shop name.
	rec := httptest.NewRecorder()
	siteHandler.Get(rec, httptest.NewRequest(http.MethodGet, "/api/site", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	update := settings.Defaults()
	update.General.ShopName = "Gilded Grooming"
	body, _ := json.Marshal(update)
	rec = httptest.NewRecorder()
	settingsHandler.Put(rec, httptest.NewRequest(http.MethodPut, "/admin/settings", bytes.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("save: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	siteHandler.Get(rec, httptest.NewRequest(http.MethodGet, "/api/site", nil))
	var p Payload
	if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Settings.General.ShopName != "Gilded Grooming" {
		t.Errorf("public site still serves stale shop name %q", p.Settings.General.ShopName)
	}
}
