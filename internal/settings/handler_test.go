package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGetWithEmptyDatabaseReturnsDefaults(t *testing.T) {
	h := NewHandler(NewInMemoryRepository(), nil, nil, nil)

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/admin/settings", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var s SiteSettings
	if err := json.NewDecoder(rec.Body).Decode(&s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.General.ShopName != "Old Thai Barber" {
		t.Errorf("unexpected shop name %q", s.General.ShopName)
	}
	if s.Hero.Heading != "Classic Cuts. Modern Style." {
		t.Errorf("unexpected hero heading %q", s.Hero.Heading)
	}
}

func TestGetWithOnlyGeneralRowSaved(t *testing.T) {
	repo := NewInMemoryRepository()
	if err := repo.SeedSection("general", General{ShopName: "Gilded Grooming", Tagline: "Sharp every day"}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	h := NewHandler(repo, nil, nil, nil)

	rec := httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/admin/settings", nil))

	var s SiteSettings
	if err := json.NewDecoder(rec.Body).Decode(&s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.General.ShopName != "Gilded Grooming" || s.General.Tagline != "Sharp every day" {
		t.Errorf("saved general section lost: %+v", s.General)
	}
	// The general row was stored without a description, so it stays empty.
	if s.General.Description != "" {
		t.Errorf("stored section gained a default field: %q", s.General.Description)
	}
	if s.Contact.Phone != "+66 123 456 789" {
		t.Errorf("missing sections should fall back: %+v", s.Contact)
	}
}

func TestPutThenGetRoundTrip(t *testing.T) {
	repo := NewInMemoryRepository()
	h := NewHandler(repo, nil, nil, nil)

	update := Defaults()
	update.General.ShopName = "Gilded Grooming"
	update.Hours.Sunday = "10:00 AM - 4:00 PM"

	body, _ := json.Marshal(update)
	rec := httptest.NewRecorder()
	h.Put(rec, httptest.NewRequest(http.MethodPut, "/admin/settings", bytes.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("put: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/admin/settings", nil))
	var s SiteSettings
	if err := json.NewDecoder(rec.Body).Decode(&s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.General.ShopName != "Gilded Grooming" {
		t.Errorf("round trip lost shop name: %q", s.General.ShopName)
	}
	if s.Hours.Sunday != "10:00 AM - 4:00 PM" {
		t.Errorf("round trip lost hours: %q", s.Hours.Sunday)
	}
}

func TestPutThenGetKeepsClearedField(t *testing.T) {
	repo := NewInMemoryRepository()
	h := NewHandler(repo, nil, nil, nil)

	update := Defaults()
	update.Social.Twitter = ""

	body, _ := json.Marshal(update)
	rec := httptest.NewRecorder()
	h.Put(rec, httptest.NewRequest(http.MethodPut, "/admin/settings", bytes.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("put: expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.Get(rec, httptest.NewRequest(http.MethodGet, "/admin/settings", nil))
	var s SiteSettings
	if err := json.NewDecoder(rec.Body).Decode(&s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.Social.Twitter != "" {
		t.Errorf("cleared twitter link resurrected as %q", s.Social.Twitter)
	}
	if s.Social.Facebook != "https://facebook.com" {
		t.Errorf("unexpected facebook link %q", s.Social.Facebook)
	}
}

func TestSaveWritesEverySectionRow(t *testing.T) {
	repo := NewInMemoryRepository()
	if err := repo.Save(context.Background(), Defaults()); err != nil {
		t.Fatalf("save: %v", err)
	}
	for _, key := range SectionKeys {
		if _, ok := repo.rows[key]; !ok {
			t.Errorf("missing row for section %s", key)
		}
	}
}

func TestPutRejectsBadBody(t *testing.T) {
	h := NewHandler(NewInMemoryRepository(), nil, nil, nil)
	rec := httptest.NewRecorder()
	h.Put(rec, httptest.NewRequest(http.MethodPut, "/admin/settings", bytes.NewReader([]byte("{"))))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
