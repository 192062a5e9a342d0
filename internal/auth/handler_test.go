package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Thusharawathanan99/gilded-grooming/internal/http/middleware"
)

const testSecret = "test-secret"

func seedRepo(t *testing.T, email, password string) *InMemoryRepository {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	repo := NewInMemoryRepository()
	repo.Add(AdminUser{ID: "u1", Email: email, PasswordHash: string(hash)})
	return repo
}

func login(t *testing.T, h *Handler, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(loginRequest{Email: email, Password: password})
	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body)))
	return rec
}

func TestLoginIssuesToken(t *testing.T) {
	repo := seedRepo(t, "owner@gildedgrooming.com", "correct horse")
	h := NewHandler(repo, testSecret, time.Hour, nil)

	rec := login(t, h, "owner@gildedgrooming.com", "correct horse")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp loginResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Email != "owner@gildedgrooming.com" {
		t.Errorf("unexpected email %q", resp.Email)
	}

	claims := jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(resp.Token, &claims, func(token *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims.Subject != "owner@gildedgrooming.com" {
		t.Errorf("unexpected subject %q", claims.Subject)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	repo := seedRepo(t, "owner@gildedgrooming.com", "correct horse")
	h := NewHandler(repo, testSecret, time.Hour, nil)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "owner@gildedgrooming.com", "wrong"},
		{"unknown email", "nobody@gildedgrooming.com", "correct horse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := login(t, h, tt.email, tt.password)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestLoginRequiresFields(t *testing.T) {
	h := NewHandler(NewInMemoryRepository(), testSecret, time.Hour, nil)
	rec := login(t, h, "", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSessionBehindMiddleware(t *testing.T) {
	repo := seedRepo(t, "owner@gildedgrooming.com", "correct horse")
	h := NewHandler(repo, testSecret, time.Hour, nil)

	rec := login(t, h, "owner@gildedgrooming.com", "correct horse")
	var resp loginResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.AdminJWT(testSecret))
		r.Get("/admin/session", h.Session)
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/session", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var sess sessionResponse
	if err := json.NewDecoder(rec.Body).Decode(&sess); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if sess.Email != "owner@gildedgrooming.com" {
		t.Errorf("unexpected session email %q", sess.Email)
	}

	// No token at all is turned away before the handler runs.
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/session", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
}
