package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/Thusharawathanan99/gilded-grooming/internal/http/middleware"
	"github.com/Thusharawathanan99/gilded-grooming/pkg/logging"
)

// Handler issues and inspects admin session tokens. Sign-out is a client
// concern: tokens are stateless and simply expire.
type Handler struct {
	repo     Repository
	secret   string
	tokenTTL time.Duration
	logger   *logging.Logger
}

// NewHandler creates an auth handler.
func NewHandler(repo Repository, secret string, tokenTTL time.Duration, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}
	return &Handler{repo: repo, secret: secret, tokenTTL: tokenTTL, logger: logger}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Login handles POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if h.secret == "" {
		http.Error(w, "admin auth disabled", http.StatusServiceUnavailable)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.repo.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if !errors.Is(err, ErrInvalidCredentials) {
			h.logger.Error("admin lookup failed", "error", err)
		}
		http.Error(w, "invalid email or password", http.StatusUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		http.Error(w, "invalid email or password", http.StatusUnauthorized)
		return
	}

	expiresAt := time.Now().Add(h.tokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   user.Email,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(h.secret))
	if err != nil {
		h.logger.Error("failed to sign admin token", "error", err)
		http.Error(w, "failed to sign in", http.StatusInternalServerError)
		return
	}

	h.logger.Info("admin signed in", "email", user.Email)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(loginResponse{Token: token, Email: user.Email, ExpiresAt: expiresAt})
}

type sessionResponse struct {
	Email     string     `json:"email"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// Session handles GET /admin/session. It runs behind the admin JWT
// middleware, so reaching it means the token verified.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.AdminClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	resp := sessionResponse{Email: claims.Subject}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = &claims.ExpiresAt.Time
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
