package services

import (
	"strings"
	"time"
)

// Service is one catalog entry on the services & pricing screen. Display
// order drives the public listing; it is not required to be unique.
type Service struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Description     *string   `json:"description"`
	Price           float64   `json:"price"`
	DurationMinutes int       `json:"duration_minutes"`
	ImageURL        *string   `json:"image_url"`
	IsActive        bool      `json:"is_active"`
	DisplayOrder    int       `json:"display_order"`
	CreatedAt       time.Time `json:"created_at"`
}

// UpsertRequest carries the editable fields for create and update.
type UpsertRequest struct {
	Name            string  `json:"name"`
	Description     *string `json:"description"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
	ImageURL        *string `json:"image_url"`
	IsActive        bool    `json:"is_active"`
	DisplayOrder    int     `json:"display_order"`
}

// Validate checks the request.
func (r *UpsertRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	if r.Price < 0 {
		return ErrInvalidPrice
	}
	if r.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	return nil
}
