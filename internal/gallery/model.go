package gallery

import (
	"strings"
	"time"
)

// Categories the gallery understands. The public site groups images by these.
var validCategories = map[string]bool{
	"haircut":      true,
	"beard":        true,
	"styling":      true,
	"grooming":     true,
	"before-after": true,
}

// ValidCategory reports whether c is one of the known gallery categories.
func ValidCategory(c string) bool {
	return validCategories[c]
}

// Image is one gallery entry shown on the site.
type Image struct {
	ID           string    `json:"id"`
	Title        *string   `json:"title"`
	ImageURL     string    `json:"image_url"`
	Category     string    `json:"category"`
	IsFeatured   bool      `json:"is_featured"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

// CreateRequest is the payload for adding a gallery image.
type CreateRequest struct {
	Title      *string `json:"title"`
	ImageURL   string  `json:"image_url"`
	Category   string  `json:"category"`
	IsFeatured bool    `json:"is_featured"`
}

// Validate checks the request fields.
func (r *CreateRequest) Validate() error {
	if strings.TrimSpace(r.ImageURL) == "" {
		return ErrInvalidImageURL
	}
	if !ValidCategory(r.Category) {
		return ErrInvalidCategory
	}
	return nil
}
