package gallery

import "errors"

var (
	// ErrNotFound is returned when no image matches the given id.
	ErrNotFound = errors.New("gallery: image not found")

	// ErrInvalidImageURL is returned when the image URL is missing.
	ErrInvalidImageURL = errors.New("gallery: image_url is required")

	// ErrInvalidCategory is returned for categories outside the known set.
	ErrInvalidCategory = errors.New("gallery: unknown category")
)
