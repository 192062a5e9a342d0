package gallery

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for gallery image storage.
type Repository interface {
	List(ctx context.Context) ([]Image, error)
	Create(ctx context.Context, req *CreateRequest) (*Image, error)
	SetFeatured(ctx context.Context, id string, featured bool) error
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository keeps gallery images in memory for tests.
type InMemoryRepository struct {
	mu   sync.RWMutex
	rows map[string]*Image
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{rows: make(map[string]*Image)}
}

// List returns images ordered by display order.
func (r *InMemoryRepository) List(ctx context.Context) ([]Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Image{}
	for _, img := range r.rows {
		out = append(out, *img)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Create inserts an image. The display order is the row count at insert
// time and is never recomputed afterwards, so deletions leave gaps.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateRequest) (*Image, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	img := &Image{
		ID:           uuid.New().String(),
		Title:        req.Title,
		ImageURL:     req.ImageURL,
		Category:     req.Category,
		IsFeatured:   req.IsFeatured,
		DisplayOrder: len(r.rows),
		CreatedAt:    time.Now().UTC(),
	}
	r.rows[img.ID] = img
	copied := *img
	return &copied, nil
}

// SetFeatured flips the featured flag of one image.
func (r *InMemoryRepository) SetFeatured(ctx context.Context, id string, featured bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	img, ok := r.rows[id]
	if !ok {
		return ErrNotFound
	}
	img.IsFeatured = featured
	return nil
}

// Delete removes an image without touching the remaining display orders.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return ErrNotFound
	}
	delete(r.rows, id)
	return nil
}
