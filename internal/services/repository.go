package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for service catalog storage.
type Repository interface {
	List(ctx context.Context) ([]Service, error)
	ListActive(ctx context.Context) ([]Service, error)
	Create(ctx context.Context, req *UpsertRequest) (*Service, error)
	Update(ctx context.Context, id string, req *UpsertRequest) (*Service, error)
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository keeps the catalog in memory for tests.
type InMemoryRepository struct {
	mu   sync.RWMutex
	rows map[string]*Service
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{rows: make(map[string]*Service)}
}

func (r *InMemoryRepository) list(onlyActive bool) []Service {
	out := []Service{}
	for _, s := range r.rows {
		if onlyActive && !s.IsActive {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DisplayOrder != out[j].DisplayOrder {
			return out[i].DisplayOrder < out[j].DisplayOrder
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// List returns all services ordered by display order.
func (r *InMemoryRepository) List(ctx context.Context) ([]Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.list(false), nil
}

// ListActive returns active services ordered by display order.
func (r *InMemoryRepository) ListActive(ctx context.Context) ([]Service, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.list(true), nil
}

// Create inserts a service.
func (r *InMemoryRepository) Create(ctx context.Context, req *UpsertRequest) (*Service, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s := &Service{
		ID:              uuid.New().String(),
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		ImageURL:        req.ImageURL,
		IsActive:        req.IsActive,
		DisplayOrder:    req.DisplayOrder,
		CreatedAt:       time.Now().UTC(),
	}

	r.mu.Lock()
	r.rows[s.ID] = s
	r.mu.Unlock()

	copied := *s
	return &copied, nil
}

// Update replaces the editable fields.
func (r *InMemoryRepository) Update(ctx context.Context, id string, req *UpsertRequest) (*Service, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	s.Name = req.Name
	s.Description = req.Description
	s.Price = req.Price
	s.DurationMinutes = req.DurationMinutes
	s.ImageURL = req.ImageURL
	s.IsActive = req.IsActive
	s.DisplayOrder = req.DisplayOrder
	copied := *s
	return &copied, nil
}

// SetActive flips the active flag only.
func (r *InMemoryRepository) SetActive(ctx context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.rows[id]
	if !ok {
		return ErrNotFound
	}
	s.IsActive = active
	return nil
}

// Delete removes a service.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return ErrNotFound
	}
	delete(r.rows, id)
	return nil
}
