package customers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for customer storage.
type Repository interface {
	List(ctx context.Context) ([]Customer, error)
	Create(ctx context.Context, req *UpsertRequest) (*Customer, error)
	Update(ctx context.Context, id string, req *UpsertRequest) (*Customer, error)
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository keeps customers in memory for tests.
type InMemoryRepository struct {
	mu   sync.RWMutex
	rows map[string]*Customer
	seq  int
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{rows: make(map[string]*Customer)}
}

// List returns customers newest first.
func (r *InMemoryRepository) List(ctx context.Context) ([]Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Customer{}
	for _, c := range r.rows {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Create inserts a customer.
func (r *InMemoryRepository) Create(ctx context.Context, req *UpsertRequest) (*Customer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	c := &Customer{
		ID:    uuid.New().String(),
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Notes: req.Notes,
		// Spread creation instants so ordering is deterministic in tests.
		CreatedAt: time.Now().UTC().Add(time.Duration(r.seq) * time.Microsecond),
	}
	r.rows[c.ID] = c
	copied := *c
	return &copied, nil
}

// Update replaces the editable fields.
func (r *InMemoryRepository) Update(ctx context.Context, id string, req *UpsertRequest) (*Customer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	c.Name = req.Name
	c.Email = req.Email
	c.Phone = req.Phone
	c.Notes = req.Notes
	copied := *c
	return &copied, nil
}

// Delete removes a customer.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return ErrNotFound
	}
	delete(r.rows, id)
	return nil
}
