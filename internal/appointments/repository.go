package appointments

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for appointment storage.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Appointment, error)
	Get(ctx context.Context, id string) (*Appointment, error)
	Create(ctx context.Context, req *NewAppointment) (*Appointment, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	Delete(ctx context.Context, id string) error
}

// InMemoryRepository keeps appointments in memory. Used in tests and as a
// reference implementation of the Repository contract.
type InMemoryRepository struct {
	mu    sync.RWMutex
	rows  map[string]*Appointment
	clock func() time.Time
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		rows:  make(map[string]*Appointment),
		clock: func() time.Time { return time.Now().UTC() },
	}
}

// List returns appointments ordered by date then time ascending.
func (r *InMemoryRepository) List(ctx context.Context, filter ListFilter) ([]Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Appointment{}
	for _, a := range r.rows {
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AppointmentDate != out[j].AppointmentDate {
			return out[i].AppointmentDate < out[j].AppointmentDate
		}
		return out[i].AppointmentTime < out[j].AppointmentTime
	})
	return out, nil
}

// Get returns one appointment or ErrNotFound.
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.rows[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *a
	return &copied, nil
}

// Create inserts a pending appointment.
func (r *InMemoryRepository) Create(ctx context.Context, req *NewAppointment) (*Appointment, error) {
	a := &Appointment{
		ID:              uuid.New().String(),
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		ServiceName:     req.ServiceName,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Status:          StatusPending,
		Notes:           req.Notes,
		CreatedAt:       r.clock(),
	}

	r.mu.Lock()
	r.rows[a.ID] = a
	r.mu.Unlock()

	copied := *a
	return &copied, nil
}

// UpdateStatus sets the status without transition checks; callers enforce
// the state machine.
func (r *InMemoryRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.rows[id]
	if !ok {
		return ErrNotFound
	}
	a.Status = status
	return nil
}

// Delete removes an appointment.
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rows[id]; !ok {
		return ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

// matchesSearch reports whether the appointment matches a case-insensitive
// substring query over name, service, email and phone.
func matchesSearch(a *Appointment, q string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(a.CustomerName), q) {
		return true
	}
	if strings.Contains(strings.ToLower(a.ServiceName), q) {
		return true
	}
	if a.CustomerEmail != nil && strings.Contains(strings.ToLower(*a.CustomerEmail), q) {
		return true
	}
	if a.CustomerPhone != nil && strings.Contains(strings.ToLower(*a.CustomerPhone), q) {
		return true
	}
	return false
}

// FilterBySearch applies the in-memory substring filter to already-fetched
// rows, mirroring how the admin list narrows without refetching.
func FilterBySearch(rows []Appointment, q string) []Appointment {
	if strings.TrimSpace(q) == "" {
		return rows
	}
	out := []Appointment{}
	for i := range rows {
		if matchesSearch(&rows[i], q) {
			out = append(out, rows[i])
		}
	}
	return out
}
