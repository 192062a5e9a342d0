package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// AdminUser is one back-office account.
type AdminUser struct {
	ID           string
	Email        string
	PasswordHash string
}

// Repository looks up admin accounts by email.
type Repository interface {
	GetByEmail(ctx context.Context, email string) (*AdminUser, error)
}

// InMemoryRepository keeps admin users in memory for tests.
type InMemoryRepository struct {
	mu    sync.RWMutex
	users map[string]*AdminUser
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{users: make(map[string]*AdminUser)}
}

// Add stores a user keyed by lowercased email.
func (r *InMemoryRepository) Add(u AdminUser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[strings.ToLower(u.Email)] = &u
}

// GetByEmail returns the user or ErrInvalidCredentials.
func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*AdminUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[strings.ToLower(email)]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	copied := *u
	return &copied, nil
}

// PostgresRepository reads admin users from the database.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("auth: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// GetByEmail returns the user or ErrInvalidCredentials. Unknown emails
// and database misses are indistinguishable to the caller.
func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*AdminUser, error) {
	var u AdminUser
	err := r.pool.QueryRow(ctx,
		`SELECT id, email, password_hash FROM admin_users WHERE lower(email) = lower($1)`,
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("auth: get by email: %w", err)
	}
	return &u, nil
}
