package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores the service catalog in the relational database.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("services: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

const serviceColumns = `id, name, description, price::float8, duration_minutes,
	image_url, is_active, display_order, created_at`

func (r *PostgresRepository) query(ctx context.Context, where string) ([]Service, error) {
	q := `SELECT ` + serviceColumns + ` FROM services` + where + ` ORDER BY display_order ASC, name ASC`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("services: list: %w", err)
	}
	defer rows.Close()

	out := []Service{}
	for rows.Next() {
		var s Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.DurationMinutes,
			&s.ImageURL, &s.IsActive, &s.DisplayOrder, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("services: scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// List returns all services ordered by display order.
func (r *PostgresRepository) List(ctx context.Context) ([]Service, error) {
	return r.query(ctx, "")
}

// ListActive returns the services shown on the public site.
func (r *PostgresRepository) ListActive(ctx context.Context) ([]Service, error) {
	return r.query(ctx, ` WHERE is_active`)
}

// Create inserts a catalog row.
func (r *PostgresRepository) Create(ctx context.Context, req *UpsertRequest) (*Service, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s := Service{
		ID:              uuid.New().String(),
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		ImageURL:        req.ImageURL,
		IsActive:        req.IsActive,
		DisplayOrder:    req.DisplayOrder,
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO services (id, name, description, price, duration_minutes,
			image_url, is_active, display_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at`,
		s.ID, s.Name, s.Description, s.Price, s.DurationMinutes,
		s.ImageURL, s.IsActive, s.DisplayOrder,
	).Scan(&s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("services: insert: %w", err)
	}
	return &s, nil
}

// Update replaces the editable columns of one service.
func (r *PostgresRepository) Update(ctx context.Context, id string, req *UpsertRequest) (*Service, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s := Service{
		ID:              id,
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		ImageURL:        req.ImageURL,
		IsActive:        req.IsActive,
		DisplayOrder:    req.DisplayOrder,
	}
	err := r.pool.QueryRow(ctx, `
		UPDATE services SET name = $2, description = $3, price = $4, duration_minutes = $5,
			image_url = $6, is_active = $7, display_order = $8
		WHERE id = $1
		RETURNING created_at`,
		id, req.Name, req.Description, req.Price, req.DurationMinutes,
		req.ImageURL, req.IsActive, req.DisplayOrder,
	).Scan(&s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("services: update: %w", err)
	}
	return &s, nil
}

// SetActive flips only the active flag.
func (r *PostgresRepository) SetActive(ctx context.Context, id string, active bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE services SET is_active = $2 WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("services: set active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a catalog row.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("services: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
