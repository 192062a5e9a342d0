package customers

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores customers in the relational database.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("customers: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// List returns customers ordered by creation time descending.
func (r *PostgresRepository) List(ctx context.Context) ([]Customer, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, email, phone, notes, created_at
		FROM customers ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("customers: list: %w", err)
	}
	defer rows.Close()

	out := []Customer{}
	for rows.Next() {
		var c Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Notes, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("customers: scan: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Create inserts a customer row.
func (r *PostgresRepository) Create(ctx context.Context, req *UpsertRequest) (*Customer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := Customer{
		ID:    uuid.New().String(),
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		Notes: req.Notes,
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO customers (id, name, email, phone, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		c.ID, c.Name, c.Email, c.Phone, c.Notes,
	).Scan(&c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("customers: insert: %w", err)
	}
	return &c, nil
}

// Update replaces the editable columns of one customer.
func (r *PostgresRepository) Update(ctx context.Context, id string, req *UpsertRequest) (*Customer, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c := Customer{ID: id, Name: req.Name, Email: req.Email, Phone: req.Phone, Notes: req.Notes}
	err := r.pool.QueryRow(ctx, `
		UPDATE customers SET name = $2, email = $3, phone = $4, notes = $5
		WHERE id = $1
		RETURNING created_at`,
		id, req.Name, req.Email, req.Phone, req.Notes,
	).Scan(&c.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("customers: update: %w", err)
	}
	return &c, nil
}

// Delete removes a customer row.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("customers: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
