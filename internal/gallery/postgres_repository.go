package gallery

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores gallery images in the relational database.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("gallery: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

const imageColumns = `id, title, image_url, category, is_featured, display_order, created_at`

// List returns all images ordered by display order.
func (r *PostgresRepository) List(ctx context.Context) ([]Image, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+imageColumns+` FROM gallery ORDER BY display_order ASC, created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("gallery: list: %w", err)
	}
	defer rows.Close()

	out := []Image{}
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.Title, &img.ImageURL, &img.Category,
			&img.IsFeatured, &img.DisplayOrder, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("gallery: scan: %w", err)
		}
		out = append(out, img)
	}
	return out, rows.Err()
}

// Create inserts an image. The display order is set to the current row
// count inside the insert itself; deletions never close the gap.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateRequest) (*Image, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	img := Image{
		ID:         uuid.New().String(),
		Title:      req.Title,
		ImageURL:   req.ImageURL,
		Category:   req.Category,
		IsFeatured: req.IsFeatured,
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO gallery (id, title, image_url, category, is_featured, display_order)
		VALUES ($1, $2, $3, $4, $5, (SELECT COUNT(*) FROM gallery))
		RETURNING display_order, created_at`,
		img.ID, img.Title, img.ImageURL, img.Category, img.IsFeatured,
	).Scan(&img.DisplayOrder, &img.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("gallery: insert: %w", err)
	}
	return &img, nil
}

// SetFeatured flips only the featured flag.
func (r *PostgresRepository) SetFeatured(ctx context.Context, id string, featured bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE gallery SET is_featured = $2 WHERE id = $1`, id, featured)
	if err != nil {
		return fmt.Errorf("gallery: set featured: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an image row.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM gallery WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("gallery: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
