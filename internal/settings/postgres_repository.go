package settings

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresRepository stores each section as a key/jsonb row.
type PostgresRepository struct {
	pool querier
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("settings: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

func newPostgresRepositoryWithExec(exec querier) *PostgresRepository {
	if exec == nil {
		panic("settings: exec required")
	}
	return &PostgresRepository{pool: exec}
}

// Load reads all site_settings rows, assembles the known sections and
// reports which section keys had a row.
func (r *PostgresRepository) Load(ctx context.Context) (SiteSettings, map[string]bool, error) {
	rows, err := r.pool.Query(ctx, `SELECT key, value FROM site_settings`)
	if err != nil {
		return SiteSettings{}, nil, fmt.Errorf("settings: load: %w", err)
	}
	defer rows.Close()

	var s SiteSettings
	present := make(map[string]bool)
	for rows.Next() {
		var key string
		var raw json.RawMessage
		if err := rows.Scan(&key, &raw); err != nil {
			return SiteSettings{}, nil, fmt.Errorf("settings: scan: %w", err)
		}
		known, err := decodeSection(&s, key, raw)
		if err != nil {
			return SiteSettings{}, nil, err
		}
		if known {
			present[key] = true
		}
	}
	return s, present, rows.Err()
}

// Save upserts one row per section, in order, stopping at the first
// failure. Earlier sections stay written when a later one fails.
func (r *PostgresRepository) Save(ctx context.Context, s SiteSettings) error {
	for _, key := range SectionKeys {
		data, err := json.Marshal(sectionValue(&s, key))
		if err != nil {
			return fmt.Errorf("settings: marshal %s: %w", key, err)
		}
		_, err = r.pool.Exec(ctx, `
			INSERT INTO site_settings (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
			key, data)
		if err != nil {
			return fmt.Errorf("settings: save %s: %w", key, err)
		}
	}
	return nil
}
