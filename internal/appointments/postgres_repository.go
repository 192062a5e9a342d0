package appointments

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores appointments in the relational database.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("appointments: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

const appointmentColumns = `id, customer_name, customer_phone, customer_email, service_name,
	to_char(appointment_date, 'YYYY-MM-DD'), to_char(appointment_time, 'HH24:MI:SS'),
	status, notes, created_at`

// List returns appointments ordered by date then time ascending, optionally
// narrowed to a single status.
func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments`
	args := []any{}
	if filter.Status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY appointment_date ASC, appointment_time ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("appointments: list: %w", err)
	}
	defer rows.Close()

	out := []Appointment{}
	for rows.Next() {
		var a Appointment
		if err := rows.Scan(&a.ID, &a.CustomerName, &a.CustomerPhone, &a.CustomerEmail,
			&a.ServiceName, &a.AppointmentDate, &a.AppointmentTime, &a.Status, &a.Notes,
			&a.CreatedAt); err != nil {
			return nil, fmt.Errorf("appointments: scan: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Get fetches one appointment by id.
func (r *PostgresRepository) Get(ctx context.Context, id string) (*Appointment, error) {
	var a Appointment
	err := r.pool.QueryRow(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id).Scan(
		&a.ID, &a.CustomerName, &a.CustomerPhone, &a.CustomerEmail, &a.ServiceName,
		&a.AppointmentDate, &a.AppointmentTime, &a.Status, &a.Notes, &a.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("appointments: get: %w", err)
	}
	return &a, nil
}

// Create inserts a new appointment; the status column defaults to pending.
func (r *PostgresRepository) Create(ctx context.Context, req *NewAppointment) (*Appointment, error) {
	a := Appointment{
		ID:              uuid.New().String(),
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		ServiceName:     req.ServiceName,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Notes:           req.Notes,
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO appointments (id, customer_name, customer_phone, customer_email,
			service_name, appointment_date, appointment_time, notes)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7::time, $8)
		RETURNING status, created_at`,
		a.ID, a.CustomerName, a.CustomerPhone, a.CustomerEmail,
		a.ServiceName, a.AppointmentDate, a.AppointmentTime, a.Notes,
	).Scan(&a.Status, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("appointments: insert: %w", err)
	}
	return &a, nil
}

// UpdateStatus sets the status column only. Transition checks happen in the
// handler, which has the current row in hand.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE appointments SET status = $2 WHERE id = $1`, id, string(status))
	if err != nil {
		return fmt.Errorf("appointments: update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes an appointment row.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("appointments: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
