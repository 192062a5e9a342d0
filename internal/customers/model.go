package customers

import (
	"strings"
	"time"
)

// Customer is an admin-managed customer record. There is no uniqueness
// constraint on email or phone; repeat walk-ins can legitimately create
// duplicate-looking rows.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// UpsertRequest carries the editable fields for create and update.
type UpsertRequest struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
	Notes *string `json:"notes"`
}

// Validate checks the request.
func (r *UpsertRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrInvalidName
	}
	return nil
}

// MatchesSearch reports whether the customer matches a case-insensitive
// substring query over name, email and phone.
func (c *Customer) MatchesSearch(q string) bool {
	if q == "" {
		return true
	}
	q = strings.ToLower(q)
	if strings.Contains(strings.ToLower(c.Name), q) {
		return true
	}
	if c.Email != nil && strings.Contains(strings.ToLower(*c.Email), q) {
		return true
	}
	if c.Phone != nil && strings.Contains(strings.ToLower(*c.Phone), q) {
		return true
	}
	return false
}

// FilterBySearch narrows already-fetched rows without refetching.
func FilterBySearch(rows []Customer, q string) []Customer {
	if strings.TrimSpace(q) == "" {
		return rows
	}
	out := []Customer{}
	for i := range rows {
		if rows[i].MatchesSearch(q) {
			out = append(out, rows[i])
		}
	}
	return out
}
