package booking

import (
	"strings"
	"testing"
)

func validRequest() Request {
	return Request{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@x.com",
		Service:   "haircut",
		DateTime:  "2025-03-10T14:30",
	}
}

func TestValidateAccepts(t *testing.T) {
	trimmed, violations := Validate(&Request{
		FirstName: "  John ",
		LastName:  " Doe",
		Email:     "john@x.com",
		Phone:     " +66 81 234 5678 ",
		Service:   "premium",
		DateTime:  "2025-03-10T14:30",
	})
	if len(violations) != 0 {
		t.Fatalf("unexpected violations: %v", violations)
	}
	if trimmed.FirstName != "John" || trimmed.LastName != "Doe" {
		t.Errorf("names not trimmed: %q %q", trimmed.FirstName, trimmed.LastName)
	}
	if trimmed.Phone != "+66 81 234 5678" {
		t.Errorf("phone not trimmed: %q", trimmed.Phone)
	}
}

func TestValidateFirstViolationWins(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Request)
		field   string
		message string
	}{
		{"blank first name", func(r *Request) { r.FirstName = "   " }, "first_name", "First name is required"},
		{"long first name", func(r *Request) { r.FirstName = strings.Repeat("a", 51) }, "first_name", "First name must be 50 characters or less"},
		{"blank last name", func(r *Request) { r.LastName = "" }, "last_name", "Last name is required"},
		{"missing email", func(r *Request) { r.Email = "" }, "email", "Email is required"},
		{"bad email", func(r *Request) { r.Email = "not-an-email" }, "email", "Enter a valid email address"},
		{"long email", func(r *Request) { r.Email = strings.Repeat("a", 250) + "@x.com" }, "email", "Email must be 255 characters or less"},
		{"missing service", func(r *Request) { r.Service = "" }, "service", "Please select a service"},
		{"unknown service", func(r *Request) { r.Service = "tattoo" }, "service", "Please select a valid service"},
		{"missing datetime", func(r *Request) { r.DateTime = "" }, "datetime", "Please select a date and time"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			_, violations := Validate(&req)
			if got := violations[tt.field]; got != tt.message {
				t.Errorf("field %s: expected %q, got %q (all: %v)", tt.field, tt.message, got, violations)
			}
		})
	}
}

func TestValidateOptionalPhone(t *testing.T) {
	req := validRequest()
	req.Phone = ""
	if _, violations := Validate(&req); len(violations) != 0 {
		t.Fatalf("phone should be optional: %v", violations)
	}
}

func TestServiceLabelFallsBackToKey(t *testing.T) {
	if got := ServiceLabel("haircut"); got != "Hair Cut" {
		t.Errorf("unexpected label %q", got)
	}
	if got := ServiceLabel("mystery"); got != "mystery" {
		t.Errorf("unmapped key should pass through, got %q", got)
	}
}

func TestSplitDateTime(t *testing.T) {
	tests := []struct {
		in       string
		date     string
		time     string
		ok       bool
	}{
		{"2025-03-10T14:30", "2025-03-10", "14:30:00", true},
		{"2025-03-10T14:30:25", "2025-03-10", "14:30:00", true},
		{"2025-03-10T", "", "", false},
		{"T14:30", "", "", false},
		{"2025-03-10", "", "", false},
	}
	for _, tt := range tests {
		date, timeOfDay, ok := SplitDateTime(tt.in)
		if ok != tt.ok || date != tt.date || timeOfDay != tt.time {
			t.Errorf("SplitDateTime(%q) = %q, %q, %v; want %q, %q, %v",
				tt.in, date, timeOfDay, ok, tt.date, tt.time, tt.ok)
		}
	}
}
