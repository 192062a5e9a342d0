package booking

import (
	"net/mail"
	"strings"
)

// Request is the raw booking form payload from the public site.
type Request struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Service   string `json:"service"`
	DateTime  string `json:"datetime"`
}

// serviceLabels maps form service keys to the names stored on the
// appointment. Unmapped keys fall through as-is.
var serviceLabels = map[string]string{
	"haircut": "Hair Cut",
	"beard":   "Beard Styling",
	"wash":    "Hair Wash",
	"premium": "Premium Grooming",
}

// ServiceLabel returns the display name for a service key.
func ServiceLabel(key string) string {
	if label, ok := serviceLabels[key]; ok {
		return label
	}
	return key
}

// ValidServiceKey reports whether key is one of the bookable services.
func ValidServiceKey(key string) bool {
	_, ok := serviceLabels[key]
	return ok
}

type rule struct {
	check   func(string) bool
	message string
}

type fieldRules struct {
	field string
	get   func(*Request) string
	rules []rule
}

func notBlank(v string) bool { return strings.TrimSpace(v) != "" }

func maxLen(n int) func(string) bool {
	return func(v string) bool { return len(strings.TrimSpace(v)) <= n }
}

func validEmail(v string) bool {
	_, err := mail.ParseAddress(strings.TrimSpace(v))
	return err == nil
}

// bookingRules is evaluated in order; the first failing rule per field
// wins and later ones are suppressed.
var bookingRules = []fieldRules{
	{"first_name", func(r *Request) string { return r.FirstName }, []rule{
		{notBlank, "First name is required"},
		{maxLen(50), "First name must be 50 characters or less"},
	}},
	{"last_name", func(r *Request) string { return r.LastName }, []rule{
		{notBlank, "Last name is required"},
		{maxLen(50), "Last name must be 50 characters or less"},
	}},
	{"email", func(r *Request) string { return r.Email }, []rule{
		{notBlank, "Email is required"},
		{validEmail, "Enter a valid email address"},
		{maxLen(255), "Email must be 255 characters or less"},
	}},
	{"service", func(r *Request) string { return r.Service }, []rule{
		{notBlank, "Please select a service"},
		{ValidServiceKey, "Please select a valid service"},
	}},
	{"datetime", func(r *Request) string { return r.DateTime }, []rule{
		{notBlank, "Please select a date and time"},
	}},
}

// Validate runs the rule table over the request. It returns the trimmed
// request and a map of field name to the first violated rule's message;
// an empty map means the request is valid.
func Validate(req *Request) (Request, map[string]string) {
	violations := map[string]string{}
	for _, fr := range bookingRules {
		value := fr.get(req)
		for _, r := range fr.rules {
			if !r.check(value) {
				violations[fr.field] = r.message
				break
			}
		}
	}

	trimmed := Request{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Service:   req.Service,
		DateTime:  req.DateTime,
	}
	return trimmed, violations
}
