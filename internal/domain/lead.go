package domain

import (
	"errors"
	"regexp"
)

// Validation failures for lead submissions. Handlers map these to HTTP 400
// before any upstream call is attempted.
var (
	ErrMissingFields = errors.New("missing required fields")
	ErrInvalidEmail  = errors.New("invalid email address")
)

// Basic local@domain.tld shape. Intentionally loose: delivery is the form
// relay's problem, this only catches obvious typos.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// LeadSubmission is one contact-form submission. Name, Email and Message are
// required; the rest default to empty strings when relayed upstream.
type LeadSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Budget  string `json:"budget"`
}

// Validate checks required fields and the email shape. It performs no I/O.
func (l *LeadSubmission) Validate() error {
	if l.Name == "" || l.Email == "" || l.Message == "" {
		return ErrMissingFields
	}
	if !emailPattern.MatchString(l.Email) {
		return ErrInvalidEmail
	}
	return nil
}
