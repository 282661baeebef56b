// Package models defines the resource records the client caches and the
// pre-submit validation rules applied before any create/update request.
package models

import (
	"regexp"
	"strings"
)

// Employee mirrors the server's employee record. ID is assigned by the
// server on creation and immutable afterwards.
type Employee struct {
	ID         int64   `json:"id,omitempty"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone,omitempty"`
	Department string  `json:"department,omitempty"`
	Position   string  `json:"position,omitempty"`
	Salary     float64 `json:"salary,omitempty"`
	HireDate   string  `json:"hireDate,omitempty"`
}

func (e Employee) RecordID() int64 { return e.ID }

// User mirrors the server's user record as exposed by the admin screen.
// Password is only ever set on create payloads; the server never returns it.
type User struct {
	ID       int64  `json:"id,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role,omitempty"`
	Password string `json:"password,omitempty"`
}

func (u User) RecordID() int64 { return u.ID }

// ValidationError is a local, pre-submit rejection. It never reaches the
// network and is kept distinct from request failures so callers can tell
// "rejected before sending" from "rejected by the server".
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// nameRe allows Unicode letters plus space, apostrophe and hyphen; emailRe is
// the basic local@domain.tld shape the original form enforced.
var (
	nameRe  = regexp.MustCompile(`^[\p{L}' -]+$`)
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidName reports whether s is non-empty after trimming and contains only
// letter, space, apostrophe or hyphen characters.
func ValidName(s string) bool {
	s = strings.TrimSpace(s)
	return s != "" && nameRe.MatchString(s)
}

// ValidEmail reports whether s looks like local@domain.tld.
func ValidEmail(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

// ValidateEmployee applies the employee rule set.
func ValidateEmployee(e Employee) error {
	if !ValidName(e.FirstName) {
		return &ValidationError{Message: "first name is required and may only contain letters, spaces, apostrophes and hyphens"}
	}
	if !ValidName(e.LastName) {
		return &ValidationError{Message: "last name is required and may only contain letters, spaces, apostrophes and hyphens"}
	}
	if !ValidEmail(e.Email) {
		return &ValidationError{Message: "a valid email address is required"}
	}
	return nil
}

// ValidateNewUser applies the user creation rule set: username, email and
// password are all required.
func ValidateNewUser(u User) error {
	if strings.TrimSpace(u.Username) == "" {
		return &ValidationError{Message: "username is required"}
	}
	if !ValidEmail(u.Email) {
		return &ValidationError{Message: "a valid email address is required"}
	}
	if u.Password == "" {
		return &ValidationError{Message: "password is required"}
	}
	return nil
}

// ValidateUserUpdate applies the user update rule set. Only the email is
// editable, so only the email shape is checked.
func ValidateUserUpdate(u User) error {
	if !ValidEmail(u.Email) {
		return &ValidationError{Message: "a valid email address is required"}
	}
	return nil
}
