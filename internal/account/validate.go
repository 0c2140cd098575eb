// Package account implements registration and login on top of a user store.
package account

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Field names used in ValidationError.
const (
	FieldUsername = "username"
	FieldPassword = "password"
	FieldFullName = "fullname"
	FieldPhone    = "phone"
)

var phonePattern = regexp.MustCompile(`^[\d\s()+-]{6,20}$`)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// Registration is the input to Register.
type Registration struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"fullname"`
	Phone    string `json:"phone"`
}

// ValidationError lists the problems with a registration, keyed by field.
type ValidationError struct {
	Fields map[string]string `json:"fields"`
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "account: invalid registration: " + strings.Join(parts, "; ")
}

// Normalize trims the fields that are stored trimmed. Passwords are kept as typed.
func (r Registration) Normalize() Registration {
	r.Username = strings.TrimSpace(r.Username)
	r.FullName = strings.TrimSpace(r.FullName)
	r.Phone = strings.TrimSpace(r.Phone)
	return r
}

// Validate checks a normalized registration and returns a *ValidationError
// naming every bad field, or nil.
func (r Registration) Validate() error {
	fields := make(map[string]string)

	switch {
	case r.Username == "":
		fields[FieldUsername] = "username or email is required"
	case !strings.Contains(r.Username, "@") && len([]rune(r.Username)) < 3:
		fields[FieldUsername] = "enter a valid email or username (min 3 chars)"
	}

	switch {
	case r.Password == "":
		fields[FieldPassword] = "password is required"
	case len([]rune(r.Password)) < 6:
		fields[FieldPassword] = "password must be at least 6 characters"
	case len(r.Password) > MaxPasswordBytes:
		fields[FieldPassword] = fmt.Sprintf("password must be at most %d bytes", MaxPasswordBytes)
	case !hasLetterAndDigit(r.Password):
		fields[FieldPassword] = "password must include letters and numbers"
	}

	if r.FullName == "" {
		fields[FieldFullName] = "full name is required"
	}

	switch {
	case r.Phone == "":
		fields[FieldPhone] = "phone number is required"
	case !phonePattern.MatchString(r.Phone):
		fields[FieldPhone] = "invalid phone format"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// hasLetterAndDigit reports whether s has an ASCII letter and an ASCII digit.
func hasLetterAndDigit(s string) bool {
	var letter, digit bool
	for _, r := range s {
		switch {
		case r <= unicode.MaxASCII && unicode.IsLetter(r):
			letter = true
		case r >= '0' && r <= '9':
			digit = true
		}
	}
	return letter && digit
}
