// Package validation provides request input validation.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Validator collects field-level validation errors.
type Validator struct {
	Errors map[string]string
}

// New creates a new validator.
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid checks if there are any validation errors.
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError adds an error to the validator.
func (v *Validator) AddError(field, message string) {
	v.Errors[field] = message
}

// Check adds an error if the condition is false.
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Required checks that a string is not blank.
func (v *Validator) Required(field, value string) {
	v.Check(strings.TrimSpace(value) != "", field, "must not be empty")
}

// Email validates email format.
func (v *Validator) Email(field, email string) {
	v.Check(emailRegex.MatchString(email), field, "must be a valid email address")
}

// MinLength checks if a string has at least n characters.
func (v *Validator) MinLength(field, value string, n int) {
	v.Check(len(value) >= n, field, fmt.Sprintf("must be at least %d characters long", n))
}

// LengthBetween checks that the string length falls in [min, max].
func (v *Validator) LengthBetween(field, value string, min, max int) {
	v.Check(len(value) >= min && len(value) <= max, field,
		fmt.Sprintf("must be between %d and %d characters long", min, max))
}

// FirstError returns one error message, or "" when the validator is clean.
func (v *Validator) FirstError() string {
	for _, msg := range v.Errors {
		return msg
	}
	return ""
}
