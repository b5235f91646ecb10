// Package validate holds the boundary-level field validation rules. Rules run
// before any request reaches the service layer; services assume trimmed,
// bounded values.
package validate

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Errs []FieldError

func (e Errs) Error() string { // error interface
	var b strings.Builder
	for i, fe := range e {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(fe.Field + ": " + fe.Message)
	}
	return b.String()
}

// Add appends a rule failure if err is non-nil.
func (e *Errs) Add(err *FieldError) {
	if err != nil {
		*e = append(*e, *err)
	}
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Helpers

func Required(field, value string) *FieldError {
	if strings.TrimSpace(value) == "" {
		return &FieldError{Field: field, Message: field + " is required"}
	}
	return nil
}

func LengthBetween(field, value string, min, max int) *FieldError {
	n := len(value)
	if n < min || n > max {
		return &FieldError{
			Field:   field,
			Message: field + " must be between " + strconv.Itoa(min) + " and " + strconv.Itoa(max) + " characters",
		}
	}
	return nil
}

func MinLength(field, value string, min int) *FieldError {
	if len(value) < min {
		return &FieldError{
			Field:   field,
			Message: field + " must be at least " + strconv.Itoa(min) + " characters long",
		}
	}
	return nil
}

func MaxLength(field, value string, max int) *FieldError {
	if len(value) > max {
		return &FieldError{
			Field:   field,
			Message: field + " must not exceed " + strconv.Itoa(max) + " characters",
		}
	}
	return nil
}

func Alphanumeric(field, value string) *FieldError {
	for _, r := range value {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return &FieldError{Field: field, Message: field + " must contain only letters and numbers"}
		}
	}
	return nil
}

func Email(field, value string) *FieldError {
	if !emailRe.MatchString(value) {
		return &FieldError{Field: field, Message: "must be a valid email address"}
	}
	return nil
}
