package domain

import (
	"errors"
	"strings"
)

// ErrValidation matches any ValidationErrors value via errors.Is
var ErrValidation = errors.New("validation failed")

// FieldError is a single rejected field with a human readable reason
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects per-field errors. An empty value means "valid".
type ValidationErrors []FieldError

// Add appends an error for field
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}

// HasField reports whether field was rejected
func (v ValidationErrors) HasField(field string) bool {
	for _, fe := range v {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// Err returns nil when there are no errors so callers can return it directly
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}
