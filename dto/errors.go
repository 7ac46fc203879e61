package dto

import (
	"errors"
	"fmt"
)

// ErrValidation marks malformed or missing request fields
var ErrValidation = errors.New("validation failed")

// ValidationError describes one rejected request field
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
