package services

import (
	"errors"
	"fmt"

	"github.com/taskforge-api/dto"
)

var (
	// ErrNotFound marks an id that does not resolve to a row
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a write rejected by a uniqueness rule
	ErrConflict = errors.New("conflict")
	// ErrValidation marks rejected input
	ErrValidation = dto.ErrValidation
)

// ValidationError describes one rejected input field
type ValidationError = dto.ValidationError

// NotFoundError names the entity and id that could not be resolved
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}
